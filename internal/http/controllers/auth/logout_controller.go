package auth

import (
	"net/http"

	httperrors "github.com/sanikant20/videoTube-Server/internal/http/errors"
	"github.com/sanikant20/videoTube-Server/internal/http/helpers"
	mw "github.com/sanikant20/videoTube-Server/internal/http/middlewares"
	svc "github.com/sanikant20/videoTube-Server/internal/http/services/auth"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
)

// LogoutController revoca la sesión activa.
type LogoutController struct {
	service svc.LogoutService
	cookies CookieSettings
}

// Logout maneja POST /api/v1/auth/logout (requiere auth).
func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := mw.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrAuthRequired)
		return
	}

	if err := c.service.Logout(ctx, userID); err != nil {
		logger.From(ctx).Error("logout failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	clearSessionCookies(w, c.cookies)
	helpers.WriteNoStore(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
