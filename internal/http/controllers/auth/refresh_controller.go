package auth

import (
	"errors"
	"net/http"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/auth"
	httperrors "github.com/sanikant20/videoTube-Server/internal/http/errors"
	"github.com/sanikant20/videoTube-Server/internal/http/helpers"
	svc "github.com/sanikant20/videoTube-Server/internal/http/services/auth"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
)

// RefreshController maneja la rotación del refresh token.
type RefreshController struct {
	service svc.RefreshService
	cookies CookieSettings
}

// Refresh maneja POST /api/v1/auth/refresh
// El token puede venir por cookie o por body; la cookie tiene prioridad.
func (c *RefreshController) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RefreshController.Refresh"))

	raw := ""
	if ck, err := r.Cookie(helpers.RefreshCookie); err == nil && ck.Value != "" {
		raw = ck.Value
	} else {
		var req dto.RefreshRequest
		if err := helpers.DecodeJSON(w, r, &req); err == nil {
			raw = req.RefreshToken
		}
	}
	if raw == "" {
		httperrors.WriteError(w, httperrors.ErrAuthRequired.WithDetail("refresh token ausente"))
		return
	}

	pair, err := c.service.Refresh(ctx, raw)
	if err != nil {
		log.Debug("refresh failed", logger.Err(err))
		switch {
		case errors.Is(err, svc.ErrReuseDetected):
			// La sesión ya fue revocada; las cookies del cliente no sirven.
			clearSessionCookies(w, c.cookies)
			httperrors.WriteError(w, httperrors.ErrTokenReuseDetected)
		case errors.Is(err, svc.ErrRefreshExpired):
			clearSessionCookies(w, c.cookies)
			httperrors.WriteError(w, httperrors.ErrTokenExpired)
		case errors.Is(err, svc.ErrRefreshInvalid):
			clearSessionCookies(w, c.cookies)
			httperrors.WriteError(w, httperrors.ErrTokenInvalid)
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	setSessionCookies(w, c.cookies, pair.AccessToken, pair.RefreshToken)
	helpers.WriteNoStore(w, http.StatusOK, pair)
}
