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

// LoginController maneja el endpoint de login.
type LoginController struct {
	service svc.LoginService
	cookies CookieSettings
}

// Login maneja POST /api/v1/auth/login
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	var req dto.LoginRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Login(ctx, req)
	if err != nil {
		log.Debug("login failed", logger.Err(err))
		switch {
		case errors.Is(err, svc.ErrMissingFields):
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("login y password son obligatorios"))
		case errors.Is(err, svc.ErrInvalidCredentials):
			httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	// El par viaja en cookies para el cliente web y en el body para los
	// clientes que prefieren Authorization: Bearer.
	setSessionCookies(w, c.cookies, result.Tokens.AccessToken, result.Tokens.RefreshToken)
	helpers.WriteNoStore(w, http.StatusOK, result)
}
