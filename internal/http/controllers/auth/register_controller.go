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

// RegisterController maneja el alta de cuentas.
type RegisterController struct {
	service svc.RegisterService
}

// Register maneja POST /api/v1/auth/register
func (c *RegisterController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RegisterController.Register"))

	var req dto.RegisterRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	user, err := c.service.Register(ctx, req)
	if err != nil {
		log.Debug("register failed", logger.Err(err))
		switch {
		case errors.Is(err, svc.ErrMissingFields):
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("username, email y password son obligatorios"))
		case errors.Is(err, svc.ErrUserExists):
			httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("username o email ya registrados"))
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, user)
}
