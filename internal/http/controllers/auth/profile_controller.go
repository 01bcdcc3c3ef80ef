package auth

import (
	"context"
	"errors"
	"io"
	"net/http"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/auth"
	httperrors "github.com/sanikant20/videoTube-Server/internal/http/errors"
	"github.com/sanikant20/videoTube-Server/internal/http/helpers"
	mw "github.com/sanikant20/videoTube-Server/internal/http/middlewares"
	svc "github.com/sanikant20/videoTube-Server/internal/http/services/auth"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
)

// maxImageUpload acota avatars y covers.
const maxImageUpload = 8 << 20 // 8MB

// ProfileController maneja el perfil de la cuenta autenticada.
type ProfileController struct {
	service svc.ProfileService
}

// Me maneja GET /api/v1/users/me
func (c *ProfileController) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := c.service.Me(ctx, mw.GetUserID(ctx))
	if err != nil {
		writeProfileError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

// UpdateProfile maneja PATCH /api/v1/users/me
func (c *ProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.UpdateProfileRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	user, err := c.service.UpdateProfile(ctx, mw.GetUserID(ctx), req)
	if err != nil {
		writeProfileError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

// ChangePassword maneja POST /api/v1/users/me/password
func (c *ProfileController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.ChangePasswordRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	if err := c.service.ChangePassword(ctx, mw.GetUserID(ctx), req); err != nil {
		writeProfileError(w, err)
		return
	}
	helpers.WriteNoStore(w, http.StatusOK, map[string]string{"status": "password_changed"})
}

// UpdateAvatar maneja PATCH /api/v1/users/me/avatar (multipart, campo "avatar").
func (c *ProfileController) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	c.updateImage(w, r, "avatar", c.service.UpdateAvatar)
}

// UpdateCoverImage maneja PATCH /api/v1/users/me/cover (multipart, campo "cover").
func (c *ProfileController) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	c.updateImage(w, r, "cover", c.service.UpdateCoverImage)
}

func (c *ProfileController) updateImage(w http.ResponseWriter, r *http.Request, field string,
	do func(ctx context.Context, userID, contentType string, rd io.Reader) (string, error)) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload)
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("multipart inválido o demasiado grande"))
		return
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("falta el archivo "+field))
		return
	}
	defer file.Close()

	url, err := do(ctx, mw.GetUserID(ctx), header.Header.Get("Content-Type"), file)
	if err != nil {
		logger.From(ctx).Error("image update failed", logger.Err(err))
		writeProfileError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

func writeProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields)
	case errors.Is(err, svc.ErrUserNotFound):
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
	case errors.Is(err, svc.ErrUserExists):
		httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("email ya registrado"))
	case errors.Is(err, svc.ErrInvalidCredentials):
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials.WithDetail("password actual incorrecto"))
	case errors.Is(err, svc.ErrUploadFailed):
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("object storage no disponible"))
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
