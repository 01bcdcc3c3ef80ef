// Package channel contiene los controllers del perfil público de canal y
// las listas del espectador.
package channel

import (
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	httperrors "github.com/sanikant20/videoTube-Server/internal/http/errors"
	"github.com/sanikant20/videoTube-Server/internal/http/helpers"
	mw "github.com/sanikant20/videoTube-Server/internal/http/middlewares"
	svc "github.com/sanikant20/videoTube-Server/internal/http/services/channel"
)

type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Profile maneja GET /api/v1/channels/{username}
func (c *Controller) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := c.service.Profile(ctx, chi.URLParam(r, "username"), mw.GetUserID(ctx))
	if err != nil {
		writeChannelError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, profile)
}

// WatchHistory maneja GET /api/v1/users/me/watch-history
func (c *Controller) WatchHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videos, err := c.service.WatchHistory(ctx, mw.GetUserID(ctx))
	if err != nil {
		writeChannelError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, videos)
}

// LikedVideos maneja GET /api/v1/users/me/liked-videos
func (c *Controller) LikedVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videos, err := c.service.LikedVideos(ctx, mw.GetUserID(ctx))
	if err != nil {
		writeChannelError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, videos)
}

func writeChannelError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrChannelNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("canal no encontrado"))
	case errors.Is(err, svc.ErrStoreUnavailable):
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
