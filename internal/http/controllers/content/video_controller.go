// Package content contiene los controllers de videos, comments y tweets.
package content

import (
	"errors"
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/content"
	httperrors "github.com/sanikant20/videoTube-Server/internal/http/errors"
	"github.com/sanikant20/videoTube-Server/internal/http/helpers"
	mw "github.com/sanikant20/videoTube-Server/internal/http/middlewares"
	svc "github.com/sanikant20/videoTube-Server/internal/http/services/content"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
)

// maxVideoUpload acota el multipart completo de publicación.
const maxVideoUpload = 512 << 20 // 512MB

// VideoController maneja el CRUD de videos.
type VideoController struct {
	service svc.VideoService
}

func NewVideoController(service svc.VideoService) *VideoController {
	return &VideoController{service: service}
}

// Publish maneja POST /api/v1/videos (multipart: video, thumbnail, title,
// description, duration).
func (c *VideoController) Publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("VideoController.Publish"))

	r.Body = http.MaxBytesReader(w, r.Body, maxVideoUpload)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("multipart inválido o demasiado grande"))
		return
	}

	req := dto.CreateVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if d := r.FormValue("duration"); d != "" {
		if dur, err := strconv.ParseFloat(d, 64); err == nil {
			req.Duration = dur
		}
	}

	videoFile, videoHeader, err := r.FormFile("video")
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("falta el archivo video"))
		return
	}
	defer videoFile.Close()
	video := svc.Upload{ContentType: videoHeader.Header.Get("Content-Type"), Reader: videoFile}

	var thumb svc.Upload
	if f, h, err := r.FormFile("thumbnail"); err == nil {
		defer f.Close()
		thumb = svc.Upload{ContentType: h.Header.Get("Content-Type"), Reader: f}
	}

	resp, err := c.service.Publish(ctx, mw.GetUserID(ctx), req, video, thumb)
	if err != nil {
		log.Debug("publish failed", logger.Err(err))
		writeContentError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}

// Get maneja GET /api/v1/videos/{videoID}
func (c *VideoController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := c.service.Get(ctx, mw.GetUserID(ctx), chi.URLParam(r, "videoID"))
	if err != nil {
		writeContentError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// ListByOwner maneja GET /api/v1/videos?owner={userID}
func (c *VideoController) ListByOwner(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		owner = mw.GetUserID(r.Context())
	}
	if owner == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("falta el parámetro owner"))
		return
	}
	resp, err := c.service.ListByOwner(r.Context(), owner)
	if err != nil {
		writeContentError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Update maneja PATCH /api/v1/videos/{videoID}
func (c *VideoController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.UpdateVideoRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	resp, err := c.service.Update(ctx, mw.GetUserID(ctx), chi.URLParam(r, "videoID"), req)
	if err != nil {
		writeContentError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// TogglePublish maneja POST /api/v1/videos/{videoID}/toggle-publish
func (c *VideoController) TogglePublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := c.service.TogglePublish(ctx, mw.GetUserID(ctx), chi.URLParam(r, "videoID"))
	if err != nil {
		writeContentError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Delete maneja DELETE /api/v1/videos/{videoID}
func (c *VideoController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := c.service.Delete(ctx, mw.GetUserID(ctx), chi.URLParam(r, "videoID")); err != nil {
		writeContentError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeContentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields)
	case errors.Is(err, svc.ErrNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound)
	case errors.Is(err, svc.ErrForbidden):
		httperrors.WriteError(w, httperrors.ErrForbidden)
	case errors.Is(err, svc.ErrUploadFailed):
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("object storage no disponible"))
	case errors.Is(err, svc.ErrStoreUnavailable):
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
