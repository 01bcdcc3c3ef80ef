package content

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/content"
	httperrors "github.com/sanikant20/videoTube-Server/internal/http/errors"
	"github.com/sanikant20/videoTube-Server/internal/http/helpers"
	mw "github.com/sanikant20/videoTube-Server/internal/http/middlewares"
	svc "github.com/sanikant20/videoTube-Server/internal/http/services/content"
)

// CommentController maneja comments sobre videos.
type CommentController struct {
	service svc.CommentService
}

func NewCommentController(service svc.CommentService) *CommentController {
	return &CommentController{service: service}
}

// Create maneja POST /api/v1/videos/{videoID}/comments
func (c *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CreateCommentRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	resp, err := c.service.Create(ctx, mw.GetUserID(ctx), chi.URLParam(r, "videoID"), req)
	if err != nil {
		writeContentError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}

// ListByVideo maneja GET /api/v1/videos/{videoID}/comments
func (c *CommentController) ListByVideo(w http.ResponseWriter, r *http.Request) {
	resp, err := c.service.ListByVideo(r.Context(), chi.URLParam(r, "videoID"))
	if err != nil {
		writeContentError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Update maneja PATCH /api/v1/comments/{commentID}
func (c *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.UpdateCommentRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	resp, err := c.service.Update(ctx, mw.GetUserID(ctx), chi.URLParam(r, "commentID"), req)
	if err != nil {
		writeContentError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Delete maneja DELETE /api/v1/comments/{commentID}
func (c *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := c.service.Delete(ctx, mw.GetUserID(ctx), chi.URLParam(r, "commentID")); err != nil {
		writeContentError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
