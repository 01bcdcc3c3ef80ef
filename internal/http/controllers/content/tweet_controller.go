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

// TweetController maneja los posts cortos.
type TweetController struct {
	service svc.TweetService
}

func NewTweetController(service svc.TweetService) *TweetController {
	return &TweetController{service: service}
}

// Create maneja POST /api/v1/tweets
func (c *TweetController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CreateTweetRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	resp, err := c.service.Create(ctx, mw.GetUserID(ctx), req)
	if err != nil {
		writeContentError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}

// ListByOwner maneja GET /api/v1/tweets?owner={userID}
func (c *TweetController) ListByOwner(w http.ResponseWriter, r *http.Request) {
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

// Update maneja PATCH /api/v1/tweets/{tweetID}
func (c *TweetController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.UpdateTweetRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	resp, err := c.service.Update(ctx, mw.GetUserID(ctx), chi.URLParam(r, "tweetID"), req)
	if err != nil {
		writeContentError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Delete maneja DELETE /api/v1/tweets/{tweetID}
func (c *TweetController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := c.service.Delete(ctx, mw.GetUserID(ctx), chi.URLParam(r, "tweetID")); err != nil {
		writeContentError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
