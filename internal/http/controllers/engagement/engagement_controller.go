// Package engagement contiene los controllers del toggle de likes y
// suscripciones.
package engagement

import (
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	httperrors "github.com/sanikant20/videoTube-Server/internal/http/errors"
	"github.com/sanikant20/videoTube-Server/internal/http/helpers"
	mw "github.com/sanikant20/videoTube-Server/internal/http/middlewares"
	svc "github.com/sanikant20/videoTube-Server/internal/http/services/engagement"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// Controller expone toggle, status y reconcile sobre cualquier target.
type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// targetFromRequest arma el target desde los path params {targetType}/{targetID}.
func targetFromRequest(r *http.Request) (core.Target, error) {
	tt, err := core.ParseTargetType(chi.URLParam(r, "targetType"))
	if err != nil {
		return core.Target{}, err
	}
	id := chi.URLParam(r, "targetID")
	if id == "" {
		return core.Target{}, core.ErrInvalid
	}
	return core.Target{Type: tt, ID: id}, nil
}

// Toggle maneja POST /api/v1/engagements/{targetType}/{targetID}/toggle
func (c *Controller) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("EngagementController.Toggle"))

	target, err := targetFromRequest(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("target inválido"))
		return
	}

	resp, err := c.service.Toggle(ctx, mw.GetUserID(ctx), target)
	if err != nil {
		log.Debug("toggle failed", logger.Err(err))
		writeEngagementError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Status maneja GET /api/v1/engagements/{targetType}/{targetID}
func (c *Controller) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	target, err := targetFromRequest(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("target inválido"))
		return
	}

	resp, err := c.service.Status(ctx, mw.GetUserID(ctx), target)
	if err != nil {
		writeEngagementError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Reconcile maneja POST /api/v1/engagements/{targetType}/{targetID}/reconcile
func (c *Controller) Reconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("EngagementController.Reconcile"))

	target, err := targetFromRequest(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("target inválido"))
		return
	}

	resp, err := c.service.Reconcile(ctx, target)
	if err != nil {
		log.Debug("reconcile failed", logger.Err(err))
		writeEngagementError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

func writeEngagementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrInvalidTarget):
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("target inválido"))
	case errors.Is(err, svc.ErrTargetNotFound):
		httperrors.WriteError(w, httperrors.ErrTargetNotFound)
	case errors.Is(err, svc.ErrSelfTarget):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("no se puede suscribir al propio canal"))
	case errors.Is(err, svc.ErrStoreUnavailable):
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
