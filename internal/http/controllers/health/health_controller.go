// Package health expone los endpoints de liveness y readiness.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/sanikant20/videoTube-Server/internal/http/helpers"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
)

// Pinger es la dependencia mínima de readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Controller struct {
	store Pinger
	cache Pinger // opcional
}

func NewController(store, cache Pinger) *Controller {
	return &Controller{store: store, cache: cache}
}

// Live maneja GET /healthz: el proceso responde.
func (c *Controller) Live(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready maneja GET /readyz: las dependencias responden.
func (c *Controller) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"store": "ok"}
	status := http.StatusOK

	if err := c.store.Ping(ctx); err != nil {
		logger.From(ctx).Warn("store ping failed", logger.Err(err))
		checks["store"] = "down"
		status = http.StatusServiceUnavailable
	}
	if c.cache != nil {
		checks["cache"] = "ok"
		if err := c.cache.Ping(ctx); err != nil {
			// Cache caído degrada, no tumba el readiness.
			checks["cache"] = "down"
		}
	}

	helpers.WriteJSON(w, status, checks)
}
