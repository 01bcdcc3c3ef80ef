// Package metrics define los contadores Prometheus del servicio. Viven en un
// paquete propio para evitar ciclos de import entre services y HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Requests HTTP por método, ruta y status",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "Duración de requests HTTP en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"method", "route"})

	EngagementToggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engagement_toggles_total",
		Help: "Toggles de engagement por tipo de target y resultado (on/off)",
	}, []string{"target_type", "result"})

	TokenReuseDetected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "token_reuse_detected_total",
		Help: "Intentos de refresh con un token ya rotado o revocado",
	})

	CounterReconciliations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "counter_reconciliations_total",
		Help: "Reconciliaciones de contadores por tipo de target y si hubo drift",
	}, []string{"target_type", "drift"})
)

// Register registra todas las métricas en el registry dado (default si nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		HTTPRequests, HTTPDuration, EngagementToggles, TokenReuseDetected, CounterReconciliations,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
