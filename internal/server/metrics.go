package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome labels.
const (
	outcomeSuccess       = "success"
	outcomeWrongPassword = "wrong_password"
	outcomeFetchError    = "fetch_error"
	outcomeConfiguration = "configuration_error"
	outcomeRateLimited   = "rate_limited"
	outcomeFailed        = "failed"
	outcomeInternalError = "internal_error"
)

// metrics holds the gallery's Prometheus collectors on a private registry.
type metrics struct {
	registry       *prometheus.Registry
	unlockAttempts *prometheus.CounterVec
	photosDecoded  *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		unlockAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "photolock",
			Name:      "unlock_attempts_total",
			Help:      "Gallery unlock attempts by outcome.",
		}, []string{"outcome"}),
		photosDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "photolock",
			Name:      "photos_decoded_total",
			Help:      "Gallery photos decoded by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.unlockAttempts,
		m.photosDecoded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}
