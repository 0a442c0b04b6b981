package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "storefront"
)

var (
	// GateDecisionsTotal counts access gate outcomes by path class and action
	GateDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_decisions_total",
			Help:      "Total number of access gate decisions",
		},
		[]string{"class", "action"},
	)

	// LoginAttemptsTotal counts admin login attempts by result
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Total number of admin login attempts",
		},
		[]string{"result"},
	)

	// UpstreamRequestDuration measures calls to the hosted data and storage APIs
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Time spent waiting on upstream REST and storage calls",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"service", "operation", "status"},
	)
)

// Login results
const (
	LoginSuccess      = "success"
	LoginInvalid      = "invalid_credentials"
	LoginBadRequest   = "bad_request"
	LoginUnconfigured = "unconfigured"
)

// Upstream services
const (
	ServiceDatabase = "database"
	ServiceStorage  = "storage"
)
