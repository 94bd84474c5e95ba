// Package metrics holds the Prometheus collectors shared by the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CASAttempts counts compare-and-swap attempts by operation and result
	// (ok, conflict, transient, error).
	CASAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "askdev_cas_attempts_total",
		Help: "Compare-and-swap attempts by operation and result",
	}, []string{"operation", "result"})

	// CASExhausted counts operations that gave up after the retry budget.
	CASExhausted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "askdev_cas_exhausted_total",
		Help: "Operations that exhausted their retry budget, by operation and kind",
	}, []string{"operation", "kind"})

	// EventsDispatched counts events handed to subscribers by result.
	EventsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "askdev_events_dispatched_total",
		Help: "Domain events dispatched to subscribers by kind and result",
	}, []string{"kind", "result"})

	// NotificationsCreated counts notifications actually inserted (dedup hits excluded).
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "askdev_notifications_created_total",
		Help: "Notifications created by kind",
	}, []string{"kind"})

	// ReputationApplied counts reputation deltas by outcome (applied, duplicate).
	ReputationApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "askdev_reputation_deltas_total",
		Help: "Reputation deltas by outcome",
	}, []string{"outcome"})

	// RelayLag tracks how many pending events each relay pass found.
	RelayLag = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "askdev_outbox_pending_events",
		Help:    "Pending events found per relay pass",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 500},
	})

	// HTTPRequests counts served requests by route, method and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "askdev_http_requests_total",
		Help: "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "askdev_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
