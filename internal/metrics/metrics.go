// Package metrics holds the Prometheus collectors of the attendance server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/officeplan/internal/models"
)

const namespace = "officeplan"

var (
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "Connect RPCs handled, by procedure and result code.",
	}, []string{"procedure", "code"})

	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "Connect RPC latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Cell activations, by previous and next status.",
	}, []string{"from", "to"})

	CapacityAdvisories = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "capacity_advisories_total",
		Help:      "Activations that pushed a date over the seat count.",
	})

	SweepRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_removed_total",
		Help:      "Attendance entries removed by integrity sweeps.",
	}, []string{"kind"})

	UnlockAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unlock_attempts_total",
		Help:      "Password challenges, by result.",
	}, []string{"result"})
)

// Sweep kinds.
const (
	SweepRetention = "retention"
	SweepOrphans   = "orphans"
	SweepCascade   = "cascade"
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StatusLabel renders an optional status for the Transitions "from" label.
func StatusLabel(s *models.Status) string {
	if s == nil {
		return "none"
	}
	return string(*s)
}
