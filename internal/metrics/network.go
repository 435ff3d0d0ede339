package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	networkCommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "network",
		Name:      "commands_total",
		Help:      "Count of commands handled by the network event loop.",
	}, []string{"command", "status"})

	networkCommandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "network",
		Name:      "command_duration_seconds",
		Help:      "Duration from command submission to its reply.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"command", "status"})

	networkRecordOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "network",
		Name:      "record_lookups_total",
		Help:      "Count of directory record lookups by outcome.",
	}, []string{"outcome"})
)

// Network tracks metrics for the peer distribution layer.
type Network struct{}

// NewNetwork creates a Network metrics collector.
func NewNetwork() *Network {
	return &Network{}
}

// Observe records a single command outcome and duration.
func (m Network) Observe(command string, err error, started time.Time) {
	status := statusOf(err)
	networkCommandsTotal.WithLabelValues(command, status).Inc()
	networkCommandDuration.WithLabelValues(command, status).Observe(time.Since(started).Seconds())
}

// ObserveRecord records the outcome of a record lookup.
func (m Network) ObserveRecord(outcome string) {
	networkRecordOutcomes.WithLabelValues(outcome).Inc()
}
