// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bitcredit"

var (
	chainAppendTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chain",
		Name:      "append_total",
		Help:      "Count of block append attempts.",
	}, []string{"status"})

	chainAppendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "chain",
		Name:      "append_duration_seconds",
		Help:      "Duration of appending a block including persistence.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	chainReconcileTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chain",
		Name:      "reconcile_total",
		Help:      "Count of reconciliations against a remote chain.",
	}, []string{"status"})

	chainReconcileDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "chain",
		Name:      "reconcile_duration_seconds",
		Help:      "Duration of reconciliations against a remote chain.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	chainReconcileAdopted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chain",
		Name:      "reconcile_adopted_blocks_total",
		Help:      "Number of blocks adopted from remote chains.",
	})
)

// Ledger tracks metrics for ledger mutations.
type Ledger struct{}

// NewLedger creates a Ledger metrics collector.
func NewLedger() *Ledger {
	return &Ledger{}
}

// ObserveAppend records an append attempt outcome and duration.
func (m Ledger) ObserveAppend(err error, started time.Time) {
	status := statusOf(err)
	chainAppendTotal.WithLabelValues(status).Inc()
	chainAppendDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveReconcile records a reconciliation and the number of blocks it adopted.
func (m Ledger) ObserveReconcile(err error, added int, started time.Time) {
	status := statusOf(err)
	chainReconcileTotal.WithLabelValues(status).Inc()
	chainReconcileDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if added > 0 {
		chainReconcileAdopted.Add(float64(added))
	}
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
