package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncUpgradeTableTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "upgrade_table_total",
		Help:      "Count of directory upgrades.",
	}, []string{"status", "written"})

	syncUpgradeTableDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "upgrade_table_duration_seconds",
		Help:      "Duration of directory upgrades.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	syncCheckNewBillsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "check_new_bills_total",
		Help:      "Count of scans for bills listed in the directory but missing locally.",
	}, []string{"status"})

	syncCheckNewBillsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "check_new_bills_duration_seconds",
		Help:      "Duration of scans for missing bills.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"status"})

	syncImportedBills = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "imported_bills_total",
		Help:      "Number of bills fetched from providers.",
	})
)

// Sync tracks metrics for the periodic directory synchronization.
type Sync struct{}

// NewSync creates a Sync metrics collector.
func NewSync() *Sync {
	return &Sync{}
}

// ObserveUpgradeTable records a directory upgrade and whether it wrote a record.
func (m Sync) ObserveUpgradeTable(err error, written bool, started time.Time) {
	status := statusOf(err)
	w := "false"
	if written {
		w = "true"
	}
	syncUpgradeTableTotal.WithLabelValues(status, w).Inc()
	syncUpgradeTableDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveCheckNewBills records a scan for missing bills and how many were imported.
func (m Sync) ObserveCheckNewBills(err error, imported int, started time.Time) {
	status := statusOf(err)
	syncCheckNewBillsTotal.WithLabelValues(status).Inc()
	syncCheckNewBillsDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if imported > 0 {
		syncImportedBills.Add(float64(imported))
	}
}
