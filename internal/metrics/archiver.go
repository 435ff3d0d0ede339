package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	archiverFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "flush_total",
		Help:      "Count of archive flushes.",
	}, []string{"status"})

	archiverFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "flush_duration_seconds",
		Help:      "Duration of archive flushes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	archiverFlushSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "flush_size",
		Help:      "Number of blocks per archive flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1..512
	})

	archiverDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "dropped_blocks_total",
		Help:      "Blocks not queued because the archiver was closed.",
	})
)

// Archiver tracks metrics for the block archive pipeline.
type Archiver struct{}

// NewArchiver creates an Archiver metrics collector.
func NewArchiver() *Archiver {
	return &Archiver{}
}

// ObserveFlush records a flush of blocks into the archive.
func (m Archiver) ObserveFlush(err error, blocks int, started time.Time) {
	status := statusOf(err)
	archiverFlushTotal.WithLabelValues(status).Inc()
	archiverFlushDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	archiverFlushSize.Observe(float64(blocks))
}

// ObserveDropped records blocks that could not be queued.
func (m Archiver) ObserveDropped(blocks int) {
	archiverDropped.Add(float64(blocks))
}
