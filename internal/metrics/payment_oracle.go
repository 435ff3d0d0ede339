package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentOracleRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "payment_oracle",
		Name:      "requests_total",
		Help:      "Count of payment oracle requests.",
	}, []string{"operation", "network", "status"})
	paymentOracleRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "payment_oracle",
		Name:      "request_duration_seconds",
		Help:      "Duration of payment oracle requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// PaymentOracle tracks metrics for explorer lookups.
type PaymentOracle struct {
	network string
}

// NewPaymentOracle constructs a metrics collector for explorer lookups.
func NewPaymentOracle(network string) *PaymentOracle {
	if network == "" {
		network = "unknown"
	}
	return &PaymentOracle{network: network}
}

// Observe records a single request outcome and duration.
func (m PaymentOracle) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	paymentOracleRequestsTotal.WithLabelValues(operation, m.network, status).Inc()
	paymentOracleRequestDuration.WithLabelValues(operation, m.network, status).Observe(time.Since(started).Seconds())
}
