package payment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Oracle answers whether an address has received a given amount.
type Oracle struct {
	client  statsClient
	metrics oracleMetrics
	rl      ratelimit.Limiter
	logger  *zap.Logger
}

// NewOracle wraps client with a request rate of rps per second.
func NewOracle(client statsClient, metrics oracleMetrics, rps int, logger *zap.Logger) *Oracle {
	rl := ratelimit.NewUnlimited()
	if rps > 0 {
		rl = ratelimit.New(rps)
	}
	return &Oracle{
		client:  client,
		metrics: metrics,
		rl:      rl,
		logger:  logger.Named("payment_oracle"),
	}
}

// Paid reports whether address has received at least amount satoshi.
// Callers treat a returned error as unpaid.
func (o *Oracle) Paid(ctx context.Context, address string, amount uint64) (_ bool, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("address_stats", err, started)
	}()

	o.rl.Take()
	stats, err := o.client.AddressStats(ctx, address)
	if err != nil {
		return false, fmt.Errorf("address stats %s: %w", address, err)
	}

	received, err := stats.Received()
	if err != nil {
		return false, fmt.Errorf("address stats %s: %w", address, err)
	}
	o.logger.Debug("address stats",
		zap.String("address", address),
		zap.Uint64("received", received),
		zap.Uint64("amount", amount),
	)
	return received >= amount, nil
}
