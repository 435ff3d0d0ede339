package payment

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	statsClient interface {
		AddressStats(ctx context.Context, address string) (AddressStats, error)
	}
	oracleMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
