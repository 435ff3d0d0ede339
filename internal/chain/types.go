package chain

import (
	"context"
	"time"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockStore interface {
		LoadBlocks(ctx context.Context, billName string) ([]model.Block, error)
		SaveBlocks(ctx context.Context, billName string, blocks []model.Block) error
		HasBill(ctx context.Context, billName string) (bool, error)
	}
	PaymentOracle interface {
		Paid(ctx context.Context, address string, amount uint64) (bool, error)
	}
	LedgerMetrics interface {
		ObserveAppend(err error, started time.Time)
		ObserveReconcile(err error, added int, started time.Time)
	}
	AppendObserver interface {
		BlocksAppended(ctx context.Context, blocks []model.Block)
	}
)
