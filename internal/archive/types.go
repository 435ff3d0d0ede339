package archive

import (
	"context"
	"time"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		InsertBlocks(ctx context.Context, blocks []model.Block) error
		MaxBlockID(ctx context.Context, billName string) (uint64, error)
	}
	Source interface {
		ListBills(ctx context.Context) ([]string, error)
		LoadBlocks(ctx context.Context, billName string) ([]model.Block, error)
	}
	Metrics interface {
		ObserveFlush(err error, blocks int, started time.Time)
		ObserveDropped(blocks int)
	}
)
