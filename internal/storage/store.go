// Package storage persists bill chains, bill keys and the node identity.
package storage

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

// ErrNotFound is returned when a bill, key file or identity does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence backend for bills.
type Store interface {
	LoadBlocks(ctx context.Context, billName string) ([]model.Block, error)
	SaveBlocks(ctx context.Context, billName string, blocks []model.Block) error
	HasBill(ctx context.Context, billName string) (bool, error)
	ListBills(ctx context.Context) ([]string, error)
	LoadKeys(ctx context.Context, billName string) (model.BillKeys, error)
	SaveKeys(ctx context.Context, billName string, keys model.BillKeys) error
}
