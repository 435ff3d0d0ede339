// Package transport exposes the node over a gRPC control API and a REST read API.
package transport

import (
	"context"

	"github.com/goodnatureofminers/bitcredit-backend/internal/chain"
	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/internal/service"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Bills interface {
		Issue(ctx context.Context, req service.IssueRequest) (model.Bill, error)
		Endorse(ctx context.Context, billName string, endorsee model.Identity) (model.Block, error)
		Sell(ctx context.Context, billName string, buyer model.Identity, amount uint64) (model.Block, error)
		Accept(ctx context.Context, billName string) (model.Block, error)
		RequestToAccept(ctx context.Context, billName string) (model.Block, error)
		RequestToPay(ctx context.Context, billName string) (model.Block, error)
		Snapshot(ctx context.Context, billName string) (model.Snapshot, error)
		List(ctx context.Context) ([]model.Snapshot, error)
		Chain(ctx context.Context, billName string) (*chain.Chain, error)
	}
	Syncer interface {
		UpgradeTable(ctx context.Context) error
		CheckNewBills(ctx context.Context) (int, error)
	}
)
