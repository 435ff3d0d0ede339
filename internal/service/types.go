package service

import (
	"context"
	"crypto/rsa"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/goodnatureofminers/bitcredit-backend/internal/chain"
	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/internal/network"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ledger interface {
		Has(ctx context.Context, billName string) (bool, error)
		Load(ctx context.Context, billName string) (*chain.Chain, error)
		Create(ctx context.Context, c *chain.Chain) error
		Append(ctx context.Context, block model.Block) error
		AppendNext(ctx context.Context, billName string, build func(last model.Block) (model.Block, error)) (model.Block, error)
		Reconcile(ctx context.Context, remote *chain.Chain) (int, error)
	}
	KeyStore interface {
		ListBills(ctx context.Context) ([]string, error)
		LoadKeys(ctx context.Context, billName string) (model.BillKeys, error)
		SaveKeys(ctx context.Context, billName string, keys model.BillKeys) error
	}
	Replayer interface {
		Snapshot(ctx context.Context, c *chain.Chain, billKey *rsa.PrivateKey) (model.Snapshot, error)
		CurrentHolder(ctx context.Context, c *chain.Chain, billKey *rsa.PrivateKey) (model.Identity, error)
		PaymentStatus(ctx context.Context, c *chain.Chain, billKey *rsa.PrivateKey) (chain.PaymentStatus, error)
	}
	Network interface {
		Self() peer.ID
		Subscribe(ctx context.Context, topic string) error
		Publish(ctx context.Context, topic string, data []byte) error
		StartProviding(ctx context.Context, billName string) error
		GetProviders(ctx context.Context, billName string) ([]peer.ID, error)
		RaceProviders(ctx context.Context, providers []peer.ID, billName string) ([]byte, error)
		RespondFile(ctx context.Context, channel network.ResponseChannel, data []byte) error
		GetBills(ctx context.Context, p peer.ID) ([]string, error)
		PutBills(ctx context.Context, p peer.ID, bills []string) error
		GetIdentity(ctx context.Context, p peer.ID) (model.Identity, bool, error)
		PutIdentity(ctx context.Context, identity model.Identity) error
	}
	SyncMetrics interface {
		ObserveUpgradeTable(err error, written bool, started time.Time)
		ObserveCheckNewBills(err error, imported int, started time.Time)
	}
)
