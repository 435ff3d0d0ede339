package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/bitcredit-backend/internal/billcrypto"
	"github.com/goodnatureofminers/bitcredit-backend/internal/chain"
	"github.com/goodnatureofminers/bitcredit-backend/internal/clock"
	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

// DefaultSyncInterval is the pause between two directory synchronizations.
const DefaultSyncInterval = time.Minute

// SyncConfig configures the periodic directory synchronization.
type SyncConfig struct {
	Interval   time.Duration
	MaxBackoff time.Duration
}

// Sync keeps the directory entry of this node complete and fetches bills other
// participants shared with it.
type Sync struct {
	bills    *BillService
	identity model.LocalIdentity
	metrics  SyncMetrics
	sleep    clock.Sleeper
	cfg      SyncConfig
	logger   *zap.Logger
}

// NewSync builds a Sync on top of the bill service of the same node.
func NewSync(bills *BillService, identity model.LocalIdentity, metrics SyncMetrics, sleep clock.Sleeper, cfg SyncConfig, logger *zap.Logger) *Sync {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultSyncInterval
	}
	if cfg.MaxBackoff < cfg.Interval {
		cfg.MaxBackoff = 10 * cfg.Interval
	}
	if sleep == nil {
		sleep = clock.SleepWithContext
	}
	return &Sync{
		bills:    bills,
		identity: identity,
		metrics:  metrics,
		sleep:    sleep,
		cfg:      cfg,
		logger:   logger.Named("sync"),
	}
}

// Start publishes the node identity and announces every local bill.
func (s *Sync) Start(ctx context.Context) error {
	if err := s.bills.network.PutIdentity(ctx, s.identity.Identity); err != nil {
		s.logger.Warn("publish identity failed", zap.Error(err))
	}

	names, err := s.bills.keys.ListBills(ctx)
	if err != nil {
		return fmt.Errorf("list bills: %w", err)
	}
	for _, name := range names {
		s.bills.announce(ctx, name)
	}
	s.logger.Info("node announced", zap.Stringer("peer", s.bills.network.Self()), zap.Int("bills", len(names)))
	return nil
}

// Run synchronizes until ctx is done, backing off after failed iterations.
func (s *Sync) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}

	delay := s.cfg.Interval
	for {
		err := s.syncOnce(ctx)
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			delay = min(delay*2, s.cfg.MaxBackoff)
			s.logger.Error("sync iteration failed", zap.Duration("retry_in", delay), zap.Error(err))
		default:
			delay = s.cfg.Interval
		}

		if err := s.sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func (s *Sync) syncOnce(ctx context.Context) error {
	upgradeErr := s.UpgradeTable(ctx)
	_, checkErr := s.CheckNewBills(ctx)
	return errors.Join(upgradeErr, checkErr)
}

// UpgradeTable makes sure the directory entry of this node lists every local bill.
// Nothing is written when the entry is already complete.
func (s *Sync) UpgradeTable(ctx context.Context) (err error) {
	started := time.Now()
	written := false
	defer func() {
		s.metrics.ObserveUpgradeTable(err, written, started)
	}()

	local, err := s.bills.keys.ListBills(ctx)
	if err != nil {
		return fmt.Errorf("list bills: %w", err)
	}
	self := s.bills.network.Self()
	listed, err := s.bills.network.GetBills(ctx, self)
	if err != nil {
		return err
	}

	var missing []string
	for _, name := range local {
		if !slices.Contains(listed, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	if err = s.bills.network.PutBills(ctx, self, append(listed, missing...)); err != nil {
		return err
	}
	written = true

	for _, name := range missing {
		if err := s.bills.network.StartProviding(ctx, name); err != nil {
			s.logger.Warn("start providing failed", zap.String("bill", name), zap.Error(err))
		}
	}
	s.logger.Info("directory entry upgraded", zap.Int("added", len(missing)))
	return nil
}

// CheckNewBills fetches the bills listed for this node that are not stored locally.
// A bill that cannot be fetched is skipped until the next run.
func (s *Sync) CheckNewBills(ctx context.Context) (imported int, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveCheckNewBills(err, imported, started)
	}()

	listed, err := s.bills.network.GetBills(ctx, s.bills.network.Self())
	if err != nil {
		return 0, err
	}

	for _, name := range listed {
		held, err := s.bills.ledger.Has(ctx, name)
		if err != nil {
			return imported, err
		}
		if held {
			continue
		}
		if err := s.importBill(ctx, name); err != nil {
			s.logger.Warn("bill import failed", zap.String("bill", name), zap.Error(err))
			continue
		}
		imported++
	}
	return imported, nil
}

func (s *Sync) importBill(ctx context.Context, billName string) error {
	providers, err := s.bills.network.GetProviders(ctx, billName)
	if err != nil {
		return err
	}
	if len(providers) == 0 {
		return ErrNoProviders
	}
	data, err := s.bills.network.RaceProviders(ctx, providers, billName)
	if err != nil {
		return err
	}

	recipient, err := billcrypto.ParsePrivateKeyPEM(s.identity.RSAPrivateKey)
	if err != nil {
		return fmt.Errorf("parse identity key: %w", err)
	}
	remote, keys, err := decodeBundle(data, recipient)
	if err != nil {
		return err
	}
	if remote.BillName() != billName || billcrypto.BillName(keys.PublicKey) != billName {
		return fmt.Errorf("%w: bundle holds %s, want %s", ErrMalformedBundle, remote.BillName(), billName)
	}
	if err := remote.IsChainValid(); err != nil {
		return err
	}

	if err := s.bills.keys.SaveKeys(ctx, billName, keys); err != nil {
		return fmt.Errorf("save keys of %s: %w", billName, err)
	}
	if _, err := s.bills.ledger.Reconcile(ctx, remote); err != nil {
		return err
	}

	s.logger.Info("bill imported", zap.String("bill", billName), zap.Int("blocks", remote.Len()))
	s.bills.announce(ctx, billName)
	return nil
}

// serveBill builds the bundle answering a request of p. Only participants of a
// locally held bill with a published identity are served.
func (s *Sync) serveBill(ctx context.Context, p peer.ID, billName string) ([]byte, error) {
	c, billKey, err := s.bills.open(ctx, billName)
	if err != nil {
		return nil, err
	}
	participates, err := chain.ContainsNode(c, billKey, p.String())
	if err != nil {
		return nil, err
	}
	if !participates {
		return nil, ErrNotParticipant
	}

	keys, err := s.bills.keys.LoadKeys(ctx, billName)
	if err != nil {
		return nil, fmt.Errorf("load keys of %s: %w", billName, err)
	}
	recipient, err := s.recipientKey(ctx, p)
	if err != nil {
		return nil, err
	}
	return encodeBundle(c, keys, recipient)
}
