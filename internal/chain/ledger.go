package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"go.uber.org/zap"
)

// ErrBillExists is returned when creating a chain for a bill that is already stored.
var ErrBillExists = errors.New("bill already exists")

// Ledger serializes mutations per bill and persists every successful append.
type Ledger struct {
	store   BlockStore
	metrics LedgerMetrics
	logger  *zap.Logger

	mu        sync.Mutex
	locks     map[string]*sync.Mutex
	observers []AppendObserver
}

// NewLedger builds a Ledger on top of store.
func NewLedger(store BlockStore, metrics LedgerMetrics, logger *zap.Logger) *Ledger {
	return &Ledger{
		store:   store,
		metrics: metrics,
		logger:  logger.Named("ledger"),
		locks:   make(map[string]*sync.Mutex),
	}
}

// Observe registers o to be notified after blocks are persisted.
func (l *Ledger) Observe(o AppendObserver) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, o)
}

func (l *Ledger) lock(billName string) func() {
	l.mu.Lock()
	m, ok := l.locks[billName]
	if !ok {
		m = &sync.Mutex{}
		l.locks[billName] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (l *Ledger) notify(ctx context.Context, blocks []model.Block) {
	l.mu.Lock()
	observers := append([]AppendObserver(nil), l.observers...)
	l.mu.Unlock()

	for _, o := range observers {
		o.BlocksAppended(ctx, blocks)
	}
}

// Has reports whether a chain is stored for billName.
func (l *Ledger) Has(ctx context.Context, billName string) (bool, error) {
	return l.store.HasBill(ctx, billName)
}

// Load reads the stored chain of billName.
func (l *Ledger) Load(ctx context.Context, billName string) (*Chain, error) {
	blocks, err := l.store.LoadBlocks(ctx, billName)
	if err != nil {
		return nil, fmt.Errorf("load chain %s: %w", billName, err)
	}
	c, err := FromBlocks(blocks)
	if err != nil {
		return nil, fmt.Errorf("load chain %s: %w", billName, err)
	}
	return c, nil
}

// Create stores a new valid chain.
func (l *Ledger) Create(ctx context.Context, c *Chain) error {
	if err := l.create(ctx, c); err != nil {
		return err
	}
	l.notify(ctx, c.Blocks())
	return nil
}

func (l *Ledger) create(ctx context.Context, c *Chain) error {
	unlock := l.lock(c.BillName())
	defer unlock()

	exists, err := l.store.HasBill(ctx, c.BillName())
	if err != nil {
		return fmt.Errorf("check bill %s: %w", c.BillName(), err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrBillExists, c.BillName())
	}
	if err := c.IsChainValid(); err != nil {
		return err
	}
	if err := l.store.SaveBlocks(ctx, c.BillName(), c.Blocks()); err != nil {
		return fmt.Errorf("save chain %s: %w", c.BillName(), err)
	}
	return nil
}

// Append validates block against the stored chain and persists it.
func (l *Ledger) Append(ctx context.Context, block model.Block) error {
	_, err := l.AppendNext(ctx, block.BillName, func(model.Block) (model.Block, error) {
		return block, nil
	})
	return err
}

// AppendNext builds a block on top of the current last block with build and appends it.
// build runs while the bill is locked, so the last block cannot change underneath it.
// Observers are notified once the lock is released.
func (l *Ledger) AppendNext(ctx context.Context, billName string, build func(last model.Block) (model.Block, error)) (_ model.Block, err error) {
	started := time.Now()
	defer func() {
		l.metrics.ObserveAppend(err, started)
	}()

	block, err := l.appendNext(ctx, billName, build)
	if err != nil {
		return model.Block{}, err
	}
	l.notify(ctx, []model.Block{block})
	return block, nil
}

func (l *Ledger) appendNext(ctx context.Context, billName string, build func(last model.Block) (model.Block, error)) (model.Block, error) {
	unlock := l.lock(billName)
	defer unlock()

	c, err := l.Load(ctx, billName)
	if err != nil {
		return model.Block{}, err
	}

	block, err := build(c.Last())
	if err != nil {
		return model.Block{}, err
	}
	if err := c.TryAddBlock(block); err != nil {
		l.logger.Warn("block rejected",
			zap.String("bill", billName),
			zap.Uint64("id", block.ID),
			zap.String("operation", string(block.OperationCode)),
			zap.Error(err),
		)
		return model.Block{}, err
	}
	if err := l.store.SaveBlocks(ctx, billName, c.Blocks()); err != nil {
		return model.Block{}, fmt.Errorf("save chain %s: %w", billName, err)
	}
	return block, nil
}

// Reconcile adopts the blocks remote has beyond the stored chain. A bill that is not
// stored yet is imported whole when remote is valid. It returns the number of blocks
// written; a partial sync persists the adopted prefix and returns the stopping error.
func (l *Ledger) Reconcile(ctx context.Context, remote *Chain) (added int, err error) {
	started := time.Now()
	defer func() {
		l.metrics.ObserveReconcile(err, added, started)
	}()

	adopted, err := l.reconcile(ctx, remote)
	added = len(adopted)
	if added > 0 {
		l.notify(ctx, adopted)
	}
	if err != nil {
		l.logger.Warn("reconciliation stopped early",
			zap.String("bill", remote.BillName()),
			zap.Int("adopted", added),
			zap.Uint64("remote_last", remote.Last().ID),
			zap.Error(err),
		)
	}
	return added, err
}

// reconcile returns the blocks it persisted.
func (l *Ledger) reconcile(ctx context.Context, remote *Chain) ([]model.Block, error) {
	billName := remote.BillName()
	unlock := l.lock(billName)
	defer unlock()

	exists, err := l.store.HasBill(ctx, billName)
	if err != nil {
		return nil, fmt.Errorf("check bill %s: %w", billName, err)
	}
	if !exists {
		if err := remote.IsChainValid(); err != nil {
			return nil, err
		}
		if err := l.store.SaveBlocks(ctx, billName, remote.Blocks()); err != nil {
			return nil, fmt.Errorf("save chain %s: %w", billName, err)
		}
		return remote.Blocks(), nil
	}

	local, err := l.Load(ctx, billName)
	if err != nil {
		return nil, err
	}
	before := local.Len()

	added, err := CompareChain(local, remote)
	if added == 0 {
		return nil, err
	}
	if saveErr := l.store.SaveBlocks(ctx, billName, local.Blocks()); saveErr != nil {
		return nil, errors.Join(err, fmt.Errorf("save chain %s: %w", billName, saveErr))
	}
	return local.Blocks()[before:], err
}
