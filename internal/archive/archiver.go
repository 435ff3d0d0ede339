// Package archive copies appended bill blocks into the ClickHouse archive.
package archive

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/pkg/batcher"
	"github.com/goodnatureofminers/bitcredit-backend/pkg/workerpool"
)

// Config controls batching of archive writes.
type Config struct {
	FlushSize     int
	FlushInterval time.Duration
	RPS           int
	Workers       int
}

// Archiver receives ledger appends and writes them to the repository in batches.
type Archiver struct {
	repo    Repository
	metrics Metrics
	batcher *batcher.Batcher[model.Block]
	workers int
	logger  *zap.Logger
}

// New creates an Archiver. Call Start before blocks are appended.
func New(repo Repository, metrics Metrics, cfg Config, logger *zap.Logger) *Archiver {
	a := &Archiver{
		repo:    repo,
		metrics: metrics,
		workers: cfg.Workers,
		logger:  logger.Named("archiver"),
	}
	a.batcher = batcher.New(a.logger, a.flush, batcher.Config{
		FlushSize:     cfg.FlushSize,
		FlushInterval: cfg.FlushInterval,
		RPS:           cfg.RPS,
	})
	return a
}

// Start runs the flushing loop until ctx is done or Stop is called.
func (a *Archiver) Start(ctx context.Context) {
	a.batcher.Start(ctx)
}

// Stop flushes buffered blocks and stops the loop.
func (a *Archiver) Stop() {
	a.batcher.Stop()
}

// BlocksAppended queues blocks for archiving. Blocks that cannot be queued are
// counted and dropped; Backfill picks them up on the next start.
func (a *Archiver) BlocksAppended(ctx context.Context, blocks []model.Block) {
	for i, block := range blocks {
		if err := a.batcher.Add(ctx, block); err != nil {
			a.metrics.ObserveDropped(len(blocks) - i)
			a.logger.Warn("blocks not queued for archive",
				zap.String("bill", block.BillName),
				zap.Int("dropped", len(blocks)-i),
				zap.Error(err),
			)
			return
		}
	}
}

func (a *Archiver) flush(ctx context.Context, blocks []model.Block) (err error) {
	started := time.Now()
	defer func() {
		a.metrics.ObserveFlush(err, len(blocks), started)
	}()

	return a.repo.InsertBlocks(ctx, blocks)
}

// Backfill archives the blocks of every stored bill that are newer than the
// highest archived id of that bill.
func (a *Archiver) Backfill(ctx context.Context, source Source) error {
	bills, err := source.ListBills(ctx)
	if err != nil {
		return fmt.Errorf("list bills: %w", err)
	}

	return workerpool.Process(ctx, a.workers, bills, func(ctx context.Context, bill string) error {
		return a.backfillBill(ctx, source, bill)
	}, func(bill string, err error) {
		a.logger.Error("backfill failed", zap.String("bill", bill), zap.Error(err))
	})
}

func (a *Archiver) backfillBill(ctx context.Context, source Source, bill string) error {
	archived, err := a.repo.MaxBlockID(ctx, bill)
	if err != nil {
		return fmt.Errorf("max archived id of %s: %w", bill, err)
	}
	blocks, err := source.LoadBlocks(ctx, bill)
	if err != nil {
		return fmt.Errorf("load %s: %w", bill, err)
	}

	var missing []model.Block
	for _, b := range blocks {
		if b.ID > archived {
			missing = append(missing, b)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	if err := a.flush(ctx, missing); err != nil {
		return fmt.Errorf("archive %s: %w", bill, err)
	}
	a.logger.Info("bill backfilled", zap.String("bill", bill), zap.Int("blocks", len(missing)))
	return nil
}
