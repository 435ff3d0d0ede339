package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

// InsertBlocks stores block rows in ClickHouse. Rows are deduplicated on
// (bill_name, id) by the table engine, so re-archiving a block is harmless.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_blocks", err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	const query = `
INSERT INTO bill_blocks (
	bill_name,
	id,
	hash,
	previous_hash,
	timestamp,
	data,
	signature,
	public_key,
	operation_code
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, block := range blocks {
		if err = batch.Append(
			block.BillName,
			block.ID,
			block.Hash,
			block.PreviousHash,
			time.Unix(block.Timestamp, 0).UTC(),
			block.Data,
			block.Signature,
			block.PublicKey,
			string(block.OperationCode),
		); err != nil {
			return fmt.Errorf("append block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}
