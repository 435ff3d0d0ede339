package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

// BlocksByBill returns the archived blocks of a bill ordered by id.
func (r *Repository) BlocksByBill(ctx context.Context, billName string) (_ []model.Block, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("blocks_by_bill", err, start)
	}()

	const query = `
SELECT
	id,
	hash,
	previous_hash,
	timestamp,
	data,
	signature,
	public_key,
	operation_code
FROM bill_blocks FINAL
WHERE bill_name = ?
ORDER BY id`

	rows, err := r.conn.Query(ctx, query, billName)
	if err != nil {
		return nil, fmt.Errorf("query blocks by bill: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var blocks []model.Block
	for rows.Next() {
		var (
			block     model.Block
			timestamp time.Time
			operation string
		)
		if err = rows.Scan(
			&block.ID,
			&block.Hash,
			&block.PreviousHash,
			&timestamp,
			&block.Data,
			&block.Signature,
			&block.PublicKey,
			&operation,
		); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}

		block.BillName = billName
		block.Timestamp = timestamp.Unix()
		if block.OperationCode, err = model.ParseOperationCode(operation); err != nil {
			return nil, fmt.Errorf("block %d: %w", block.ID, err)
		}
		blocks = append(blocks, block)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocks: %w", err)
	}

	return blocks, nil
}
