package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// MaxBlockID returns the highest archived block id of a bill, zero when none is archived.
func (r *Repository) MaxBlockID(ctx context.Context, billName string) (_ uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_block_id", err, start)
	}()

	const query = `
SELECT coalesce(max(id), toUInt64(0)) AS max_id
FROM bill_blocks
WHERE bill_name = ?`

	rows, err := r.conn.Query(ctx, query, billName)
	if err != nil {
		return 0, fmt.Errorf("query max block id: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var id uint64
	if !rows.Next() {
		return 0, errors.New("max block id not found")
	}

	if err = rows.Scan(&id); err != nil {
		return 0, fmt.Errorf("scan max block id: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate max block id: %w", err)
	}

	return id, nil
}
