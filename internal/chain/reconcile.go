package chain

import "fmt"

// CompareChain adopts the blocks remote has beyond the last block of local, in id order.
// It is forward only: when local is at least as long as remote nothing happens, and
// chains of equal length are never merged. It stops at the first block that cannot be
// appended and returns how many blocks were adopted before that.
func CompareChain(local, remote *Chain) (int, error) {
	if local.BillName() != remote.BillName() {
		return 0, fmt.Errorf("%w: %s and %s", ErrBillMismatch, local.BillName(), remote.BillName())
	}

	localLast, remoteLast := local.Last().ID, remote.Last().ID
	if localLast >= remoteLast {
		return 0, nil
	}
	if err := local.IsChainValid(); err != nil {
		return 0, fmt.Errorf("local chain: %w", err)
	}

	added := 0
	for id := localLast + 1; id <= remoteLast; id++ {
		block, err := remote.BlockByID(id).UnwrapOrErr(fmt.Errorf("block %d: %w", id, ErrMissingBlock))
		if err != nil {
			return added, err
		}
		// TryAddBlock keeps the chain valid, so a successful append needs no full re-check.
		if err := local.TryAddBlock(block); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
