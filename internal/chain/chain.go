// Package chain implements the per-bill append-only ledger: block validity,
// reconciliation with remote copies and replay of the current bill state.
package chain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Chain is the ordered, non-empty block sequence of a single bill.
type Chain struct {
	blocks []model.Block
}

// New starts a chain from its genesis block.
func New(genesis model.Block) *Chain {
	return &Chain{blocks: []model.Block{genesis}}
}

// FromBlocks wraps stored blocks without validating them.
func FromBlocks(blocks []model.Block) (*Chain, error) {
	if len(blocks) == 0 {
		return nil, ErrEmptyChain
	}
	return &Chain{blocks: append([]model.Block(nil), blocks...)}, nil
}

// Blocks returns a copy of the block sequence.
func (c *Chain) Blocks() []model.Block {
	return append([]model.Block(nil), c.blocks...)
}

// Len returns the number of blocks.
func (c *Chain) Len() int {
	return len(c.blocks)
}

// BillName returns the bill the chain belongs to.
func (c *Chain) BillName() string {
	return c.blocks[0].BillName
}

// First returns the genesis block.
func (c *Chain) First() model.Block {
	return c.blocks[0]
}

// Last returns the latest block.
func (c *Chain) Last() model.Block {
	return c.blocks[len(c.blocks)-1]
}

// BlockByID returns the block with the given id.
func (c *Chain) BlockByID(id uint64) fn.Option[model.Block] {
	for _, b := range c.blocks {
		if b.ID == id {
			return fn.Some(b)
		}
	}
	return fn.None[model.Block]()
}

// LastBlockWithOperation returns the latest block recording op.
func (c *Chain) LastBlockWithOperation(op model.OperationCode) fn.Option[model.Block] {
	for i := len(c.blocks) - 1; i >= 0; i-- {
		if c.blocks[i].OperationCode == op {
			return fn.Some(c.blocks[i])
		}
	}
	return fn.None[model.Block]()
}

// HasOperation reports whether any block records op.
func (c *Chain) HasOperation(op model.OperationCode) bool {
	return c.LastBlockWithOperation(op).IsSome()
}

// TryAddBlock appends block if it is valid on top of the current last block.
// On error the chain is unchanged.
func (c *Chain) TryAddBlock(block model.Block) error {
	if err := IsBlockValid(block, c.Last()); err != nil {
		return err
	}
	c.blocks = append(c.blocks, block)
	return nil
}

// IsChainValid checks every adjacent pair of blocks.
func (c *Chain) IsChainValid() error {
	if len(c.blocks) == 0 {
		return ErrEmptyChain
	}
	for i := 1; i < len(c.blocks); i++ {
		if err := IsBlockValid(c.blocks[i], c.blocks[i-1]); err != nil {
			return err
		}
	}
	return nil
}

type chainJSON struct {
	Blocks []model.Block `json:"blocks"`
}

// MarshalJSON encodes the chain as {"blocks": [...]}.
func (c *Chain) MarshalJSON() ([]byte, error) {
	return json.Marshal(chainJSON{Blocks: c.blocks})
}

// Decode parses a JSON chain. Every failure wraps ErrStructural.
func Decode(data []byte) (*Chain, error) {
	c := &Chain{}
	if err := json.Unmarshal(data, c); err != nil {
		if errors.Is(err, ErrStructural) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: decode chain: %v", ErrStructural, err)
	}
	return c, nil
}

// UnmarshalJSON decodes a chain and rejects an empty block list.
func (c *Chain) UnmarshalJSON(data []byte) error {
	var decoded chainJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("%w: decode chain: %v", ErrStructural, err)
	}
	if len(decoded.Blocks) == 0 {
		return ErrEmptyChain
	}
	c.blocks = decoded.Blocks
	return nil
}
