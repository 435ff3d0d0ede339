package network

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

// GetBills returns the bills listed in the directory entry of p. Missing and
// timed out entries read as empty.
func (c *Client) GetBills(ctx context.Context, p peer.ID) ([]string, error) {
	rec, err := c.GetRecord(ctx, BillsKey(p))
	if err != nil {
		return nil, err
	}
	if rec.Outcome != RecordFound {
		c.logger.Debug("bills record not available", zap.Stringer("peer", p), zap.Stringer("outcome", rec.Outcome))
		return nil, nil
	}
	return ParseBills(rec.Value), nil
}

// PutBills replaces the directory entry of p.
func (c *Client) PutBills(ctx context.Context, p peer.ID, bills []string) error {
	return c.PutRecord(ctx, BillsKey(p), JoinBills(bills))
}

// GetIdentity returns the published identity of p.
func (c *Client) GetIdentity(ctx context.Context, p peer.ID) (model.Identity, bool, error) {
	rec, err := c.GetRecord(ctx, IdentityKey(p))
	if err != nil {
		return model.Identity{}, false, err
	}
	if rec.Outcome != RecordFound {
		return model.Identity{}, false, nil
	}

	var identity model.Identity
	if err := json.Unmarshal(rec.Value, &identity); err != nil {
		return model.Identity{}, false, fmt.Errorf("decode identity of %s: %w", p, err)
	}
	return identity, true, nil
}

// PutIdentity publishes the identity of this node.
func (c *Client) PutIdentity(ctx context.Context, identity model.Identity) error {
	if identity.PeerID != c.self.String() {
		return fmt.Errorf("identity of %s cannot be published by %s", identity.PeerID, c.self)
	}
	value, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return c.PutRecord(ctx, IdentityKey(c.self), value)
}
