package service

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"

	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/bitcredit-backend/internal/billcrypto"
	"github.com/goodnatureofminers/bitcredit-backend/internal/chain"
	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/internal/network"
)

// Serve handles network events until events is closed or ctx is done.
func (s *Sync) Serve(ctx context.Context, events <-chan network.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.HandleEvent(ctx, ev)
		}
	}
}

// HandleEvent reacts to one gossip message or inbound file request.
func (s *Sync) HandleEvent(ctx context.Context, ev network.Event) {
	switch ev.Kind {
	case network.EventGossip:
		if err := s.handleGossip(ctx, ev); err != nil {
			s.logger.Debug("gossip ignored",
				zap.String("bill", ev.Topic),
				zap.Stringer("peer", ev.From),
				zap.Error(err),
			)
		}
	case network.EventInboundRequest:
		s.handleRequest(ctx, ev)
	default:
		s.logger.Warn("unknown network event", zap.Int("kind", int(ev.Kind)))
	}
}

func (s *Sync) handleGossip(ctx context.Context, ev network.Event) error {
	msg, err := network.DecodeGossip(ev.Data)
	if err != nil {
		return err
	}

	billName := ev.Topic
	held, err := s.bills.ledger.Has(ctx, billName)
	if err != nil {
		return err
	}
	if !held {
		return fmt.Errorf("%w: %s", ErrUnknownBill, billName)
	}

	s.logger.Debug("gossip received",
		zap.String("bill", billName),
		zap.Stringer("peer", ev.From),
		zap.String("kind", string(msg.Kind)),
	)

	switch msg.Kind {
	case network.GossipNewBlock:
		return s.receiveBlock(ctx, billName, msg.Data)
	case network.GossipFullChain:
		return s.receiveChain(ctx, billName, msg.Data)
	case network.GossipGetChain:
		return s.sendChain(ctx, billName)
	}
	return nil
}

// receiveBlock appends the next block of a bill. A block further ahead means
// this node missed some, so the whole chain is requested instead.
func (s *Sync) receiveBlock(ctx context.Context, billName string, data []byte) error {
	var block model.Block
	if err := json.Unmarshal(data, &block); err != nil {
		return fmt.Errorf("%w: decode block: %v", chain.ErrStructural, err)
	}
	if block.BillName != billName {
		return fmt.Errorf("%w: block of %s on topic %s", chain.ErrBillMismatch, block.BillName, billName)
	}

	local, err := s.bills.ledger.Load(ctx, billName)
	if err != nil {
		return err
	}
	last := local.Last()
	switch {
	case block.ID <= last.ID:
		return nil
	case block.ID > last.ID+1:
		s.bills.publish(ctx, billName, network.GossipGetChain, nil)
		return nil
	}
	return s.bills.ledger.Append(ctx, block)
}

func (s *Sync) receiveChain(ctx context.Context, billName string, data []byte) error {
	remote, err := chain.Decode(data)
	if err != nil {
		return err
	}
	if remote.BillName() != billName {
		return fmt.Errorf("%w: chain of %s on topic %s", chain.ErrBillMismatch, remote.BillName(), billName)
	}

	added, err := s.bills.ledger.Reconcile(ctx, remote)
	if added > 0 {
		s.logger.Info("chain extended", zap.String("bill", billName), zap.Int("added", added))
	}
	return err
}

func (s *Sync) sendChain(ctx context.Context, billName string) error {
	c, err := s.bills.ledger.Load(ctx, billName)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode chain: %w", err)
	}
	s.bills.publish(ctx, billName, network.GossipFullChain, raw)
	return nil
}

// handleRequest answers an inbound file request; anything not served is refused
// with an empty response.
func (s *Sync) handleRequest(ctx context.Context, ev network.Event) {
	data, err := s.serveBill(ctx, ev.From, ev.Name)
	if err != nil {
		s.logger.Warn("file request refused",
			zap.String("bill", ev.Name),
			zap.Stringer("peer", ev.From),
			zap.Error(err),
		)
		data = nil
	}
	if err := s.bills.network.RespondFile(ctx, ev.Channel, data); err != nil {
		s.logger.Warn("respond failed", zap.String("bill", ev.Name), zap.Stringer("peer", ev.From), zap.Error(err))
	}
}

func (s *Sync) recipientKey(ctx context.Context, p peer.ID) (*rsa.PublicKey, error) {
	identity, ok, err := s.bills.network.GetIdentity(ctx, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPeer, p)
	}
	return billcrypto.ParsePublicKeyPEM(identity.RSAPublicKey)
}
