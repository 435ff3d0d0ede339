package network

import (
	"encoding/json"
	"fmt"

	pb "github.com/libp2p/go-libp2p-pubsub/pb"

	"github.com/goodnatureofminers/bitcredit-backend/internal/billcrypto"
)

// GossipKind is the type of a message published on a bill topic.
type GossipKind string

const (
	GossipNewBlock  GossipKind = "new-block"
	GossipFullChain GossipKind = "full-chain"
	GossipGetChain  GossipKind = "get-chain"
)

// GossipEvent is the payload of every bill topic message.
type GossipEvent struct {
	Kind GossipKind `json:"kind"`
	Data []byte     `json:"data,omitempty"`
}

// EncodeGossip marshals a gossip event.
func EncodeGossip(kind GossipKind, data []byte) ([]byte, error) {
	raw, err := json.Marshal(GossipEvent{Kind: kind, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode gossip: %w", err)
	}
	return raw, nil
}

// DecodeGossip unmarshals a gossip event and rejects unknown kinds.
func DecodeGossip(raw []byte) (GossipEvent, error) {
	var ev GossipEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return GossipEvent{}, fmt.Errorf("decode gossip: %w", err)
	}
	switch ev.Kind {
	case GossipNewBlock, GossipFullChain, GossipGetChain:
		return ev, nil
	default:
		return GossipEvent{}, fmt.Errorf("decode gossip: unknown kind %q", ev.Kind)
	}
}

// messageID dedups gossip by content: the same payload published twice is one message.
func messageID(msg *pb.Message) string {
	return billcrypto.Hash(msg.GetData())
}
