package network

import (
	"context"
	"io"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/routing"
	ma "github.com/multiformats/go-multiaddr"
)

type (
	// Swarm manages listeners and outbound connections.
	Swarm interface {
		Listen(addrs ...ma.Multiaddr) error
		Connect(ctx context.Context, pi peer.AddrInfo) error
	}
	// Router is the Kademlia directory. *dht.IpfsDHT satisfies it.
	Router interface {
		PutValue(ctx context.Context, key string, value []byte, opts ...routing.Option) error
		GetValue(ctx context.Context, key string, opts ...routing.Option) ([]byte, error)
		Provide(ctx context.Context, key cid.Cid, announce bool) error
		FindProviders(ctx context.Context, key cid.Cid) ([]peer.AddrInfo, error)
		Bootstrap(ctx context.Context) error
	}
	PubSub interface {
		Join(topic string) (Topic, error)
	}
	Topic interface {
		Publish(ctx context.Context, data []byte) error
		Subscribe() (Subscription, error)
	}
	Subscription interface {
		Next(ctx context.Context) (Message, error)
		Cancel()
	}
	// Streams opens and accepts file exchange streams.
	Streams interface {
		Open(ctx context.Context, p peer.ID) (io.ReadWriteCloser, error)
		Handle(handler func(p peer.ID, s io.ReadWriteCloser))
	}
	Metrics interface {
		Observe(command string, err error, started time.Time)
		ObserveRecord(outcome string)
	}
)

// Message is a gossip message received on a topic.
type Message struct {
	From peer.ID
	Data []byte
}

// Backend bundles the peer-to-peer services the event loop drives.
type Backend struct {
	Self    peer.ID
	Swarm   Swarm
	Router  Router
	PubSub  PubSub
	Streams Streams
}

// EventKind tells inbound events apart.
type EventKind int

const (
	EventGossip EventKind = iota + 1
	EventInboundRequest
)

// ResponseChannel identifies an inbound file request awaiting RespondFile.
type ResponseChannel uint64

// Event is delivered on EventLoop.Events.
type Event struct {
	Kind EventKind
	From peer.ID

	// gossip
	Topic string
	Data  []byte

	// inbound request
	Name    string
	Channel ResponseChannel
}
