package network

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/libp2p/go-libp2p"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/protocol"
	ma "github.com/multiformats/go-multiaddr"
	"go.uber.org/zap"
)

// dhtProtocolPrefix keeps bill records out of the public IPFS DHT.
const dhtProtocolPrefix = protocol.ID("/bitcredit")

// HostConfig configures the libp2p node.
type HostConfig struct {
	PrivateKey     crypto.PrivKey
	BootstrapPeers []peer.AddrInfo
}

// Node is a running libp2p host with its DHT and gossip router.
type Node struct {
	Host    host.Host
	DHT     *dht.IpfsDHT
	PubSub  *pubsub.PubSub
	Backend Backend
}

// GeneratePeerKey creates a new Ed25519 network identity.
func GeneratePeerKey() (crypto.PrivKey, error) {
	priv, _, err := crypto.GenerateEd25519Key(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate peer key: %w", err)
	}
	return priv, nil
}

// NewHost starts a libp2p host without listeners; listening is requested
// through the event loop.
func NewHost(ctx context.Context, cfg HostConfig, logger *zap.Logger) (*Node, error) {
	h, err := libp2p.New(
		libp2p.Identity(cfg.PrivateKey),
		libp2p.NoListenAddrs,
	)
	if err != nil {
		return nil, fmt.Errorf("create host: %w", err)
	}

	kad, err := dht.New(ctx, h,
		dht.Mode(dht.ModeServer),
		dht.ProtocolPrefix(dhtProtocolPrefix),
		dht.Validator(Validator()),
		dht.BootstrapPeers(cfg.BootstrapPeers...),
	)
	if err != nil {
		_ = h.Close()
		return nil, fmt.Errorf("create dht: %w", err)
	}

	ps, err := pubsub.NewGossipSub(ctx, h,
		pubsub.WithMessageIdFn(messageID),
		pubsub.WithMessageSignaturePolicy(pubsub.StrictSign),
	)
	if err != nil {
		_ = kad.Close()
		_ = h.Close()
		return nil, fmt.Errorf("create gossipsub: %w", err)
	}

	logger.Named("host").Info("peer started", zap.Stringer("peer", h.ID()))

	return &Node{
		Host:   h,
		DHT:    kad,
		PubSub: ps,
		Backend: Backend{
			Self:    h.ID(),
			Swarm:   hostSwarm{h: h},
			Router:  kad,
			PubSub:  gossipSub{ps: ps},
			Streams: hostStreams{h: h},
		},
	}, nil
}

// Close stops the DHT and the host.
func (n *Node) Close() error {
	return errors.Join(n.DHT.Close(), n.Host.Close())
}

// ListenAddrs returns the addresses peers can dial, including the peer id.
func (n *Node) ListenAddrs() []ma.Multiaddr {
	info := peer.AddrInfo{ID: n.Host.ID(), Addrs: n.Host.Addrs()}
	addrs, err := peer.AddrInfoToP2pAddrs(&info)
	if err != nil {
		return n.Host.Addrs()
	}
	return addrs
}

type hostSwarm struct {
	h host.Host
}

func (s hostSwarm) Listen(addrs ...ma.Multiaddr) error {
	return s.h.Network().Listen(addrs...)
}

func (s hostSwarm) Connect(ctx context.Context, pi peer.AddrInfo) error {
	return s.h.Connect(ctx, pi)
}

type hostStreams struct {
	h host.Host
}

func (s hostStreams) Open(ctx context.Context, p peer.ID) (io.ReadWriteCloser, error) {
	return s.h.NewStream(ctx, p, FileExchangeProtocol)
}

func (s hostStreams) Handle(handler func(p peer.ID, s io.ReadWriteCloser)) {
	s.h.SetStreamHandler(FileExchangeProtocol, func(stream network.Stream) {
		handler(stream.Conn().RemotePeer(), stream)
	})
}

type gossipSub struct {
	ps *pubsub.PubSub
}

func (g gossipSub) Join(name string) (Topic, error) {
	t, err := g.ps.Join(name)
	if err != nil {
		return nil, err
	}
	return gossipTopic{t: t}, nil
}

type gossipTopic struct {
	t *pubsub.Topic
}

func (t gossipTopic) Publish(ctx context.Context, data []byte) error {
	return t.t.Publish(ctx, data)
}

func (t gossipTopic) Subscribe() (Subscription, error) {
	sub, err := t.t.Subscribe()
	if err != nil {
		return nil, err
	}
	return gossipSubscription{sub: sub}, nil
}

type gossipSubscription struct {
	sub *pubsub.Subscription
}

func (s gossipSubscription) Next(ctx context.Context) (Message, error) {
	msg, err := s.sub.Next(ctx)
	if err != nil {
		return Message{}, err
	}
	return Message{From: msg.GetFrom(), Data: msg.GetData()}, nil
}

func (s gossipSubscription) Cancel() {
	s.sub.Cancel()
}
