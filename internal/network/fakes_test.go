package network

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/routing"
	ma "github.com/multiformats/go-multiaddr"
	"go.uber.org/zap"
)

func newPeerID(t *testing.T) peer.ID {
	t.Helper()
	priv, err := GeneratePeerKey()
	if err != nil {
		t.Fatalf("GeneratePeerKey: %v", err)
	}
	id, err := peer.IDFromPrivateKey(priv)
	if err != nil {
		t.Fatalf("IDFromPrivateKey: %v", err)
	}
	return id
}

type recordingMetrics struct {
	mu       sync.Mutex
	commands []string
	outcomes []string
}

func (m *recordingMetrics) Observe(command string, _ error, _ time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, command)
}

func (m *recordingMetrics) ObserveRecord(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *recordingMetrics) lastOutcome() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.outcomes) == 0 {
		return ""
	}
	return m.outcomes[len(m.outcomes)-1]
}

type fakeSwarm struct {
	mu        sync.Mutex
	listening []ma.Multiaddr
	dialErr   error
}

func (s *fakeSwarm) Listen(addrs ...ma.Multiaddr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listening = append(s.listening, addrs...)
	return nil
}

func (s *fakeSwarm) Connect(context.Context, peer.AddrInfo) error {
	return s.dialErr
}

type fakeRouter struct {
	mu         sync.Mutex
	values     map[string][]byte
	providers  map[cid.Cid][]peer.AddrInfo
	provided   []cid.Cid
	getErr     error
	block      bool
	bootstraps int
}

func newFakeRouter() *fakeRouter {
	return &fakeRouter{
		values:    make(map[string][]byte),
		providers: make(map[cid.Cid][]peer.AddrInfo),
	}
}

func (r *fakeRouter) PutValue(_ context.Context, key string, value []byte, _ ...routing.Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = append([]byte(nil), value...)
	return nil
}

func (r *fakeRouter) GetValue(ctx context.Context, key string, _ ...routing.Option) ([]byte, error) {
	r.mu.Lock()
	block, getErr := r.block, r.getErr
	value, ok := r.values[key]
	r.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if getErr != nil {
		return nil, getErr
	}
	if !ok {
		return nil, routing.ErrNotFound
	}
	return value, nil
}

func (r *fakeRouter) Provide(_ context.Context, key cid.Cid, _ bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provided = append(r.provided, key)
	return nil
}

func (r *fakeRouter) FindProviders(_ context.Context, key cid.Cid) ([]peer.AddrInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.providers[key], nil
}

func (r *fakeRouter) Bootstrap(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bootstraps++
	return nil
}

// fakeBus delivers every published message to every subscription, the
// publisher's own included.
type fakeBus struct {
	mu         sync.Mutex
	subs       map[string][]chan Message
	subscribes map[string]int
}

func newFakeBus() *fakeBus {
	return &fakeBus{subs: make(map[string][]chan Message), subscribes: make(map[string]int)}
}

func (b *fakeBus) subscribeCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.subscribes[topic]
}

type busPeer struct {
	bus  *fakeBus
	self peer.ID
}

func (p busPeer) Join(name string) (Topic, error) {
	return busTopic{peer: p, name: name}, nil
}

type busTopic struct {
	peer busPeer
	name string
}

func (t busTopic) Publish(_ context.Context, data []byte) error {
	t.peer.bus.mu.Lock()
	defer t.peer.bus.mu.Unlock()
	for _, ch := range t.peer.bus.subs[t.name] {
		ch <- Message{From: t.peer.self, Data: data}
	}
	return nil
}

func (t busTopic) Subscribe() (Subscription, error) {
	t.peer.bus.mu.Lock()
	defer t.peer.bus.mu.Unlock()
	ch := make(chan Message, 16)
	t.peer.bus.subs[t.name] = append(t.peer.bus.subs[t.name], ch)
	t.peer.bus.subscribes[t.name]++
	return busSubscription{ch: ch}, nil
}

type busSubscription struct {
	ch chan Message
}

func (s busSubscription) Next(ctx context.Context) (Message, error) {
	select {
	case msg := <-s.ch:
		return msg, nil
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

func (busSubscription) Cancel() {}

// streamNet connects fakeStreams of several peers with in-memory pipes.
type streamNet struct {
	mu       sync.Mutex
	handlers map[peer.ID]func(peer.ID, io.ReadWriteCloser)
}

func newStreamNet() *streamNet {
	return &streamNet{handlers: make(map[peer.ID]func(peer.ID, io.ReadWriteCloser))}
}

type fakeStreams struct {
	net  *streamNet
	self peer.ID
}

func (s fakeStreams) Open(_ context.Context, p peer.ID) (io.ReadWriteCloser, error) {
	s.net.mu.Lock()
	handler, ok := s.net.handlers[p]
	s.net.mu.Unlock()
	if !ok {
		return nil, errors.New("no route to peer")
	}

	local, remote := net.Pipe()
	go handler(s.self, remote)
	return local, nil
}

func (s fakeStreams) Handle(handler func(p peer.ID, s io.ReadWriteCloser)) {
	s.net.mu.Lock()
	defer s.net.mu.Unlock()
	s.net.handlers[s.self] = handler
}

type testPeer struct {
	id      peer.ID
	client  *Client
	loop    *EventLoop
	router  *fakeRouter
	swarm   *fakeSwarm
	metrics *recordingMetrics
}

func startPeer(t *testing.T, bus *fakeBus, streams *streamNet, cfg Config) *testPeer {
	t.Helper()

	id := newPeerID(t)
	p := &testPeer{id: id, router: newFakeRouter(), swarm: &fakeSwarm{}, metrics: &recordingMetrics{}}
	p.client, p.loop = New(Backend{
		Self:    id,
		Swarm:   p.swarm,
		Router:  p.router,
		PubSub:  busPeer{bus: bus, self: id},
		Streams: fakeStreams{net: streams, self: id},
	}, cfg, p.metrics, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.loop.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// The first command is served after Run has registered its stream handler.
	if err := p.client.StartListening(ctx); err != nil {
		t.Fatalf("StartListening: %v", err)
	}
	return p
}

func nextEvent(t *testing.T, l *EventLoop) Event {
	t.Helper()
	select {
	case ev, ok := <-l.Events():
		if !ok {
			t.Fatalf("events closed")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("no event received")
	}
	return Event{}
}
