package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/routing"
	"go.uber.org/zap"
)

const maxQueuedEvents = 1024

// Config holds the timeouts of network operations.
type Config struct {
	RecordTimeout   time.Duration
	ProvideTimeout  time.Duration
	TransferTimeout time.Duration
	EventBuffer     int
}

func (c Config) withDefaults() Config {
	if c.RecordTimeout <= 0 {
		c.RecordTimeout = 30 * time.Second
	}
	if c.ProvideTimeout <= 0 {
		c.ProvideTimeout = time.Minute
	}
	if c.TransferTimeout <= 0 {
		c.TransferTimeout = 2 * time.Minute
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = 64
	}
	return c
}

type inboundRequest struct {
	from   peer.ID
	name   string
	stream io.ReadWriteCloser
}

type topicState struct {
	topic  Topic
	cancel context.CancelFunc
}

// EventLoop owns all peer-to-peer state. Every field below is read and written
// by the Run goroutine only; work that blocks runs on spawned goroutines that
// hand their result back through completions.
type EventLoop struct {
	backend Backend
	cfg     Config
	logger  *zap.Logger

	commands    chan command
	completions chan func()
	incoming    chan Event
	inbound     chan inboundRequest
	events      chan Event
	done        chan struct{}

	nextQuery      queryID
	dials          pending[error]
	startProviding pending[error]
	getProviders   pending[providersResult]
	getRecords     pending[Record]
	putRecords     pending[error]
	requestFiles   pending[fileResult]

	topics      map[string]*topicState
	nextChannel ResponseChannel
	responders  map[ResponseChannel]io.ReadWriteCloser
	queue       []Event
}

// New creates the event loop over backend and the client that talks to it.
// The loop does nothing until Run is called.
func New(backend Backend, cfg Config, metrics Metrics, logger *zap.Logger) (*Client, *EventLoop) {
	cfg = cfg.withDefaults()
	logger = logger.Named("network")

	l := &EventLoop{
		backend:        backend,
		cfg:            cfg,
		logger:         logger,
		commands:       make(chan command),
		completions:    make(chan func()),
		incoming:       make(chan Event),
		inbound:        make(chan inboundRequest),
		events:         make(chan Event, cfg.EventBuffer),
		done:           make(chan struct{}),
		dials:          make(pending[error]),
		startProviding: make(pending[error]),
		getProviders:   make(pending[providersResult]),
		getRecords:     make(pending[Record]),
		putRecords:     make(pending[error]),
		requestFiles:   make(pending[fileResult]),
		topics:         make(map[string]*topicState),
		responders:     make(map[ResponseChannel]io.ReadWriteCloser),
	}
	c := &Client{
		self:     backend.Self,
		commands: l.commands,
		done:     l.done,
		metrics:  metrics,
		logger:   logger,
	}
	return c, l
}

// Events delivers gossip messages and inbound file requests. It is closed when Run returns.
func (l *EventLoop) Events() <-chan Event {
	return l.events
}

// Run processes commands until ctx is done.
func (l *EventLoop) Run(ctx context.Context) {
	defer l.shutdown()

	l.backend.Streams.Handle(func(p peer.ID, s io.ReadWriteCloser) {
		l.acceptStream(ctx, p, s)
	})

	for {
		var (
			out  chan<- Event
			next Event
		)
		if len(l.queue) > 0 {
			out, next = l.events, l.queue[0]
		}

		select {
		case <-ctx.Done():
			return
		case cmd := <-l.commands:
			l.handleCommand(ctx, cmd)
		case complete := <-l.completions:
			complete()
		case ev := <-l.incoming:
			l.enqueue(ev)
		case req := <-l.inbound:
			l.nextChannel++
			l.responders[l.nextChannel] = req.stream
			l.enqueue(Event{Kind: EventInboundRequest, From: req.from, Name: req.name, Channel: l.nextChannel})
		case out <- next:
			l.queue[0] = Event{}
			l.queue = l.queue[1:]
		}
	}
}

func (l *EventLoop) shutdown() {
	close(l.done)
	for id, s := range l.responders {
		_ = s.Close()
		delete(l.responders, id)
	}
	for name, t := range l.topics {
		if t.cancel != nil {
			t.cancel()
		}
		delete(l.topics, name)
	}
	close(l.events)
}

func (l *EventLoop) enqueue(ev Event) {
	if len(l.queue) >= maxQueuedEvents {
		l.logger.Warn("event queue full, dropping oldest event", zap.String("topic", l.queue[0].Topic))
		l.queue = l.queue[1:]
	}
	l.queue = append(l.queue, ev)
}

func (l *EventLoop) query() queryID {
	l.nextQuery++
	return l.nextQuery
}

// spawn runs work off the loop and applies the completion it returns on the loop.
func (l *EventLoop) spawn(work func() func()) {
	go func() {
		complete := work()
		select {
		case l.completions <- complete:
		case <-l.done:
		}
	}()
}

func (l *EventLoop) handleCommand(ctx context.Context, cmd command) {
	switch cmd := cmd.(type) {
	case startListeningCmd:
		cmd.reply <- l.backend.Swarm.Listen(cmd.addrs...)

	case dialCmd:
		id := l.query()
		l.dials[id] = cmd.reply
		l.spawn(func() func() {
			err := l.backend.Swarm.Connect(cmd.ctx, cmd.peer)
			return func() { l.dials.resolve(id, err) }
		})

	case bootstrapCmd:
		cmd.reply <- l.backend.Router.Bootstrap(ctx)

	case startProvidingCmd:
		id := l.query()
		l.startProviding[id] = cmd.reply
		l.spawn(func() func() {
			ctx, cancel := context.WithTimeout(cmd.ctx, l.cfg.ProvideTimeout)
			defer cancel()
			err := l.backend.Router.Provide(ctx, cmd.key, true)
			return func() { l.startProviding.resolve(id, err) }
		})

	case getProvidersCmd:
		id := l.query()
		l.getProviders[id] = cmd.reply
		l.spawn(func() func() {
			ctx, cancel := context.WithTimeout(cmd.ctx, l.cfg.RecordTimeout)
			defer cancel()
			infos, err := l.backend.Router.FindProviders(ctx, cmd.key)
			res := providersResult{peers: l.providerPeers(infos), err: err}
			return func() { l.getProviders.resolve(id, res) }
		})

	case getRecordCmd:
		id := l.query()
		l.getRecords[id] = cmd.reply
		l.spawn(func() func() {
			ctx, cancel := context.WithTimeout(cmd.ctx, l.cfg.RecordTimeout)
			defer cancel()
			value, err := l.backend.Router.GetValue(ctx, cmd.key)
			rec := classifyRecord(value, err)
			if rec.Outcome == RecordNotFound && err != nil && !errors.Is(err, routing.ErrNotFound) {
				l.logger.Debug("record lookup failed", zap.String("key", cmd.key), zap.Error(err))
			}
			return func() { l.getRecords.resolve(id, rec) }
		})

	case putRecordCmd:
		id := l.query()
		l.putRecords[id] = cmd.reply
		l.spawn(func() func() {
			ctx, cancel := context.WithTimeout(cmd.ctx, l.cfg.RecordTimeout)
			defer cancel()
			err := l.backend.Router.PutValue(ctx, cmd.key, cmd.value)
			return func() { l.putRecords.resolve(id, err) }
		})

	case subscribeCmd:
		cmd.reply <- l.subscribe(ctx, cmd.topic)

	case publishCmd:
		t, err := l.join(cmd.topic)
		if err != nil {
			cmd.reply <- err
			return
		}
		go func() {
			cmd.reply <- t.topic.Publish(cmd.ctx, cmd.data)
		}()

	case requestFileCmd:
		id := l.query()
		l.requestFiles[id] = cmd.reply
		l.spawn(func() func() {
			data, err := l.fetch(cmd.ctx, cmd.peer, cmd.bill)
			res := fileResult{data: data, err: err}
			return func() { l.requestFiles.resolve(id, res) }
		})

	case respondFileCmd:
		s, ok := l.responders[cmd.channel]
		if !ok {
			cmd.reply <- fmt.Errorf("%w: %d", ErrUnknownChannel, cmd.channel)
			return
		}
		delete(l.responders, cmd.channel)
		go func() {
			err := writeResponse(s, cmd.data)
			if closeErr := s.Close(); err == nil {
				err = closeErr
			}
			cmd.reply <- err
		}()

	default:
		l.logger.Error("unknown command", zap.String("command", cmd.name()))
	}
}

func classifyRecord(value []byte, err error) Record {
	switch {
	case err == nil:
		return Record{Outcome: RecordFound, Value: value}
	case errors.Is(err, context.DeadlineExceeded):
		return Record{Outcome: RecordTimedOut}
	default:
		return Record{Outcome: RecordNotFound}
	}
}

func (l *EventLoop) providerPeers(infos []peer.AddrInfo) []peer.ID {
	seen := make(map[peer.ID]struct{}, len(infos))
	peers := make([]peer.ID, 0, len(infos))
	for _, info := range infos {
		if info.ID == l.backend.Self {
			continue
		}
		if _, ok := seen[info.ID]; ok {
			continue
		}
		seen[info.ID] = struct{}{}
		peers = append(peers, info.ID)
	}
	return peers
}

func (l *EventLoop) join(name string) (*topicState, error) {
	if t, ok := l.topics[name]; ok {
		return t, nil
	}
	topic, err := l.backend.PubSub.Join(name)
	if err != nil {
		return nil, fmt.Errorf("join topic %s: %w", name, err)
	}
	t := &topicState{topic: topic}
	l.topics[name] = t
	return t, nil
}

// subscribe starts reading a topic once; later calls are no-ops.
func (l *EventLoop) subscribe(ctx context.Context, name string) error {
	t, err := l.join(name)
	if err != nil {
		return err
	}
	if t.cancel != nil {
		return nil
	}

	sub, err := t.topic.Subscribe()
	if err != nil {
		return fmt.Errorf("subscribe topic %s: %w", name, err)
	}
	subCtx, cancel := context.WithCancel(ctx)
	t.cancel = func() {
		cancel()
		sub.Cancel()
	}
	go l.readTopic(subCtx, name, sub)
	return nil
}

func (l *EventLoop) readTopic(ctx context.Context, name string, sub Subscription) {
	for {
		msg, err := sub.Next(ctx)
		if err != nil {
			if ctx.Err() == nil {
				l.logger.Warn("subscription ended", zap.String("topic", name), zap.Error(err))
			}
			return
		}
		if msg.From == l.backend.Self {
			continue
		}

		select {
		case l.incoming <- Event{Kind: EventGossip, From: msg.From, Topic: name, Data: msg.Data}:
		case <-l.done:
			return
		}
	}
}

func (l *EventLoop) fetch(ctx context.Context, p peer.ID, name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.cfg.TransferTimeout)
	defer cancel()

	s, err := l.backend.Streams.Open(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("open stream to %s: %w", p, err)
	}
	defer s.Close()
	setDeadline(ctx, s)

	if err := writeRequest(s, name); err != nil {
		return nil, err
	}
	data, err := readResponse(s)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrRefused
	}
	return data, nil
}

// acceptStream runs on the stream handler goroutine of the host.
func (l *EventLoop) acceptStream(ctx context.Context, p peer.ID, s io.ReadWriteCloser) {
	readCtx, cancel := context.WithTimeout(ctx, l.cfg.TransferTimeout)
	defer cancel()
	setDeadline(readCtx, s)

	name, err := readRequest(s)
	if err != nil {
		l.logger.Debug("bad inbound request", zap.Stringer("peer", p), zap.Error(err))
		_ = s.Close()
		return
	}

	select {
	case l.inbound <- inboundRequest{from: p, name: name, stream: s}:
	case <-l.done:
		_ = s.Close()
	}
}

func setDeadline(ctx context.Context, s io.ReadWriteCloser) {
	d, ok := s.(interface{ SetDeadline(time.Time) error })
	if !ok {
		return
	}
	if deadline, has := ctx.Deadline(); has {
		_ = d.SetDeadline(deadline)
	}
}
