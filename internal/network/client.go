package network

import (
	"context"
	"fmt"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/bitcredit-backend/pkg/workerpool"
)

// Client sends commands to the event loop. It is safe for concurrent use.
type Client struct {
	self     peer.ID
	commands chan<- command
	done     <-chan struct{}
	metrics  Metrics
	logger   *zap.Logger
}

// Self returns the local peer id.
func (c *Client) Self() peer.ID {
	return c.self
}

// call submits cmd and waits for its reply. A caller that gives up leaves the
// buffered reply to be dropped.
func call[T any](ctx context.Context, c *Client, cmd command, reply <-chan T) (T, error) {
	var zero T
	select {
	case c.commands <- cmd:
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-c.done:
		return zero, ErrClosed
	}

	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-c.done:
		select {
		case v := <-reply:
			return v, nil
		default:
			return zero, ErrClosed
		}
	}
}

func callErr(ctx context.Context, c *Client, cmd command, reply chan error) error {
	err, sendErr := call(ctx, c, cmd, reply)
	if sendErr != nil {
		return sendErr
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNetwork, cmd.name(), err)
	}
	return nil
}

// StartListening opens listeners on addrs.
func (c *Client) StartListening(ctx context.Context, addrs ...ma.Multiaddr) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("start_listening", err, started)
	}()

	reply := make(chan error, 1)
	return callErr(ctx, c, startListeningCmd{addrs: addrs, reply: reply}, reply)
}

// Dial connects to a peer.
func (c *Client) Dial(ctx context.Context, pi peer.AddrInfo) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("dial", err, started)
	}()

	reply := make(chan error, 1)
	return callErr(ctx, c, dialCmd{ctx: ctx, peer: pi, reply: reply}, reply)
}

// Bootstrap starts the Kademlia routing table refresh. Call it once the
// bootstrap peers are dialed.
func (c *Client) Bootstrap(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("bootstrap", err, started)
	}()

	reply := make(chan error, 1)
	return callErr(ctx, c, bootstrapCmd{reply: reply}, reply)
}

// StartProviding announces that this node holds billName.
func (c *Client) StartProviding(ctx context.Context, billName string) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("start_providing", err, started)
	}()

	key, err := ProviderKey(billName)
	if err != nil {
		return err
	}
	reply := make(chan error, 1)
	return callErr(ctx, c, startProvidingCmd{ctx: ctx, key: key, reply: reply}, reply)
}

// GetProviders returns the peers other than this node that provide billName.
func (c *Client) GetProviders(ctx context.Context, billName string) (_ []peer.ID, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_providers", err, started)
	}()

	key, err := ProviderKey(billName)
	if err != nil {
		return nil, err
	}
	reply := make(chan providersResult, 1)
	res, err := call(ctx, c, getProvidersCmd{ctx: ctx, key: key, reply: reply}, reply)
	if err != nil {
		return nil, err
	}
	if res.err != nil {
		err = fmt.Errorf("%w: get providers: %w", ErrNetwork, res.err)
		return nil, err
	}
	return res.peers, nil
}

// GetRecord looks up a directory record. A missing or timed out record is not an error.
func (c *Client) GetRecord(ctx context.Context, key string) (_ Record, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_record", err, started)
	}()

	reply := make(chan Record, 1)
	rec, err := call(ctx, c, getRecordCmd{ctx: ctx, key: key, reply: reply}, reply)
	if err != nil {
		return Record{}, err
	}
	c.metrics.ObserveRecord(rec.Outcome.String())
	return rec, nil
}

// PutRecord stores a directory record on the closest peers.
func (c *Client) PutRecord(ctx context.Context, key string, value []byte) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("put_record", err, started)
	}()

	reply := make(chan error, 1)
	return callErr(ctx, c, putRecordCmd{ctx: ctx, key: key, value: value, reply: reply}, reply)
}

// Subscribe starts delivering gossip of topic as events. Subscribing twice is a no-op.
func (c *Client) Subscribe(ctx context.Context, topic string) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("subscribe", err, started)
	}()

	reply := make(chan error, 1)
	return callErr(ctx, c, subscribeCmd{topic: topic, reply: reply}, reply)
}

// Publish sends data to the subscribers of topic.
func (c *Client) Publish(ctx context.Context, topic string, data []byte) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("publish", err, started)
	}()

	reply := make(chan error, 1)
	return callErr(ctx, c, publishCmd{ctx: ctx, topic: topic, data: data, reply: reply}, reply)
}

// RequestFile asks p for the bundle of billName.
func (c *Client) RequestFile(ctx context.Context, p peer.ID, billName string) (_ []byte, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("request_file", err, started)
	}()

	reply := make(chan fileResult, 1)
	res, err := call(ctx, c, requestFileCmd{ctx: ctx, peer: p, bill: billName, reply: reply}, reply)
	if err != nil {
		return nil, err
	}
	if res.err != nil {
		err = fmt.Errorf("%w: request %s from %s: %w", ErrNetwork, billName, p, res.err)
		return nil, err
	}
	return res.data, nil
}

// RespondFile answers an inbound request. Empty data refuses it.
func (c *Client) RespondFile(ctx context.Context, channel ResponseChannel, data []byte) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("respond_file", err, started)
	}()

	reply := make(chan error, 1)
	return callErr(ctx, c, respondFileCmd{channel: channel, data: data, reply: reply}, reply)
}

// RaceProviders requests billName from every provider at once and returns the
// first bundle received. The other requests are canceled.
func (c *Client) RaceProviders(ctx context.Context, providers []peer.ID, billName string) ([]byte, error) {
	data, err := workerpool.Race(ctx, providers, func(ctx context.Context, p peer.ID) ([]byte, error) {
		data, err := c.RequestFile(ctx, p, billName)
		if err != nil {
			c.logger.Debug("provider failed", zap.String("bill", billName), zap.Stringer("peer", p), zap.Error(err))
		}
		return data, err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s from %d providers: %w", billName, len(providers), err)
	}
	return data, nil
}
