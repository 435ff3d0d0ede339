package network

import (
	"context"

	"github.com/ipfs/go-cid"
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
)

type command interface {
	name() string
}

type (
	startListeningCmd struct {
		addrs []ma.Multiaddr
		reply chan error
	}
	dialCmd struct {
		ctx   context.Context
		peer  peer.AddrInfo
		reply chan error
	}
	bootstrapCmd struct {
		reply chan error
	}
	startProvidingCmd struct {
		ctx   context.Context
		key   cid.Cid
		reply chan error
	}
	getProvidersCmd struct {
		ctx   context.Context
		key   cid.Cid
		reply chan providersResult
	}
	getRecordCmd struct {
		ctx   context.Context
		key   string
		reply chan Record
	}
	putRecordCmd struct {
		ctx   context.Context
		key   string
		value []byte
		reply chan error
	}
	subscribeCmd struct {
		topic string
		reply chan error
	}
	publishCmd struct {
		ctx   context.Context
		topic string
		data  []byte
		reply chan error
	}
	requestFileCmd struct {
		ctx   context.Context
		peer  peer.ID
		bill  string
		reply chan fileResult
	}
	respondFileCmd struct {
		channel ResponseChannel
		data    []byte
		reply   chan error
	}
)

func (startListeningCmd) name() string { return "start_listening" }
func (dialCmd) name() string           { return "dial" }
func (bootstrapCmd) name() string      { return "bootstrap" }
func (startProvidingCmd) name() string { return "start_providing" }
func (getProvidersCmd) name() string   { return "get_providers" }
func (getRecordCmd) name() string      { return "get_record" }
func (putRecordCmd) name() string      { return "put_record" }
func (subscribeCmd) name() string      { return "subscribe" }
func (publishCmd) name() string        { return "publish" }
func (requestFileCmd) name() string    { return "request_file" }
func (respondFileCmd) name() string    { return "respond_file" }

type providersResult struct {
	peers []peer.ID
	err   error
}

type fileResult struct {
	data []byte
	err  error
}

type queryID uint64

// pending holds the reply channels of in-flight queries of one kind. It is
// only touched by the event loop goroutine.
type pending[T any] map[queryID]chan T

// resolve delivers v to the query and forgets it. Reply channels are buffered,
// so resolving never blocks even when the caller stopped waiting.
func (p pending[T]) resolve(id queryID, v T) bool {
	reply, ok := p[id]
	if !ok {
		return false
	}
	delete(p, id)
	reply <- v
	return true
}
