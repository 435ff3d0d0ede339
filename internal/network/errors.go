package network

import "errors"

var (
	// ErrNetwork wraps failures of the underlying peer-to-peer stack.
	ErrNetwork = errors.New("network error")
	// ErrClosed is returned once the event loop has stopped.
	ErrClosed = errors.New("network event loop closed")
	// ErrRefused is returned when a peer answers a file request with an empty response.
	ErrRefused = errors.New("request refused")
	// ErrUnknownChannel is returned when responding on a channel that is not pending.
	ErrUnknownChannel = errors.New("unknown response channel")
)
