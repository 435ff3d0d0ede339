package network

import (
	"fmt"
	"io"

	"github.com/libp2p/go-libp2p/core/protocol"
	"github.com/libp2p/go-msgio"
)

const (
	// FileExchangeProtocol is the request/response protocol for whole bills.
	FileExchangeProtocol = protocol.ID("/file-exchange/1")

	MaxRequestSize  = 1_000_000
	MaxResponseSize = 500_000_000
)

func writeRequest(w io.Writer, name string) error {
	if len(name) > MaxRequestSize {
		return fmt.Errorf("request of %d bytes exceeds %d", len(name), MaxRequestSize)
	}
	if err := msgio.NewVarintWriter(w).WriteMsg([]byte(name)); err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	return nil
}

func readRequest(r io.Reader) (string, error) {
	msg, err := msgio.NewVarintReaderSize(r, MaxRequestSize).ReadMsg()
	if err != nil {
		return "", fmt.Errorf("read request: %w", err)
	}
	return string(msg), nil
}

func writeResponse(w io.Writer, data []byte) error {
	if len(data) > MaxResponseSize {
		return fmt.Errorf("response of %d bytes exceeds %d", len(data), MaxResponseSize)
	}
	if err := msgio.NewVarintWriter(w).WriteMsg(data); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func readResponse(r io.Reader) ([]byte, error) {
	msg, err := msgio.NewVarintReaderSize(r, MaxResponseSize).ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return msg, nil
}
