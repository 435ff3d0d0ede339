package network

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
	"go.uber.org/zap"
)

type bootstrapEntry struct {
	PeerID    string `json:"peer_id"`
	Multiaddr string `json:"multiaddr"`
}

// LoadBootstrapPeers reads a JSON array of {"peer_id", "multiaddr"} entries.
// Invalid entries are skipped with a warning.
func LoadBootstrapPeers(path string, logger *zap.Logger) ([]peer.AddrInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bootstrap file: %w", err)
	}
	return ParseBootstrapPeers(raw, logger)
}

// ParseBootstrapPeers decodes the bootstrap list, merging addresses of the same peer.
func ParseBootstrapPeers(raw []byte, logger *zap.Logger) ([]peer.AddrInfo, error) {
	var entries []bootstrapEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode bootstrap list: %w", err)
	}

	index := make(map[peer.ID]int, len(entries))
	infos := make([]peer.AddrInfo, 0, len(entries))
	for _, e := range entries {
		id, err := peer.Decode(e.PeerID)
		if err != nil {
			logger.Warn("skipping bootstrap entry", zap.String("peer_id", e.PeerID), zap.Error(err))
			continue
		}
		addr, err := ma.NewMultiaddr(e.Multiaddr)
		if err != nil {
			logger.Warn("skipping bootstrap entry", zap.String("multiaddr", e.Multiaddr), zap.Error(err))
			continue
		}

		if i, ok := index[id]; ok {
			infos[i].Addrs = append(infos[i].Addrs, addr)
			continue
		}
		index[id] = len(infos)
		infos = append(infos, peer.AddrInfo{ID: id, Addrs: []ma.Multiaddr{addr}})
	}
	return infos, nil
}
