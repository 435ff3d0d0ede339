package chain

import (
	"crypto/rsa"
	"slices"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

// ContainsNode reports whether peerID appears as a participant in any block of c.
func ContainsNode(c *Chain, billKey *rsa.PrivateKey, peerID string) (bool, error) {
	for _, b := range c.blocks {
		p, err := DecryptPayload(billKey, b)
		if err != nil {
			return false, err
		}
		if slices.ContainsFunc(p.Participants(), func(id model.Identity) bool {
			return id.PeerID == peerID
		}) {
			return true, nil
		}
	}
	return false, nil
}

// Participants returns the distinct peer ids named anywhere in c.
func Participants(c *Chain, billKey *rsa.PrivateKey) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range c.blocks {
		p, err := DecryptPayload(billKey, b)
		if err != nil {
			return nil, err
		}
		for _, id := range p.Participants() {
			if id.PeerID == "" {
				continue
			}
			if _, ok := seen[id.PeerID]; ok {
				continue
			}
			seen[id.PeerID] = struct{}{}
			out = append(out, id.PeerID)
		}
	}
	return out, nil
}
