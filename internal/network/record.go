package network

import (
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multihash"
)

const (
	billsNamespace    = "BILLS"
	identityNamespace = "identity"
)

// RecordOutcome is the result class of a directory lookup.
type RecordOutcome int

const (
	RecordFound RecordOutcome = iota + 1
	RecordNotFound
	RecordTimedOut
)

func (o RecordOutcome) String() string {
	switch o {
	case RecordFound:
		return "found"
	case RecordNotFound:
		return "not_found"
	case RecordTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Record is a directory lookup result. Value is empty unless the record was found.
type Record struct {
	Outcome RecordOutcome
	Value   []byte
}

// BillsKey is the directory key listing the bills a peer takes part in.
func BillsKey(p peer.ID) string {
	return "/" + billsNamespace + "/" + p.String()
}

// IdentityKey is the directory key holding the public identity of a peer.
func IdentityKey(p peer.ID) string {
	return "/" + identityNamespace + "/" + p.String()
}

// ProviderKey maps a bill name to the content id its holders provide.
func ProviderKey(billName string) (cid.Cid, error) {
	mh, err := multihash.Sum([]byte(billName), multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, fmt.Errorf("hash bill name: %w", err)
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}

// ParseBills splits a directory value into bill names, dropping empty entries.
func ParseBills(value []byte) []string {
	parts := strings.Split(string(value), ",")
	bills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			bills = append(bills, p)
		}
	}
	return bills
}

// JoinBills encodes bill names as a directory value.
func JoinBills(bills []string) []byte {
	return []byte(strings.Join(bills, ","))
}

func keyPeer(key, namespace string) (peer.ID, error) {
	prefix := "/" + namespace + "/"
	if !strings.HasPrefix(key, prefix) {
		return "", fmt.Errorf("key %q is not in namespace %s", key, namespace)
	}
	p, err := peer.Decode(strings.TrimPrefix(key, prefix))
	if err != nil {
		return "", fmt.Errorf("key %q: %w", key, err)
	}
	return p, nil
}
