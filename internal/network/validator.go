package network

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	record "github.com/libp2p/go-libp2p-record"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

var errInvalidRecord = errors.New("invalid record")

// Validator returns the record validator for the directory namespaces.
func Validator() record.NamespacedValidator {
	return record.NamespacedValidator{
		billsNamespace:    BillsValidator{},
		identityNamespace: IdentityValidator{},
	}
}

// BillsValidator accepts comma separated lists of bill names. Among competing
// values the longest list wins, so entries only ever grow.
type BillsValidator struct{}

func (BillsValidator) Validate(key string, value []byte) error {
	if _, err := keyPeer(key, billsNamespace); err != nil {
		return fmt.Errorf("%w: %v", errInvalidRecord, err)
	}
	for _, bill := range ParseBills(value) {
		if !validBillName(bill) {
			return fmt.Errorf("%w: bad bill name %q", errInvalidRecord, bill)
		}
	}
	return nil
}

func (v BillsValidator) Select(key string, values [][]byte) (int, error) {
	best, bestCount := -1, -1
	for i, value := range values {
		if v.Validate(key, value) != nil {
			continue
		}
		if n := len(ParseBills(value)); n > bestCount {
			best, bestCount = i, n
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("%w: no valid value for %s", errInvalidRecord, key)
	}
	return best, nil
}

func validBillName(name string) bool {
	if len(name) != 64 {
		return false
	}
	_, err := hex.DecodeString(name)
	return err == nil
}

// IdentityValidator accepts the JSON identity of the peer named in the key.
type IdentityValidator struct{}

func (IdentityValidator) Validate(key string, value []byte) error {
	p, err := keyPeer(key, identityNamespace)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidRecord, err)
	}
	var identity model.Identity
	if err := json.Unmarshal(value, &identity); err != nil {
		return fmt.Errorf("%w: %v", errInvalidRecord, err)
	}
	if identity.PeerID != p.String() {
		return fmt.Errorf("%w: identity of %s stored under %s", errInvalidRecord, identity.PeerID, p)
	}
	if identity.RSAPublicKey == "" {
		return fmt.Errorf("%w: identity without rsa key", errInvalidRecord)
	}
	return nil
}

func (v IdentityValidator) Select(key string, values [][]byte) (int, error) {
	for i, value := range values {
		if v.Validate(key, value) == nil {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no valid value for %s", errInvalidRecord, key)
}
