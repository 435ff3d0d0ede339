package chain

import (
	"crypto/rsa"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/bitcredit-backend/internal/billcrypto"
	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/internal/payment"
)

const baseTimestamp int64 = 1_700_000_000

var (
	fixtureOnce sync.Once
	sharedFix   *fixture
	fixtureErr  error
)

type fixture struct {
	billKey *rsa.PrivateKey
	billPub string
	signer  *rsa.PrivateKey
	bill    model.Bill

	alice  model.Identity
	bob    model.Identity
	carol  model.Identity
	drawee model.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fixtureOnce.Do(func() {
		sharedFix, fixtureErr = buildFixture()
	})
	if fixtureErr != nil {
		t.Fatalf("build fixture: %v", fixtureErr)
	}
	return sharedFix
}

func buildFixture() (*fixture, error) {
	billKey, err := billcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	signer, err := billcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	billPub, err := billcrypto.EncodePublicKeyPEM(&billKey.PublicKey)
	if err != nil {
		return nil, err
	}

	identity := func(peer, name string) (model.Identity, error) {
		pub, _, err := payment.NewKey(&chaincfg.RegressionNetParams)
		if err != nil {
			return model.Identity{}, err
		}
		return model.Identity{PeerID: peer, Name: name, BitcoinPublicKey: pub}, nil
	}

	f := &fixture{billKey: billKey, billPub: billPub, signer: signer}
	if f.alice, err = identity("peer-alice", "Alice"); err != nil {
		return nil, err
	}
	if f.bob, err = identity("peer-bob", "Bob"); err != nil {
		return nil, err
	}
	if f.carol, err = identity("peer-carol", "Carol"); err != nil {
		return nil, err
	}
	if f.drawee, err = identity("peer-drawee", "Drawee"); err != nil {
		return nil, err
	}

	billBTC, _, err := payment.NewKey(&chaincfg.RegressionNetParams)
	if err != nil {
		return nil, err
	}
	f.bill = model.Bill{
		Name:             billcrypto.BillName(billPub),
		Drawer:           f.drawee,
		Drawee:           f.drawee,
		Payee:            f.alice,
		CurrencyCode:     "sat",
		Amount:           5000,
		BitcoinPublicKey: billBTC,
	}
	return f, nil
}

func (f *fixture) block(t *testing.T, id uint64, previousHash string, p model.Payload) model.Block {
	t.Helper()
	data, err := EncryptPayload(f.billPub, p)
	if err != nil {
		t.Fatalf("EncryptPayload() error = %v", err)
	}
	b, err := NewBlock(f.bill.Name, id, previousHash, data, p.Kind, f.signer, baseTimestamp+int64(id))
	if err != nil {
		t.Fatalf("NewBlock() error = %v", err)
	}
	return b
}

func (f *fixture) genesis(t *testing.T) model.Block {
	t.Helper()
	return f.block(t, 1, "", model.IssuePayload(f.bill))
}

func (f *fixture) next(t *testing.T, c *Chain, p model.Payload) model.Block {
	t.Helper()
	last := c.Last()
	return f.block(t, last.ID+1, last.Hash, p)
}

// chain builds a valid chain from the genesis block followed by payloads.
func (f *fixture) chain(t *testing.T, payloads ...model.Payload) *Chain {
	t.Helper()
	c := New(f.genesis(t))
	for _, p := range payloads {
		if err := c.TryAddBlock(f.next(t, c, p)); err != nil {
			t.Fatalf("TryAddBlock() error = %v", err)
		}
	}
	return c
}
