// Package payment derives bill payment addresses and checks them against a block explorer.
package payment

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// ParsePublicKey decodes a hex encoded secp256k1 public key.
func ParsePublicKey(s string) (*btcec.PublicKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	key, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return key, nil
}

// CombinePublicKeys returns the point sum a + b.
func CombinePublicKeys(a, b *btcec.PublicKey) *btcec.PublicKey {
	var aJ, bJ, sum btcec.JacobianPoint
	a.AsJacobian(&aJ)
	b.AsJacobian(&bJ)
	btcec.AddNonConst(&aJ, &bJ, &sum)
	sum.ToAffine()
	return btcec.NewPublicKey(&sum.X, &sum.Y)
}

// DeriveAddress returns the P2PKH address of the sum of the bill key and the holder key.
// Only someone holding both private keys can spend from it.
func DeriveAddress(billPublicKey, holderPublicKey string, params *chaincfg.Params) (*btcutil.AddressPubKeyHash, error) {
	bill, err := ParsePublicKey(billPublicKey)
	if err != nil {
		return nil, fmt.Errorf("bill key: %w", err)
	}
	holder, err := ParsePublicKey(holderPublicKey)
	if err != nil {
		return nil, fmt.Errorf("holder key: %w", err)
	}

	combined := CombinePublicKeys(bill, holder)
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(combined.SerializeCompressed()), params)
	if err != nil {
		return nil, fmt.Errorf("build address: %w", err)
	}
	return addr, nil
}

// PayToScript returns the output script paying to addr.
func PayToScript(addr btcutil.Address) (string, error) {
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return "", fmt.Errorf("build output script: %w", err)
	}
	return hex.EncodeToString(script), nil
}

// DerivePayeeKey returns the private key of the address built by DeriveAddress:
// the scalar sum of the bill key and the holder key.
func DerivePayeeKey(billWIF string, holder *btcec.PrivateKey) (*btcec.PrivateKey, error) {
	wif, err := btcutil.DecodeWIF(billWIF)
	if err != nil {
		return nil, fmt.Errorf("decode bill key: %w", err)
	}

	var sum btcec.ModNScalar
	sum.Set(&wif.PrivKey.Key)
	sum.Add(&holder.Key)
	if sum.IsZero() {
		return nil, fmt.Errorf("derived key is zero")
	}

	raw := sum.Bytes()
	key, _ := btcec.PrivKeyFromBytes(raw[:])
	return key, nil
}

// NewKey generates a bitcoin key pair and returns the hex public key and the WIF private key.
func NewKey(params *chaincfg.Params) (string, string, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return "", "", fmt.Errorf("generate bitcoin key: %w", err)
	}
	wif, err := btcutil.NewWIF(key, params, true)
	if err != nil {
		return "", "", fmt.Errorf("encode wif: %w", err)
	}
	return hex.EncodeToString(key.PubKey().SerializeCompressed()), wif.String(), nil
}

// ParamsForNetwork maps a network name to btcd chain parameters.
func ParamsForNetwork(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(network) {
	case "main", "mainnet", "bitcoin", "":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
