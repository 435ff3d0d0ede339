package service

import (
	"archive/tar"
	"bytes"
	"crypto/rsa"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/goodnatureofminers/bitcredit-backend/internal/billcrypto"
	"github.com/goodnatureofminers/bitcredit-backend/internal/chain"
	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/internal/network"
	"github.com/goodnatureofminers/bitcredit-backend/pkg/safe"
)

const (
	bundleChainFile = "chain.json"
	bundleKeysFile  = "keys.json"
)

// bundleKeys is keys.json: the private keys are encrypted to the recipient's RSA key.
type bundleKeys struct {
	PublicKey         string `json:"public_key"`
	PrivateKey        string `json:"private_key"`
	BitcoinPublicKey  string `json:"bitcoin_public_key"`
	BitcoinPrivateKey string `json:"bitcoin_private_key"`
}

// encodeBundle packs a chain and its keys into a zstd compressed tar archive
// that only recipient can unlock.
func encodeBundle(c *chain.Chain, keys model.BillKeys, recipient *rsa.PublicKey) ([]byte, error) {
	chainJSON, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode chain: %w", err)
	}

	sealed := bundleKeys{PublicKey: keys.PublicKey, BitcoinPublicKey: keys.BitcoinPublicKey}
	if sealed.PrivateKey, err = seal(recipient, keys.PrivateKey); err != nil {
		return nil, err
	}
	if sealed.BitcoinPrivateKey, err = seal(recipient, keys.BitcoinPrivateKey); err != nil {
		return nil, err
	}
	keysJSON, err := json.Marshal(sealed)
	if err != nil {
		return nil, fmt.Errorf("encode keys: %w", err)
	}

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	tw := tar.NewWriter(enc)
	for _, f := range []struct {
		name string
		data []byte
	}{
		{name: bundleChainFile, data: chainJSON},
		{name: bundleKeysFile, data: keysJSON},
	} {
		if err := tw.WriteHeader(&tar.Header{Name: f.name, Mode: 0o600, Size: int64(len(f.data))}); err != nil {
			return nil, fmt.Errorf("write %s header: %w", f.name, err)
		}
		if _, err := tw.Write(f.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("close tar: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close zstd writer: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeBundle unpacks a bundle addressed to recipient.
func decodeBundle(data []byte, recipient *rsa.PrivateKey) (*chain.Chain, model.BillKeys, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, model.BillKeys{}, fmt.Errorf("%w: %v", ErrMalformedBundle, err)
	}
	defer dec.Close()

	files := make(map[string][]byte, 2)
	tr := tar.NewReader(dec)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, model.BillKeys{}, fmt.Errorf("%w: %v", ErrMalformedBundle, err)
		}
		if hdr.Name != bundleChainFile && hdr.Name != bundleKeysFile {
			continue
		}
		size, err := safe.Uint64(hdr.Size)
		if err != nil || size > network.MaxResponseSize {
			return nil, model.BillKeys{}, fmt.Errorf("%w: %s has size %d", ErrMalformedBundle, hdr.Name, hdr.Size)
		}
		content, err := io.ReadAll(io.LimitReader(tr, hdr.Size))
		if err != nil {
			return nil, model.BillKeys{}, fmt.Errorf("%w: read %s: %v", ErrMalformedBundle, hdr.Name, err)
		}
		files[hdr.Name] = content
	}

	chainJSON, ok := files[bundleChainFile]
	if !ok {
		return nil, model.BillKeys{}, fmt.Errorf("%w: missing %s", ErrMalformedBundle, bundleChainFile)
	}
	keysJSON, ok := files[bundleKeysFile]
	if !ok {
		return nil, model.BillKeys{}, fmt.Errorf("%w: missing %s", ErrMalformedBundle, bundleKeysFile)
	}

	c, err := chain.Decode(chainJSON)
	if err != nil {
		return nil, model.BillKeys{}, err
	}
	var sealed bundleKeys
	if err := json.Unmarshal(keysJSON, &sealed); err != nil {
		return nil, model.BillKeys{}, fmt.Errorf("%w: decode keys: %v", ErrMalformedBundle, err)
	}

	keys := model.BillKeys{PublicKey: sealed.PublicKey, BitcoinPublicKey: sealed.BitcoinPublicKey}
	if keys.PrivateKey, err = unseal(recipient, sealed.PrivateKey); err != nil {
		return nil, model.BillKeys{}, err
	}
	if keys.BitcoinPrivateKey, err = unseal(recipient, sealed.BitcoinPrivateKey); err != nil {
		return nil, model.BillKeys{}, err
	}
	return c, keys, nil
}

func seal(recipient *rsa.PublicKey, secret string) (string, error) {
	encrypted, err := billcrypto.Encrypt(recipient, []byte(secret))
	if err != nil {
		return "", fmt.Errorf("seal key: %w", err)
	}
	return hex.EncodeToString(encrypted), nil
}

func unseal(recipient *rsa.PrivateKey, sealed string) (string, error) {
	raw, err := hex.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: sealed key: %v", ErrMalformedBundle, err)
	}
	secret, err := billcrypto.Decrypt(recipient, raw)
	if err != nil {
		return "", fmt.Errorf("unseal key: %w", err)
	}
	return string(secret), nil
}
