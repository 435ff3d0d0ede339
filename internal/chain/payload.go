package chain

import (
	"crypto/rsa"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/goodnatureofminers/bitcredit-backend/internal/billcrypto"
	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

// EncryptPayload validates, encodes and encrypts p with the bill public key.
func EncryptPayload(billPublicKeyPEM string, p model.Payload) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	key, err := billcrypto.ParsePublicKeyPEM(billPublicKeyPEM)
	if err != nil {
		return "", err
	}
	encoded, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	encrypted, err := billcrypto.Encrypt(key, encoded)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(encrypted), nil
}

// DecryptPayload decrypts and decodes the payload of b with the bill private key.
func DecryptPayload(billKey *rsa.PrivateKey, b model.Block) (model.Payload, error) {
	raw, err := hex.DecodeString(b.Data)
	if err != nil {
		return model.Payload{}, fmt.Errorf("%w: block %d: %v", ErrMalformedPayload, b.ID, err)
	}
	decrypted, err := billcrypto.Decrypt(billKey, raw)
	if err != nil {
		return model.Payload{}, fmt.Errorf("%w: block %d: %v", ErrMalformedPayload, b.ID, err)
	}

	var p model.Payload
	if err := json.Unmarshal(decrypted, &p); err != nil {
		return model.Payload{}, fmt.Errorf("%w: block %d: %v", ErrMalformedPayload, b.ID, err)
	}
	if err := p.Validate(); err != nil {
		return model.Payload{}, fmt.Errorf("%w: block %d: %v", ErrMalformedPayload, b.ID, err)
	}
	if p.Kind != b.OperationCode {
		return model.Payload{}, fmt.Errorf("%w: block %d: payload kind %s under %s", ErrMalformedPayload, b.ID, p.Kind, b.OperationCode)
	}
	return p, nil
}
