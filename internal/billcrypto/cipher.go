package billcrypto

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// PlaintextChunkSize is the number of plaintext bytes encrypted per RSA block.
func PlaintextChunkSize(key *rsa.PublicKey) int {
	return key.Size() / 2
}

// Encrypt encrypts plaintext of any length by splitting it into chunks of
// PlaintextChunkSize and concatenating the PKCS#1 v1.5 ciphertexts.
func Encrypt(key *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	chunk := PlaintextChunkSize(key)
	out := make([]byte, 0, (len(plaintext)/chunk+1)*key.Size())

	for start := 0; start < len(plaintext); start += chunk {
		end := min(start+chunk, len(plaintext))
		enc, err := rsa.EncryptPKCS1v15(rand.Reader, key, plaintext[start:end])
		if err != nil {
			return nil, fmt.Errorf("encrypt chunk at %d: %w", start, err)
		}
		out = append(out, enc...)
	}
	return out, nil
}

// Decrypt reverses Encrypt, decrypting one key-size block at a time.
func Decrypt(key *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	size := key.Size()
	if len(ciphertext)%size != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of %d", ErrInvalidCiphertext, len(ciphertext), size)
	}

	out := make([]byte, 0, len(ciphertext)/2)
	for start := 0; start < len(ciphertext); start += size {
		dec, err := rsa.DecryptPKCS1v15(rand.Reader, key, ciphertext[start:start+size])
		if err != nil {
			return nil, fmt.Errorf("decrypt block at %d: %w", start, err)
		}
		out = append(out, dec...)
	}
	return out, nil
}

// Sign signs message with RSA PKCS#1 v1.5 over its SHA-256 digest and returns hex.
func Sign(key *rsa.PrivateKey, message string) (string, error) {
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, chainhash.HashB([]byte(message)))
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}
	return hex.EncodeToString(sig), nil
}

// Verify checks a hex signature produced by Sign against a PEM public key.
func Verify(publicKeyPEM, message, signature string) error {
	key, err := ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return err
	}
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}
	if err := rsa.VerifyPKCS1v15(key, crypto.SHA256, chainhash.HashB([]byte(message)), sig); err != nil {
		return fmt.Errorf("verify signature: %w", err)
	}
	return nil
}
