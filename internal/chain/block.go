package chain

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"

	"github.com/goodnatureofminers/bitcredit-backend/internal/billcrypto"
	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

// NewBlock builds a block, hashing its content and signing the hash with signer.
// data must already be encrypted with the bill key.
func NewBlock(
	billName string,
	id uint64,
	previousHash string,
	data string,
	op model.OperationCode,
	signer *rsa.PrivateKey,
	timestamp int64,
) (model.Block, error) {
	publicKey, err := billcrypto.EncodePublicKeyPEM(&signer.PublicKey)
	if err != nil {
		return model.Block{}, err
	}

	block := model.Block{
		ID:            id,
		BillName:      billName,
		Timestamp:     timestamp,
		Data:          data,
		PreviousHash:  previousHash,
		PublicKey:     publicKey,
		OperationCode: op,
	}
	if block.Hash, err = ComputeHash(block); err != nil {
		return model.Block{}, err
	}
	if block.Signature, err = billcrypto.Sign(signer, block.Hash); err != nil {
		return model.Block{}, err
	}
	return block, nil
}

// ComputeHash returns the content hash of a block, ignoring its stored hash and signature.
func ComputeHash(b model.Block) (string, error) {
	header := struct {
		ID            uint64              `json:"id"`
		BillName      string              `json:"bill_name"`
		PreviousHash  string              `json:"previous_hash"`
		Data          string              `json:"data"`
		Timestamp     int64               `json:"timestamp"`
		PublicKey     string              `json:"public_key"`
		OperationCode model.OperationCode `json:"operation_code"`
	}{
		ID:            b.ID,
		BillName:      b.BillName,
		PreviousHash:  b.PreviousHash,
		Data:          b.Data,
		Timestamp:     b.Timestamp,
		PublicKey:     b.PublicKey,
		OperationCode: b.OperationCode,
	}

	encoded, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encode block header: %w", err)
	}
	return billcrypto.Hash(encoded), nil
}

// IsBlockValid checks block against its predecessor: linkage, sequence, hash, then signature.
func IsBlockValid(block, previous model.Block) error {
	if block.PreviousHash != previous.Hash {
		return fmt.Errorf("block %d: %w", block.ID, ErrInvalidLinkage)
	}
	if block.ID != previous.ID+1 {
		return fmt.Errorf("block %d after %d: %w", block.ID, previous.ID, ErrInvalidSequence)
	}
	hash, err := ComputeHash(block)
	if err != nil {
		return err
	}
	if hash != block.Hash {
		return fmt.Errorf("block %d: %w", block.ID, ErrInvalidHash)
	}
	if err := billcrypto.Verify(block.PublicKey, block.Hash, block.Signature); err != nil {
		return fmt.Errorf("block %d: %w: %v", block.ID, ErrInvalidSignature, err)
	}
	return nil
}
