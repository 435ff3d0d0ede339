package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a block or chain rejected by hash, signature or sequence checks.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidLinkage is returned when previous_hash does not match the previous block.
	ErrInvalidLinkage = fmt.Errorf("%w: previous hash mismatch", ErrValidation)
	// ErrInvalidSequence is returned when the block id is not previous id + 1.
	ErrInvalidSequence = fmt.Errorf("%w: id out of sequence", ErrValidation)
	// ErrInvalidHash is returned when the stored hash differs from the recomputed one.
	ErrInvalidHash = fmt.Errorf("%w: hash mismatch", ErrValidation)
	// ErrInvalidSignature is returned when the signature does not verify.
	ErrInvalidSignature = fmt.Errorf("%w: bad signature", ErrValidation)

	// ErrStructural marks malformed stored chains and unparseable payloads.
	ErrStructural = errors.New("structural error")
	// ErrEmptyChain is returned for a chain without blocks.
	ErrEmptyChain = fmt.Errorf("%w: empty chain", ErrStructural)
	// ErrMalformedPayload is returned when a block payload cannot be decoded.
	ErrMalformedPayload = fmt.Errorf("%w: malformed payload", ErrStructural)
	// ErrBillMismatch is returned when two chains belong to different bills.
	ErrBillMismatch = fmt.Errorf("%w: bill mismatch", ErrStructural)
	// ErrMissingBlock is returned when a remote chain lacks a block id it claims to have.
	ErrMissingBlock = fmt.Errorf("%w: missing block", ErrStructural)
)
