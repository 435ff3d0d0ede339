// Package model defines the domain types shared by the ledger, storage and network layers.
package model

import "fmt"

// OperationCode tags the operation a block records.
type OperationCode string

const (
	// OperationIssue creates a bill; only valid for the genesis block.
	OperationIssue OperationCode = "Issue"
	// OperationAccept records the drawee accepting the bill.
	OperationAccept OperationCode = "Accept"
	// OperationEndorse transfers the bill to a new holder.
	OperationEndorse OperationCode = "Endorse"
	// OperationRequestToAccept asks the drawee to accept.
	OperationRequestToAccept OperationCode = "RequestToAccept"
	// OperationRequestToPay asks the drawee to pay.
	OperationRequestToPay OperationCode = "RequestToPay"
	// OperationSell sells the bill to a buyer for an amount.
	OperationSell OperationCode = "Sell"
)

// OperationCodes lists every known operation code.
var OperationCodes = []OperationCode{
	OperationIssue,
	OperationAccept,
	OperationEndorse,
	OperationRequestToAccept,
	OperationRequestToPay,
	OperationSell,
}

// ParseOperationCode returns the operation code with the given name.
func ParseOperationCode(s string) (OperationCode, error) {
	for _, op := range OperationCodes {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation code %q", s)
}

// Valid reports whether op is one of the known operation codes.
func (op OperationCode) Valid() bool {
	_, err := ParseOperationCode(string(op))
	return err == nil
}

// UnmarshalText rejects unknown operation codes.
func (op *OperationCode) UnmarshalText(text []byte) error {
	parsed, err := ParseOperationCode(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// Block is one signed, hash-linked ledger entry.
type Block struct {
	ID            uint64        `json:"id"`
	BillName      string        `json:"bill_name"`
	Hash          string        `json:"hash"`
	Timestamp     int64         `json:"timestamp"`
	Data          string        `json:"data"`
	PreviousHash  string        `json:"previous_hash"`
	Signature     string        `json:"signature"`
	PublicKey     string        `json:"public_key"`
	OperationCode OperationCode `json:"operation_code"`
}
