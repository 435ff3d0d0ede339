package model

import (
	"errors"
	"fmt"
)

// PayloadVersion is the current payload schema version.
const PayloadVersion = 1

// ErrInvalidPayload is returned when a payload misses fields required by its kind.
var ErrInvalidPayload = errors.New("invalid payload")

// Payload is the decrypted content of a block, tagged by operation kind.
type Payload struct {
	Version   int           `json:"version"`
	Kind      OperationCode `json:"kind"`
	Bill      *Bill         `json:"bill,omitempty"`
	Endorsee  *Identity     `json:"endorsee,omitempty"`
	Endorser  *Identity     `json:"endorser,omitempty"`
	Buyer     *Identity     `json:"buyer,omitempty"`
	Seller    *Identity     `json:"seller,omitempty"`
	Requester *Identity     `json:"requester,omitempty"`
	Amount    uint64        `json:"amount,omitempty"`
}

// IssuePayload builds the genesis payload.
func IssuePayload(bill Bill) Payload {
	return Payload{Version: PayloadVersion, Kind: OperationIssue, Bill: &bill}
}

// EndorsePayload builds an endorsement payload.
func EndorsePayload(endorsee, endorser Identity) Payload {
	return Payload{Version: PayloadVersion, Kind: OperationEndorse, Endorsee: &endorsee, Endorser: &endorser}
}

// SellPayload builds a sale payload.
func SellPayload(buyer, seller Identity, amount uint64) Payload {
	return Payload{Version: PayloadVersion, Kind: OperationSell, Buyer: &buyer, Seller: &seller, Amount: amount}
}

// RequestPayload builds an Accept, RequestToAccept or RequestToPay payload.
func RequestPayload(kind OperationCode, requester Identity) Payload {
	return Payload{Version: PayloadVersion, Kind: kind, Requester: &requester}
}

// Validate checks the version and the fields required by the payload kind.
func (p Payload) Validate() error {
	if p.Version != PayloadVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidPayload, p.Version)
	}

	switch p.Kind {
	case OperationIssue:
		if p.Bill == nil {
			return fmt.Errorf("%w: issue without bill", ErrInvalidPayload)
		}
	case OperationEndorse:
		if p.Endorsee == nil || p.Endorser == nil {
			return fmt.Errorf("%w: endorse without endorsee or endorser", ErrInvalidPayload)
		}
	case OperationSell:
		if p.Buyer == nil || p.Seller == nil {
			return fmt.Errorf("%w: sell without buyer or seller", ErrInvalidPayload)
		}
		if p.Amount == 0 {
			return fmt.Errorf("%w: sell without amount", ErrInvalidPayload)
		}
	case OperationAccept, OperationRequestToAccept, OperationRequestToPay:
		if p.Requester == nil {
			return fmt.Errorf("%w: %s without requester", ErrInvalidPayload, p.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPayload, p.Kind)
	}
	return nil
}

// Participants returns every identity named by the payload.
func (p Payload) Participants() []Identity {
	var out []Identity
	if p.Bill != nil {
		out = append(out, p.Bill.Drawer, p.Bill.Drawee, p.Bill.Payee)
	}
	for _, id := range []*Identity{p.Endorsee, p.Endorser, p.Buyer, p.Seller, p.Requester} {
		if id != nil {
			out = append(out, *id)
		}
	}
	return out
}
