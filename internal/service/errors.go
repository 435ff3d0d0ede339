package service

import "errors"

var (
	// ErrUnknownBill is returned for bills this node holds no keys for.
	ErrUnknownBill = errors.New("unknown bill")
	// ErrNotHolder is returned when an operation needs the current holder.
	ErrNotHolder = errors.New("not the current holder")
	// ErrNotDrawee is returned when someone other than the drawee accepts.
	ErrNotDrawee = errors.New("not the drawee")
	// ErrAlreadyAccepted is returned when accepting a bill twice.
	ErrAlreadyAccepted = errors.New("bill already accepted")
	// ErrWaitingForPayment is returned while the last sale is unpaid.
	ErrWaitingForPayment = errors.New("bill is waiting for payment")
	// ErrInvalidRequest is returned for requests missing required terms.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotParticipant is returned when a peer asks for a bill it takes no part in.
	ErrNotParticipant = errors.New("peer does not participate in bill")
	// ErrUnknownPeer is returned when a peer has no published identity.
	ErrUnknownPeer = errors.New("peer identity not published")
	// ErrNoProviders is returned when nobody provides a bill.
	ErrNoProviders = errors.New("no providers")
	// ErrMalformedBundle is returned for bill bundles that cannot be unpacked.
	ErrMalformedBundle = errors.New("malformed bundle")
)
