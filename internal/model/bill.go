package model

import "time"

// Identity is the public data of a participant as copied into operation payloads.
type Identity struct {
	PeerID           string `json:"peer_id"`
	Name             string `json:"name"`
	PostalAddress    string `json:"postal_address"`
	Email            string `json:"email"`
	BitcoinPublicKey string `json:"bitcoin_public_key"`
	RSAPublicKey     string `json:"rsa_public_key"`
}

// IsZero reports whether the identity carries no peer id.
func (i Identity) IsZero() bool {
	return i.PeerID == ""
}

// LocalIdentity is the node owner's identity including private key material.
type LocalIdentity struct {
	Identity
	RSAPrivateKey     string `json:"rsa_private_key"`
	BitcoinPrivateKey string `json:"bitcoin_private_key"`
}

// BillKeys holds the per-document key material.
type BillKeys struct {
	PublicKey         string `json:"public_key"`
	PrivateKey        string `json:"private_key"`
	BitcoinPublicKey  string `json:"bitcoin_public_key"`
	BitcoinPrivateKey string `json:"bitcoin_private_key"`
}

// Bill holds the original terms recorded by the Issue block.
type Bill struct {
	Name                      string   `json:"name"`
	ToPayee                   bool     `json:"to_payee"`
	Jurisdiction              string   `json:"jurisdiction"`
	TimestampAtDrawing        int64    `json:"timestamp_at_drawing"`
	Drawee                    Identity `json:"drawee"`
	Drawer                    Identity `json:"drawer"`
	Payee                     Identity `json:"payee"`
	PlaceOfDrawing            string   `json:"place_of_drawing"`
	CurrencyCode              string   `json:"currency_code"`
	Amount                    uint64   `json:"amount"`
	MaturityDate              string   `json:"maturity_date"`
	DateOfIssue               string   `json:"date_of_issue"`
	CompoundingInterestRate   uint64   `json:"compounding_interest_rate"`
	TypeOfInterestCalculation bool     `json:"type_of_interest_calculation"`
	PlaceOfPayment            string   `json:"place_of_payment"`
	Language                  string   `json:"language"`
	BitcoinPublicKey          string   `json:"bitcoin_public_key"`
}

// Snapshot is the current state of a bill derived by replaying its chain.
type Snapshot struct {
	Bill              Bill          `json:"bill"`
	Holder            Identity      `json:"holder"`
	Accepted          bool          `json:"accepted"`
	RequestedToAccept bool          `json:"requested_to_accept"`
	RequestedToPay    bool          `json:"requested_to_pay"`
	WaitingForPayment bool          `json:"waiting_for_payment"`
	Buyer             *Identity     `json:"buyer,omitempty"`
	Seller            *Identity     `json:"seller,omitempty"`
	SaleAmount        uint64        `json:"sale_amount,omitempty"`
	PaymentAddress    string        `json:"payment_address,omitempty"`
	PaymentDeadline   time.Time     `json:"payment_deadline,omitempty"`
	PaymentExpired    bool          `json:"payment_expired"`
	LastBlockID       uint64        `json:"last_block_id"`
	LastOperation     OperationCode `json:"last_operation,omitempty"`
}
