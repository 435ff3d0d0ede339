package chain

import (
	"context"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/internal/payment"
	"github.com/lightningnetwork/lnd/clock"
	"go.uber.org/zap"
)

// DefaultPaymentDeadline is how long a buyer has to pay after a Sell block.
const DefaultPaymentDeadline = 48 * time.Hour

// PaymentStatus describes a pending sale recorded by the last block of a chain.
type PaymentStatus struct {
	Pending  bool
	Waiting  bool
	Buyer    model.Identity
	Seller   model.Identity
	Amount   uint64
	Address  string
	Deadline time.Time
	Expired  bool
}

// Replayer derives bill state from a chain.
type Replayer struct {
	oracle   PaymentOracle
	clock    clock.Clock
	params   *chaincfg.Params
	deadline time.Duration
	logger   *zap.Logger
}

// NewReplayer builds a Replayer. A zero deadline selects DefaultPaymentDeadline.
func NewReplayer(oracle PaymentOracle, clk clock.Clock, params *chaincfg.Params, deadline time.Duration, logger *zap.Logger) *Replayer {
	if deadline <= 0 {
		deadline = DefaultPaymentDeadline
	}
	return &Replayer{
		oracle:   oracle,
		clock:    clk,
		params:   params,
		deadline: deadline,
		logger:   logger.Named("replayer"),
	}
}

// Snapshot replays c and returns the current bill view.
func (r *Replayer) Snapshot(ctx context.Context, c *Chain, billKey *rsa.PrivateKey) (model.Snapshot, error) {
	bill, err := r.genesisBill(c, billKey)
	if err != nil {
		return model.Snapshot{}, err
	}
	holder, err := r.CurrentHolder(ctx, c, billKey)
	if err != nil {
		return model.Snapshot{}, err
	}
	status, err := r.PaymentStatus(ctx, c, billKey)
	if err != nil {
		return model.Snapshot{}, err
	}

	snapshot := model.Snapshot{
		Bill:              bill,
		Holder:            holder,
		Accepted:          c.HasOperation(model.OperationAccept),
		RequestedToAccept: c.HasOperation(model.OperationRequestToAccept),
		RequestedToPay:    c.HasOperation(model.OperationRequestToPay),
		LastBlockID:       c.Last().ID,
		LastOperation:     c.Last().OperationCode,
	}
	if status.Pending {
		buyer, seller := status.Buyer, status.Seller
		snapshot.Buyer = &buyer
		snapshot.Seller = &seller
		snapshot.SaleAmount = status.Amount
		snapshot.PaymentAddress = status.Address
		snapshot.PaymentDeadline = status.Deadline
		snapshot.WaitingForPayment = status.Waiting
		snapshot.PaymentExpired = status.Expired
	}
	return snapshot, nil
}

// CurrentHolder returns the participant currently entitled to the bill.
//
// The buyer of the latest sale is the holder when the sale came after the latest
// endorsement and it is either the last block or paid. Otherwise the latest endorsee
// holds the bill, and without endorsements the original payee does. A chain without
// any Endorse block treats the genesis block as the endorsement reference.
func (r *Replayer) CurrentHolder(ctx context.Context, c *Chain, billKey *rsa.PrivateKey) (model.Identity, error) {
	bill, err := r.genesisBill(c, billKey)
	if err != nil {
		return model.Identity{}, err
	}

	endorse := c.LastBlockWithOperation(model.OperationEndorse)
	sell := c.LastBlockWithOperation(model.OperationSell)

	if sell.IsSome() {
		sellBlock := sell.UnsafeFromSome()
		endorseID := c.First().ID
		endorse.WhenSome(func(b model.Block) {
			endorseID = b.ID
		})

		if endorseID < sellBlock.ID {
			sale, err := DecryptPayload(billKey, sellBlock)
			if err != nil {
				return model.Identity{}, err
			}
			if sellBlock.ID == c.Last().ID {
				return *sale.Buyer, nil
			}
			addr, err := r.saleAddress(bill, sale)
			if err != nil {
				return model.Identity{}, err
			}
			if r.paid(ctx, bill.Name, addr, sale.Amount) {
				return *sale.Buyer, nil
			}
		}
	}

	if endorse.IsSome() {
		p, err := DecryptPayload(billKey, endorse.UnsafeFromSome())
		if err != nil {
			return model.Identity{}, err
		}
		return *p.Endorsee, nil
	}

	return bill.Payee, nil
}

// PaymentStatus reports whether the last block is a sale still waiting for payment.
// An unreachable oracle counts as unpaid. Deadline expiry is only reported.
func (r *Replayer) PaymentStatus(ctx context.Context, c *Chain, billKey *rsa.PrivateKey) (PaymentStatus, error) {
	last := c.Last()
	if last.OperationCode != model.OperationSell {
		return PaymentStatus{}, nil
	}

	bill, err := r.genesisBill(c, billKey)
	if err != nil {
		return PaymentStatus{}, err
	}
	sale, err := DecryptPayload(billKey, last)
	if err != nil {
		return PaymentStatus{}, err
	}

	addr, err := r.saleAddress(bill, sale)
	if err != nil {
		return PaymentStatus{}, err
	}
	paid := r.paid(ctx, bill.Name, addr, sale.Amount)

	deadline := time.Unix(last.Timestamp, 0).Add(r.deadline)
	return PaymentStatus{
		Pending:  true,
		Waiting:  !paid,
		Buyer:    *sale.Buyer,
		Seller:   *sale.Seller,
		Amount:   sale.Amount,
		Address:  addr,
		Deadline: deadline,
		Expired:  !paid && r.clock.Now().After(deadline),
	}, nil
}

func (r *Replayer) saleAddress(bill model.Bill, sale model.Payload) (string, error) {
	addr, err := payment.DeriveAddress(bill.BitcoinPublicKey, sale.Seller.BitcoinPublicKey, r.params)
	if err != nil {
		return "", fmt.Errorf("derive payment address: %w", err)
	}
	return addr.EncodeAddress(), nil
}

func (r *Replayer) paid(ctx context.Context, billName, address string, amount uint64) bool {
	paid, err := r.oracle.Paid(ctx, address, amount)
	if err != nil {
		r.logger.Warn("payment oracle unavailable, treating sale as unpaid",
			zap.String("bill", billName),
			zap.String("address", address),
			zap.Error(err),
		)
		return false
	}
	return paid
}

func (r *Replayer) genesisBill(c *Chain, billKey *rsa.PrivateKey) (model.Bill, error) {
	genesis := c.First()
	if genesis.OperationCode != model.OperationIssue {
		return model.Bill{}, fmt.Errorf("%w: genesis block is %s", ErrMalformedPayload, genesis.OperationCode)
	}
	p, err := DecryptPayload(billKey, genesis)
	if err != nil {
		return model.Bill{}, err
	}
	return *p.Bill, nil
}
