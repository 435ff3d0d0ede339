package service

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/libp2p/go-libp2p/core/peer"
	lndclock "github.com/lightningnetwork/lnd/clock"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/bitcredit-backend/internal/billcrypto"
	"github.com/goodnatureofminers/bitcredit-backend/internal/chain"
	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/internal/network"
	"github.com/goodnatureofminers/bitcredit-backend/internal/payment"
	"github.com/goodnatureofminers/bitcredit-backend/internal/storage"
)

const (
	// DefaultValidityPeriod is the maturity of a bill issued without a maturity date.
	DefaultValidityPeriod = 90 * 24 * time.Hour

	dateLayout = "2006-01-02"
	currency   = "sat"
)

// Config configures a BillService.
type Config struct {
	Params         *chaincfg.Params
	ValidityPeriod time.Duration
}

// IssueRequest carries the terms of a new bill drawn by the node owner.
type IssueRequest struct {
	Drawee                    model.Identity `json:"drawee"`
	Payee                     model.Identity `json:"payee"`
	ToPayee                   bool           `json:"to_payee"`
	Jurisdiction              string         `json:"jurisdiction"`
	PlaceOfDrawing            string         `json:"place_of_drawing"`
	PlaceOfPayment            string         `json:"place_of_payment"`
	Amount                    uint64         `json:"amount"`
	MaturityDate              string         `json:"maturity_date"`
	CompoundingInterestRate   uint64         `json:"compounding_interest_rate"`
	TypeOfInterestCalculation bool           `json:"type_of_interest_calculation"`
	Language                  string         `json:"language"`
}

// BillService records bill operations of the node owner and shares them with the network.
type BillService struct {
	ledger   Ledger
	keys     KeyStore
	replayer Replayer
	network  Network
	clock    lndclock.Clock
	identity model.Identity
	signer   *rsa.PrivateKey
	cfg      Config
	logger   *zap.Logger
}

// NewBillService builds a BillService acting as identity.
func NewBillService(
	ledger Ledger,
	keys KeyStore,
	replayer Replayer,
	net Network,
	clk lndclock.Clock,
	identity model.LocalIdentity,
	cfg Config,
	logger *zap.Logger,
) (*BillService, error) {
	signer, err := billcrypto.ParsePrivateKeyPEM(identity.RSAPrivateKey)
	if err != nil {
		return nil, fmt.Errorf("parse identity key: %w", err)
	}
	if identity.PeerID != net.Self().String() {
		return nil, fmt.Errorf("identity %s does not belong to peer %s", identity.PeerID, net.Self())
	}
	if cfg.Params == nil {
		cfg.Params = &chaincfg.MainNetParams
	}
	if cfg.ValidityPeriod <= 0 {
		cfg.ValidityPeriod = DefaultValidityPeriod
	}
	return &BillService{
		ledger:   ledger,
		keys:     keys,
		replayer: replayer,
		network:  net,
		clock:    clk,
		identity: identity.Identity,
		signer:   signer,
		cfg:      cfg,
		logger:   logger.Named("bills"),
	}, nil
}

// Identity returns the public identity the service acts as.
func (s *BillService) Identity() model.Identity {
	return s.identity
}

// Issue draws a new bill with the node owner as drawer.
func (s *BillService) Issue(ctx context.Context, req IssueRequest) (model.Bill, error) {
	if req.Drawee.IsZero() {
		return model.Bill{}, fmt.Errorf("%w: drawee is required", ErrInvalidRequest)
	}
	if req.Amount == 0 {
		return model.Bill{}, fmt.Errorf("%w: amount is required", ErrInvalidRequest)
	}
	payee := s.identity
	if req.ToPayee {
		if req.Payee.IsZero() {
			return model.Bill{}, fmt.Errorf("%w: payee is required", ErrInvalidRequest)
		}
		payee = req.Payee
	}

	billKey, err := billcrypto.GenerateKey()
	if err != nil {
		return model.Bill{}, err
	}
	publicKey, err := billcrypto.EncodePublicKeyPEM(&billKey.PublicKey)
	if err != nil {
		return model.Bill{}, err
	}
	btcPublic, btcPrivate, err := payment.NewKey(s.cfg.Params)
	if err != nil {
		return model.Bill{}, err
	}

	now := s.clock.Now().UTC()
	maturity := req.MaturityDate
	if maturity == "" {
		maturity = now.Add(s.cfg.ValidityPeriod).Format(dateLayout)
	}
	bill := model.Bill{
		Name:                      billcrypto.BillName(publicKey),
		ToPayee:                   req.ToPayee,
		Jurisdiction:              req.Jurisdiction,
		TimestampAtDrawing:        now.Unix(),
		Drawee:                    req.Drawee,
		Drawer:                    s.identity,
		Payee:                     payee,
		PlaceOfDrawing:            req.PlaceOfDrawing,
		CurrencyCode:              currency,
		Amount:                    req.Amount,
		MaturityDate:              maturity,
		DateOfIssue:               now.Format(dateLayout),
		CompoundingInterestRate:   req.CompoundingInterestRate,
		TypeOfInterestCalculation: req.TypeOfInterestCalculation,
		PlaceOfPayment:            req.PlaceOfPayment,
		Language:                  req.Language,
		BitcoinPublicKey:          btcPublic,
	}

	data, err := chain.EncryptPayload(publicKey, model.IssuePayload(bill))
	if err != nil {
		return model.Bill{}, err
	}
	genesis, err := chain.NewBlock(bill.Name, 1, "", data, model.OperationIssue, s.signer, now.Unix())
	if err != nil {
		return model.Bill{}, err
	}

	keys := model.BillKeys{
		PublicKey:         publicKey,
		PrivateKey:        billcrypto.EncodePrivateKeyPEM(billKey),
		BitcoinPublicKey:  btcPublic,
		BitcoinPrivateKey: btcPrivate,
	}
	if err := s.keys.SaveKeys(ctx, bill.Name, keys); err != nil {
		return model.Bill{}, fmt.Errorf("save keys of %s: %w", bill.Name, err)
	}
	if err := s.ledger.Create(ctx, chain.New(genesis)); err != nil {
		return model.Bill{}, fmt.Errorf("create chain %s: %w", bill.Name, err)
	}

	s.logger.Info("bill issued", zap.String("bill", bill.Name), zap.Uint64("amount", bill.Amount))

	s.announce(ctx, bill.Name)
	for _, p := range []model.Identity{bill.Drawer, bill.Drawee, bill.Payee} {
		s.shareWith(ctx, bill.Name, p.PeerID)
	}
	return bill, nil
}

// Endorse transfers the bill to endorsee.
func (s *BillService) Endorse(ctx context.Context, billName string, endorsee model.Identity) (model.Block, error) {
	if endorsee.IsZero() {
		return model.Block{}, fmt.Errorf("%w: endorsee is required", ErrInvalidRequest)
	}
	return s.record(ctx, billName, model.EndorsePayload(endorsee, s.identity), s.requireHolder)
}

// Sell offers the bill to buyer for amount satoshi, paid to the derived sale address.
func (s *BillService) Sell(ctx context.Context, billName string, buyer model.Identity, amount uint64) (model.Block, error) {
	if buyer.IsZero() || amount == 0 {
		return model.Block{}, fmt.Errorf("%w: buyer and amount are required", ErrInvalidRequest)
	}
	return s.record(ctx, billName, model.SellPayload(buyer, s.identity, amount), func(ctx context.Context, c *chain.Chain, billKey *rsa.PrivateKey) error {
		if err := s.requireHolder(ctx, c, billKey); err != nil {
			return err
		}
		status, err := s.replayer.PaymentStatus(ctx, c, billKey)
		if err != nil {
			return err
		}
		if status.Waiting {
			return ErrWaitingForPayment
		}
		return nil
	})
}

// Accept records the drawee accepting the bill.
func (s *BillService) Accept(ctx context.Context, billName string) (model.Block, error) {
	return s.record(ctx, billName, model.RequestPayload(model.OperationAccept, s.identity), func(_ context.Context, c *chain.Chain, billKey *rsa.PrivateKey) error {
		bill, err := genesisBill(c, billKey)
		if err != nil {
			return err
		}
		if bill.Drawee.PeerID != s.identity.PeerID {
			return ErrNotDrawee
		}
		if c.HasOperation(model.OperationAccept) {
			return ErrAlreadyAccepted
		}
		return nil
	})
}

// RequestToAccept asks the drawee to accept the bill.
func (s *BillService) RequestToAccept(ctx context.Context, billName string) (model.Block, error) {
	return s.record(ctx, billName, model.RequestPayload(model.OperationRequestToAccept, s.identity), s.requireHolder)
}

// RequestToPay asks the drawee to pay the bill.
func (s *BillService) RequestToPay(ctx context.Context, billName string) (model.Block, error) {
	return s.record(ctx, billName, model.RequestPayload(model.OperationRequestToPay, s.identity), s.requireHolder)
}

// Snapshot returns the current state of a bill.
func (s *BillService) Snapshot(ctx context.Context, billName string) (model.Snapshot, error) {
	c, billKey, err := s.open(ctx, billName)
	if err != nil {
		return model.Snapshot{}, err
	}
	return s.replayer.Snapshot(ctx, c, billKey)
}

// List returns the state of every bill held locally. Bills that fail to replay are skipped.
func (s *BillService) List(ctx context.Context) ([]model.Snapshot, error) {
	names, err := s.keys.ListBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	snapshots := make([]model.Snapshot, 0, len(names))
	for _, name := range names {
		snapshot, err := s.Snapshot(ctx, name)
		if err != nil {
			s.logger.Warn("skipping bill", zap.String("bill", name), zap.Error(err))
			continue
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

// Chain returns the stored chain of a bill.
func (s *BillService) Chain(ctx context.Context, billName string) (*chain.Chain, error) {
	held, err := s.ledger.Has(ctx, billName)
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBill, billName)
	}
	return s.ledger.Load(ctx, billName)
}

// AddBillToDHTForNode adds billName to the directory entry of p unless it is listed already.
func (s *BillService) AddBillToDHTForNode(ctx context.Context, billName string, p peer.ID) error {
	bills, err := s.network.GetBills(ctx, p)
	if err != nil {
		return err
	}
	if slices.Contains(bills, billName) {
		return nil
	}
	return s.network.PutBills(ctx, p, append(bills, billName))
}

type authorizeFunc func(ctx context.Context, c *chain.Chain, billKey *rsa.PrivateKey) error

// record appends an operation signed by the node owner once authorize accepts it
// against the current chain, then tells the network.
func (s *BillService) record(ctx context.Context, billName string, payload model.Payload, authorize authorizeFunc) (model.Block, error) {
	keys, billKey, err := s.loadKeys(ctx, billName)
	if err != nil {
		return model.Block{}, err
	}

	block, err := s.ledger.AppendNext(ctx, billName, func(last model.Block) (model.Block, error) {
		c, err := s.ledger.Load(ctx, billName)
		if err != nil {
			return model.Block{}, err
		}
		if err := authorize(ctx, c, billKey); err != nil {
			return model.Block{}, err
		}
		data, err := chain.EncryptPayload(keys.PublicKey, payload)
		if err != nil {
			return model.Block{}, err
		}
		return chain.NewBlock(billName, last.ID+1, last.Hash, data, payload.Kind, s.signer, s.clock.Now().Unix())
	})
	if err != nil {
		return model.Block{}, fmt.Errorf("%s %s: %w", strings.ToLower(string(payload.Kind)), billName, err)
	}

	s.logger.Info("operation recorded",
		zap.String("bill", billName),
		zap.String("operation", string(block.OperationCode)),
		zap.Uint64("id", block.ID),
	)

	s.broadcast(ctx, block)
	for _, p := range payload.Participants() {
		s.shareWith(ctx, billName, p.PeerID)
	}
	return block, nil
}

func (s *BillService) requireHolder(ctx context.Context, c *chain.Chain, billKey *rsa.PrivateKey) error {
	holder, err := s.replayer.CurrentHolder(ctx, c, billKey)
	if err != nil {
		return err
	}
	if holder.PeerID != s.identity.PeerID {
		return ErrNotHolder
	}
	return nil
}

func (s *BillService) loadKeys(ctx context.Context, billName string) (model.BillKeys, *rsa.PrivateKey, error) {
	keys, err := s.keys.LoadKeys(ctx, billName)
	if errors.Is(err, storage.ErrNotFound) {
		return model.BillKeys{}, nil, fmt.Errorf("%w: %s", ErrUnknownBill, billName)
	}
	if err != nil {
		return model.BillKeys{}, nil, fmt.Errorf("load keys of %s: %w", billName, err)
	}
	billKey, err := billcrypto.ParsePrivateKeyPEM(keys.PrivateKey)
	if err != nil {
		return model.BillKeys{}, nil, fmt.Errorf("bill key of %s: %w", billName, err)
	}
	return keys, billKey, nil
}

func (s *BillService) open(ctx context.Context, billName string) (*chain.Chain, *rsa.PrivateKey, error) {
	_, billKey, err := s.loadKeys(ctx, billName)
	if err != nil {
		return nil, nil, err
	}
	c, err := s.Chain(ctx, billName)
	if err != nil {
		return nil, nil, err
	}
	return c, billKey, nil
}

// announce joins the bill topic and advertises this node as a provider.
func (s *BillService) announce(ctx context.Context, billName string) {
	if err := s.network.Subscribe(ctx, billName); err != nil {
		s.logger.Warn("subscribe failed", zap.String("bill", billName), zap.Error(err))
	}
	if err := s.network.StartProviding(ctx, billName); err != nil {
		s.logger.Warn("start providing failed", zap.String("bill", billName), zap.Error(err))
	}
}

// shareWith lists the bill in the directory entry of a participant.
func (s *BillService) shareWith(ctx context.Context, billName, peerID string) {
	if peerID == "" {
		return
	}
	p, err := peer.Decode(peerID)
	if err != nil {
		s.logger.Warn("participant has an invalid peer id", zap.String("bill", billName), zap.String("peer", peerID), zap.Error(err))
		return
	}
	if err := s.AddBillToDHTForNode(ctx, billName, p); err != nil {
		s.logger.Warn("directory update failed", zap.String("bill", billName), zap.Stringer("peer", p), zap.Error(err))
	}
}

func (s *BillService) broadcast(ctx context.Context, block model.Block) {
	raw, err := json.Marshal(block)
	if err != nil {
		s.logger.Error("encode block", zap.String("bill", block.BillName), zap.Error(err))
		return
	}
	s.publish(ctx, block.BillName, network.GossipNewBlock, raw)
}

func (s *BillService) publish(ctx context.Context, billName string, kind network.GossipKind, data []byte) {
	msg, err := network.EncodeGossip(kind, data)
	if err != nil {
		s.logger.Error("encode gossip", zap.String("bill", billName), zap.Error(err))
		return
	}
	if err := s.network.Publish(ctx, billName, msg); err != nil {
		s.logger.Warn("publish failed", zap.String("bill", billName), zap.String("kind", string(kind)), zap.Error(err))
	}
}

func genesisBill(c *chain.Chain, billKey *rsa.PrivateKey) (model.Bill, error) {
	p, err := chain.DecryptPayload(billKey, c.First())
	if err != nil {
		return model.Bill{}, err
	}
	if p.Bill == nil {
		return model.Bill{}, fmt.Errorf("%w: genesis without bill", chain.ErrMalformedPayload)
	}
	return *p.Bill, nil
}
