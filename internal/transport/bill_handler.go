package transport

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/internal/service"
)

// BillHandler implements BillNodeServer on top of the bill service.
type BillHandler struct {
	bills  Bills
	sync   Syncer
	logger *zap.Logger
}

// NewBillHandler returns a BillHandler instance.
func NewBillHandler(bills Bills, sync Syncer, logger *zap.Logger) *BillHandler {
	return &BillHandler{
		bills:  bills,
		sync:   sync,
		logger: logger.Named("bill_handler"),
	}
}

// Issue draws a new bill.
func (h *BillHandler) Issue(ctx context.Context, req *IssueRequest) (*BillResponse, error) {
	bill, err := h.bills.Issue(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &BillResponse{Bill: bill}, nil
}

// Endorse transfers a bill to the endorsee.
func (h *BillHandler) Endorse(ctx context.Context, req *EndorseRequest) (*BlockResponse, error) {
	if err := requireBill(req.Bill); err != nil {
		return nil, err
	}
	if req.Endorsee.IsZero() {
		return nil, toStatus(fmt.Errorf("%w: endorsee is required", service.ErrInvalidRequest))
	}
	return h.block(h.bills.Endorse(ctx, req.Bill, req.Endorsee))
}

// Sell sells a bill to the buyer.
func (h *BillHandler) Sell(ctx context.Context, req *SellRequest) (*BlockResponse, error) {
	if err := requireBill(req.Bill); err != nil {
		return nil, err
	}
	if req.Buyer.IsZero() || req.Amount == 0 {
		return nil, toStatus(fmt.Errorf("%w: buyer and amount are required", service.ErrInvalidRequest))
	}
	return h.block(h.bills.Sell(ctx, req.Bill, req.Buyer, req.Amount))
}

// Accept records the drawee accepting a bill.
func (h *BillHandler) Accept(ctx context.Context, req *BillRequest) (*BlockResponse, error) {
	if err := requireBill(req.Bill); err != nil {
		return nil, err
	}
	return h.block(h.bills.Accept(ctx, req.Bill))
}

// RequestToAccept asks the drawee to accept a bill.
func (h *BillHandler) RequestToAccept(ctx context.Context, req *BillRequest) (*BlockResponse, error) {
	if err := requireBill(req.Bill); err != nil {
		return nil, err
	}
	return h.block(h.bills.RequestToAccept(ctx, req.Bill))
}

// RequestToPay asks the drawee to pay a bill.
func (h *BillHandler) RequestToPay(ctx context.Context, req *BillRequest) (*BlockResponse, error) {
	if err := requireBill(req.Bill); err != nil {
		return nil, err
	}
	return h.block(h.bills.RequestToPay(ctx, req.Bill))
}

// GetBill returns the current state of a bill.
func (h *BillHandler) GetBill(ctx context.Context, req *BillRequest) (*SnapshotResponse, error) {
	if err := requireBill(req.Bill); err != nil {
		return nil, err
	}
	snapshot, err := h.bills.Snapshot(ctx, req.Bill)
	if err != nil {
		return nil, toStatus(err)
	}
	return &SnapshotResponse{Snapshot: snapshot}, nil
}

// ListBills returns the state of every bill held by the node.
func (h *BillHandler) ListBills(ctx context.Context, _ *ListBillsRequest) (*ListBillsResponse, error) {
	snapshots, err := h.bills.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	if snapshots == nil {
		snapshots = []model.Snapshot{}
	}
	return &ListBillsResponse{Bills: snapshots}, nil
}

// Sync runs one directory upgrade and bill discovery pass.
func (h *BillHandler) Sync(ctx context.Context, _ *SyncRequest) (*SyncResponse, error) {
	upgradeErr := h.sync.UpgradeTable(ctx)
	imported, checkErr := h.sync.CheckNewBills(ctx)
	if err := errors.Join(upgradeErr, checkErr); err != nil {
		h.logger.Warn("Sync failed", zap.Int("imported", imported), zap.Error(err))
		return nil, toStatus(err)
	}
	return &SyncResponse{Imported: imported}, nil
}

func (h *BillHandler) block(block model.Block, err error) (*BlockResponse, error) {
	if err != nil {
		return nil, toStatus(err)
	}
	return &BlockResponse{Block: block}, nil
}

func requireBill(billName string) error {
	if billName == "" {
		return toStatus(fmt.Errorf("%w: bill is required", service.ErrInvalidRequest))
	}
	return nil
}
