package transport

import (
	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
	"github.com/goodnatureofminers/bitcredit-backend/internal/service"
)

type (
	// IssueRequest carries the terms of a new bill.
	IssueRequest = service.IssueRequest

	// BillRequest names the bill an operation applies to.
	BillRequest struct {
		Bill string `json:"bill"`
	}
	EndorseRequest struct {
		Bill     string         `json:"bill"`
		Endorsee model.Identity `json:"endorsee"`
	}
	SellRequest struct {
		Bill   string         `json:"bill"`
		Buyer  model.Identity `json:"buyer"`
		Amount uint64         `json:"amount"`
	}
	ListBillsRequest struct{}
	SyncRequest      struct{}

	BillResponse struct {
		Bill model.Bill `json:"bill"`
	}
	// BlockResponse returns the block an operation appended.
	BlockResponse struct {
		Block model.Block `json:"block"`
	}
	SnapshotResponse struct {
		Snapshot model.Snapshot `json:"snapshot"`
	}
	ListBillsResponse struct {
		Bills []model.Snapshot `json:"bills"`
	}
	SyncResponse struct {
		Imported int `json:"imported"`
	}
)
