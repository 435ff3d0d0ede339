package transport

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

// Dial opens an insecure client connection speaking the control API codec.
func Dial(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	return conn, nil
}

// Client calls the control API of a node.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient returns a Client using conn.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Issue draws a new bill on the node.
func (c *Client) Issue(ctx context.Context, req IssueRequest) (model.Bill, error) {
	var resp BillResponse
	if err := c.conn.Invoke(ctx, fullMethod("Issue"), &req, &resp); err != nil {
		return model.Bill{}, err
	}
	return resp.Bill, nil
}

// Endorse transfers a bill to endorsee.
func (c *Client) Endorse(ctx context.Context, billName string, endorsee model.Identity) (model.Block, error) {
	return c.block(ctx, "Endorse", &EndorseRequest{Bill: billName, Endorsee: endorsee})
}

// Sell sells a bill to buyer for amount.
func (c *Client) Sell(ctx context.Context, billName string, buyer model.Identity, amount uint64) (model.Block, error) {
	return c.block(ctx, "Sell", &SellRequest{Bill: billName, Buyer: buyer, Amount: amount})
}

// Accept accepts a bill as its drawee.
func (c *Client) Accept(ctx context.Context, billName string) (model.Block, error) {
	return c.block(ctx, "Accept", &BillRequest{Bill: billName})
}

// RequestToAccept asks the drawee to accept a bill.
func (c *Client) RequestToAccept(ctx context.Context, billName string) (model.Block, error) {
	return c.block(ctx, "RequestToAccept", &BillRequest{Bill: billName})
}

// RequestToPay asks the drawee to pay a bill.
func (c *Client) RequestToPay(ctx context.Context, billName string) (model.Block, error) {
	return c.block(ctx, "RequestToPay", &BillRequest{Bill: billName})
}

// GetBill returns the current state of a bill.
func (c *Client) GetBill(ctx context.Context, billName string) (model.Snapshot, error) {
	var resp SnapshotResponse
	if err := c.conn.Invoke(ctx, fullMethod("GetBill"), &BillRequest{Bill: billName}, &resp); err != nil {
		return model.Snapshot{}, err
	}
	return resp.Snapshot, nil
}

// ListBills returns every bill held by the node.
func (c *Client) ListBills(ctx context.Context) ([]model.Snapshot, error) {
	var resp ListBillsResponse
	if err := c.conn.Invoke(ctx, fullMethod("ListBills"), &ListBillsRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Bills, nil
}

// Sync triggers a directory upgrade and bill discovery pass.
func (c *Client) Sync(ctx context.Context) (int, error) {
	var resp SyncResponse
	if err := c.conn.Invoke(ctx, fullMethod("Sync"), &SyncRequest{}, &resp); err != nil {
		return 0, err
	}
	return resp.Imported, nil
}

func (c *Client) block(ctx context.Context, method string, req any) (model.Block, error) {
	var resp BlockResponse
	if err := c.conn.Invoke(ctx, fullMethod(method), req, &resp); err != nil {
		return model.Block{}, err
	}
	return resp.Block, nil
}
