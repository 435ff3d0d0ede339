package transport

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name of the control API.
const ServiceName = "bitcredit.v1.BillNode"

// BillNodeServer is the server API of the control service.
type BillNodeServer interface {
	Issue(ctx context.Context, req *IssueRequest) (*BillResponse, error)
	Endorse(ctx context.Context, req *EndorseRequest) (*BlockResponse, error)
	Sell(ctx context.Context, req *SellRequest) (*BlockResponse, error)
	Accept(ctx context.Context, req *BillRequest) (*BlockResponse, error)
	RequestToAccept(ctx context.Context, req *BillRequest) (*BlockResponse, error)
	RequestToPay(ctx context.Context, req *BillRequest) (*BlockResponse, error)
	GetBill(ctx context.Context, req *BillRequest) (*SnapshotResponse, error)
	ListBills(ctx context.Context, req *ListBillsRequest) (*ListBillsResponse, error)
	Sync(ctx context.Context, req *SyncRequest) (*SyncResponse, error)
}

// RegisterBillNodeServer registers srv on s.
func RegisterBillNodeServer(s grpc.ServiceRegistrar, srv BillNodeServer) {
	s.RegisterService(&billNodeServiceDesc, srv)
}

var billNodeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BillNodeServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Issue", BillNodeServer.Issue),
		unary("Endorse", BillNodeServer.Endorse),
		unary("Sell", BillNodeServer.Sell),
		unary("Accept", BillNodeServer.Accept),
		unary("RequestToAccept", BillNodeServer.RequestToAccept),
		unary("RequestToPay", BillNodeServer.RequestToPay),
		unary("GetBill", BillNodeServer.GetBill),
		unary("ListBills", BillNodeServer.ListBills),
		unary("Sync", BillNodeServer.Sync),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bitcredit/v1/bill_node",
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unary[Req, Resp any](method string, call func(BillNodeServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				resp, err := call(srv.(BillNodeServer), ctx, req.(*Req))
				if err != nil {
					return nil, err
				}
				return resp, nil
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(method),
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
