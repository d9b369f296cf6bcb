package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName = "gophrecords.RecordStore"

	PingMethod           = "/" + ServiceName + "/Ping"
	UpsertDocumentMethod = "/" + ServiceName + "/UpsertDocument"
	QueryDocumentsMethod = "/" + ServiceName + "/QueryDocuments"
)

// RecordStoreServer is the server API for the RecordStore service.
type RecordStoreServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	UpsertDocument(context.Context, *UpsertDocumentRequest) (*UpsertDocumentResponse, error)
	QueryDocuments(context.Context, *QueryDocumentsRequest) (*QueryDocumentsResponse, error)
}

// UnimplementedRecordStoreServer can be embedded to get forward compatible
// implementations.
type UnimplementedRecordStoreServer struct{}

func (UnimplementedRecordStoreServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedRecordStoreServer) UpsertDocument(context.Context, *UpsertDocumentRequest) (*UpsertDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpsertDocument not implemented")
}

func (UnimplementedRecordStoreServer) QueryDocuments(context.Context, *QueryDocumentsRequest) (*QueryDocumentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method QueryDocuments not implemented")
}

func RegisterRecordStoreServer(s grpc.ServiceRegistrar, srv RecordStoreServer) {
	s.RegisterService(&RecordStoreServiceDesc, srv)
}

// RecordStoreServiceDesc is the grpc.ServiceDesc for the RecordStore service.
var RecordStoreServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RecordStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ping",
			Handler:    unaryHandler(PingMethod, RecordStoreServer.Ping),
		},
		{
			MethodName: "UpsertDocument",
			Handler:    unaryHandler(UpsertDocumentMethod, RecordStoreServer.UpsertDocument),
		},
		{
			MethodName: "QueryDocuments",
			Handler:    unaryHandler(QueryDocumentsMethod, RecordStoreServer.QueryDocuments),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophrecords/recordstore",
}

func unaryHandler[Req, Resp any](fullMethod string, call func(RecordStoreServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RecordStoreServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RecordStoreServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
