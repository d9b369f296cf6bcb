package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// RecordStoreClient is the client API for the RecordStore service.
type RecordStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewRecordStoreClient(cc grpc.ClientConnInterface) *RecordStoreClient {
	return &RecordStoreClient{cc: cc}
}

func (c *RecordStoreClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.invoke(ctx, PingMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RecordStoreClient) UpsertDocument(ctx context.Context, in *UpsertDocumentRequest, opts ...grpc.CallOption) (*UpsertDocumentResponse, error) {
	out := new(UpsertDocumentResponse)
	if err := c.invoke(ctx, UpsertDocumentMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RecordStoreClient) QueryDocuments(ctx context.Context, in *QueryDocumentsRequest, opts ...grpc.CallOption) (*QueryDocumentsResponse, error) {
	out := new(QueryDocumentsResponse)
	if err := c.invoke(ctx, QueryDocumentsMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RecordStoreClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
