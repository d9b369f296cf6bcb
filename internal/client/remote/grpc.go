package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/records"
	"github.com/dmitrijs2005/gophrecords/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// GRPC is a Store backed by the gophrecords server. The owner is the
// subject of the access token; the workspace is sent with each request.
type GRPC struct {
	conn      *grpc.ClientConn
	client    *rpc.RecordStoreClient
	workspace string
	pageSize  int32

	mu    sync.RWMutex
	token string
}

// NewGRPC dials address. The connection is established lazily, so an
// unreachable server surfaces on the first call rather than here.
func NewGRPC(address, workspace, token string) (*GRPC, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc client: %w", err)
	}
	g := NewGRPCWithConn(conn, workspace, token)
	g.conn = conn
	return g, nil
}

// NewGRPCWithConn builds an adapter over an existing connection. Close does
// not close cc.
func NewGRPCWithConn(cc grpc.ClientConnInterface, workspace, token string) *GRPC {
	return &GRPC{client: rpc.NewRecordStoreClient(cc), workspace: workspace, token: token}
}

// SetPageSize sets the page size requested from the server. Zero lets the
// server decide.
func (g *GRPC) SetPageSize(n int32) { g.pageSize = n }

// SetToken replaces the access token used by later calls.
func (g *GRPC) SetToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = token
}

func (g *GRPC) withToken(ctx context.Context) context.Context {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return rpc.WithAccessToken(ctx, g.token)
}

func (g *GRPC) UpsertOne(ctx context.Context, scope records.Scope, collection records.Collection, doc records.Document) error {
	doc.Scope = scope
	_, err := g.client.UpsertDocument(g.withToken(ctx), &rpc.UpsertDocumentRequest{
		Workspace:  g.workspace,
		Collection: string(collection),
		Document:   doc,
	})
	return mapGRPCError(err)
}

func (g *GRPC) QueryNewerThan(ctx context.Context, scope records.Scope, collection records.Collection, watermark int64) ([]records.Document, error) {
	ctx = g.withToken(ctx)
	req := &rpc.QueryDocumentsRequest{
		Workspace:  g.workspace,
		Collection: string(collection),
		Scope:      string(scope),
		Watermark:  watermark,
		PageSize:   g.pageSize,
	}

	var out []records.Document
	seen := make(map[string]struct{})
	for {
		resp, err := g.client.QueryDocuments(ctx, req)
		if err != nil {
			return nil, mapGRPCError(err)
		}
		out = append(out, resp.Documents...)

		if resp.NextPageToken == "" {
			return out, nil
		}
		if _, dup := seen[resp.NextPageToken]; dup {
			return nil, fmt.Errorf("%w: server repeated page token", common.ErrInvalidPageToken)
		}
		seen[resp.NextPageToken] = struct{}{}
		req.PageToken = resp.NextPageToken
	}
}

func (g *GRPC) Ping(ctx context.Context) error {
	resp, err := g.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return mapGRPCError(err)
	}
	if resp.Status != rpc.StatusOK {
		return fmt.Errorf("%w: status %q", common.ErrUnavailable, resp.Status)
	}
	return nil
}

func (g *GRPC) Close() error {
	if g.conn == nil {
		return nil
	}
	return g.conn.Close()
}
