package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/logging"
	"github.com/dmitrijs2005/gophrecords/internal/records"
	"github.com/dmitrijs2005/gophrecords/internal/rpc"
	"github.com/dmitrijs2005/gophrecords/internal/server/repositories/documents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	documents.Repository
	err error
}

func (f *failingRepo) Upsert(context.Context, documents.Key, records.Document) error { return f.err }

func (f *failingRepo) SelectNewer(context.Context, documents.Filter, *documents.Cursor, int) ([]records.Document, error) {
	return nil, f.err
}

func newService(pageSize int) (*DocumentService, *documents.MemoryRepository) {
	repo := documents.NewMemoryRepository()
	return NewDocumentService(repo, pageSize, logging.NewNopLogger()), repo
}

func upsertReq(id string, updatedAt int64) *rpc.UpsertDocumentRequest {
	return &rpc.UpsertDocumentRequest{
		Workspace:  "home",
		Collection: "subjects",
		Document: records.Document{
			ID:        id,
			Scope:     records.ScopePets,
			UpdatedAt: updatedAt,
			Body:      []byte(fmt.Sprintf(`{"id":%q,"scope":"pets","updatedAt":%d}`, id, updatedAt)),
		},
	}
}

func queryReq(watermark int64, pageSize int32, token string) *rpc.QueryDocumentsRequest {
	return &rpc.QueryDocumentsRequest{
		Workspace:  "home",
		Collection: "subjects",
		Scope:      "pets",
		Watermark:  watermark,
		PageSize:   pageSize,
		PageToken:  token,
	}
}

func TestNewDocumentService_PageSize(t *testing.T) {
	s, _ := newService(0)
	assert.Equal(t, DefaultPageSize, s.pageSize)

	s, _ = newService(MaxPageSize * 2)
	assert.Equal(t, MaxPageSize, s.pageSize)
}

func TestDocumentService_Upsert_Validation(t *testing.T) {
	s, repo := newService(10)
	ctx := context.Background()

	tests := []struct {
		name   string
		owner  string
		mutate func(r *rpc.UpsertDocumentRequest)
		want   error
	}{
		{name: "no owner", owner: "", mutate: func(*rpc.UpsertDocumentRequest) {}, want: common.ErrorUnauthorized},
		{name: "no workspace", owner: "o1", mutate: func(r *rpc.UpsertDocumentRequest) { r.Workspace = "" }, want: common.ErrInvalidWorkspace},
		{name: "bad collection", owner: "o1", mutate: func(r *rpc.UpsertDocumentRequest) { r.Collection = "notes" }, want: common.ErrInvalidCollection},
		{name: "bad scope", owner: "o1", mutate: func(r *rpc.UpsertDocumentRequest) { r.Document.Scope = "boats" }, want: common.ErrInvalidScope},
		{name: "empty id", owner: "o1", mutate: func(r *rpc.UpsertDocumentRequest) { r.Document.ID = "" }, want: common.ErrInvalidDocument},
		{name: "empty body", owner: "o1", mutate: func(r *rpc.UpsertDocumentRequest) { r.Document.Body = nil }, want: common.ErrInvalidDocument},
		{name: "broken body", owner: "o1", mutate: func(r *rpc.UpsertDocumentRequest) { r.Document.Body = []byte("{") }, want: common.ErrInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := upsertReq("s1", 1)
			tt.mutate(req)
			require.ErrorIs(t, s.Upsert(ctx, tt.owner, req), tt.want)
		})
	}
	assert.Equal(t, 0, repo.Len())
}

func TestDocumentService_UpsertAndQuery(t *testing.T) {
	s, _ := newService(10)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, "o1", upsertReq("s1", 100)))
	require.NoError(t, s.Upsert(ctx, "o1", upsertReq("s2", 200)))
	require.NoError(t, s.Upsert(ctx, "o2", upsertReq("s3", 300)))

	resp, err := s.Query(ctx, "o1", queryReq(100, 0, ""))
	require.NoError(t, err)
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "s2", resp.Documents[0].ID)
	assert.Empty(t, resp.NextPageToken)
}

func TestDocumentService_SameIDInTwoScopes(t *testing.T) {
	s, repo := newService(10)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, "o1", upsertReq("x", 10)))
	car := upsertReq("x", 20)
	car.Document.Scope = records.ScopeCars
	require.NoError(t, s.Upsert(ctx, "o1", car))
	assert.Equal(t, 2, repo.Len())

	resp, err := s.Query(ctx, "o1", queryReq(0, 0, ""))
	require.NoError(t, err)
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, int64(10), resp.Documents[0].UpdatedAt)
}

func TestDocumentService_Query_Pagination(t *testing.T) {
	s, _ := newService(2)
	ctx := context.Background()
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, s.Upsert(ctx, "o1", upsertReq(id, int64(10+i))))
	}

	var got []string
	token := ""
	pages := 0
	for {
		resp, err := s.Query(ctx, "o1", queryReq(0, 0, token))
		require.NoError(t, err)
		pages++
		for _, d := range resp.Documents {
			got = append(got, d.ID)
		}
		if resp.NextPageToken == "" {
			break
		}
		token = resp.NextPageToken
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
	assert.Equal(t, 3, pages)
}

func TestDocumentService_Query_ExactPageHasNoToken(t *testing.T) {
	s, _ := newService(10)
	ctx := context.Background()
	require.NoError(t, s.Upsert(ctx, "o1", upsertReq("a", 1)))
	require.NoError(t, s.Upsert(ctx, "o1", upsertReq("b", 2)))

	resp, err := s.Query(ctx, "o1", queryReq(0, 2, ""))
	require.NoError(t, err)
	assert.Len(t, resp.Documents, 2)
	assert.Empty(t, resp.NextPageToken)
}

func TestDocumentService_Query_Validation(t *testing.T) {
	s, _ := newService(10)
	ctx := context.Background()

	_, err := s.Query(ctx, "", queryReq(0, 0, ""))
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	req := queryReq(0, 0, "")
	req.Scope = "boats"
	_, err = s.Query(ctx, "o1", req)
	require.ErrorIs(t, err, common.ErrInvalidScope)

	req = queryReq(0, 0, "")
	req.Collection = ""
	_, err = s.Query(ctx, "o1", req)
	require.ErrorIs(t, err, common.ErrInvalidCollection)

	req = queryReq(0, 0, "")
	req.Workspace = ""
	_, err = s.Query(ctx, "o1", req)
	require.ErrorIs(t, err, common.ErrInvalidWorkspace)

	_, err = s.Query(ctx, "o1", queryReq(0, 0, "!!not base64"))
	require.ErrorIs(t, err, common.ErrInvalidPageToken)
}

func TestDocumentService_RepositoryErrors(t *testing.T) {
	s := NewDocumentService(&failingRepo{err: errors.New("db is down")}, 10, logging.NewNopLogger())
	ctx := context.Background()

	require.ErrorIs(t, s.Upsert(ctx, "o1", upsertReq("s1", 1)), common.ErrorInternal)
	_, err := s.Query(ctx, "o1", queryReq(0, 0, ""))
	require.ErrorIs(t, err, common.ErrorInternal)
}

func TestPageToken_RoundTrip(t *testing.T) {
	c := documents.Cursor{UpdatedAt: 42, ID: "s/1"}
	got, err := DecodePageToken(EncodePageToken(c))
	require.NoError(t, err)
	assert.Equal(t, &c, got)

	got, err = DecodePageToken("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = DecodePageToken("bm90IGpzb24")
	require.ErrorIs(t, err, common.ErrInvalidPageToken)
}
