package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/logging"
	"github.com/dmitrijs2005/gophrecords/internal/records"
	"github.com/dmitrijs2005/gophrecords/internal/rpc"
	"github.com/dmitrijs2005/gophrecords/internal/server/repositories/documents"
)

const (
	DefaultPageSize = 500
	MaxPageSize     = 5000
)

// DocumentService validates RecordStore requests and runs them against a
// documents.Repository on behalf of an authenticated owner.
type DocumentService struct {
	repo     documents.Repository
	pageSize int
	log      logging.Logger
}

// NewDocumentService returns a service using pageSize when a query does not
// ask for one. Non-positive values select DefaultPageSize.
func NewDocumentService(repo documents.Repository, pageSize int, log logging.Logger) *DocumentService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &DocumentService{repo: repo, pageSize: min(pageSize, MaxPageSize), log: log}
}

// Upsert overwrites the document for owner. The header of the document must
// name a known scope and a non-empty id.
func (s *DocumentService) Upsert(ctx context.Context, owner string, req *rpc.UpsertDocumentRequest) error {
	if owner == "" {
		return common.ErrorUnauthorized
	}
	if req.Workspace == "" {
		return common.ErrInvalidWorkspace
	}
	collection, err := records.ParseCollection(req.Collection)
	if err != nil {
		return err
	}
	doc := req.Document
	if _, err := records.ParseScope(string(doc.Scope)); err != nil {
		return err
	}
	if doc.ID == "" {
		return fmt.Errorf("%w: empty id", common.ErrInvalidDocument)
	}
	if len(doc.Body) == 0 || !json.Valid(doc.Body) {
		return fmt.Errorf("%w: body of %s is not JSON", common.ErrInvalidDocument, doc.ID)
	}

	key := documents.Key{OwnerID: owner, Workspace: req.Workspace, Scope: doc.Scope, Collection: collection, ID: doc.ID}
	if err := s.repo.Upsert(ctx, key, doc); err != nil {
		s.log.Error(ctx, "upsert failed", "collection", collection, "id", doc.ID, "error", err)
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return nil
}

// Query returns one page of documents newer than the request watermark.
// NextPageToken is empty on the last page.
func (s *DocumentService) Query(ctx context.Context, owner string, req *rpc.QueryDocumentsRequest) (*rpc.QueryDocumentsResponse, error) {
	if owner == "" {
		return nil, common.ErrorUnauthorized
	}
	if req.Workspace == "" {
		return nil, common.ErrInvalidWorkspace
	}
	collection, err := records.ParseCollection(req.Collection)
	if err != nil {
		return nil, err
	}
	scope, err := records.ParseScope(req.Scope)
	if err != nil {
		return nil, err
	}
	after, err := DecodePageToken(req.PageToken)
	if err != nil {
		return nil, err
	}

	limit := s.pageSize
	if req.PageSize > 0 {
		limit = min(int(req.PageSize), MaxPageSize)
	}

	filter := documents.Filter{
		OwnerID:    owner,
		Workspace:  req.Workspace,
		Collection: collection,
		Scope:      scope,
		Watermark:  req.Watermark,
	}
	// One extra row tells whether another page follows.
	docs, err := s.repo.SelectNewer(ctx, filter, after, limit+1)
	if err != nil {
		s.log.Error(ctx, "query failed", "collection", collection, "scope", scope, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	resp := &rpc.QueryDocumentsResponse{Documents: docs}
	if len(docs) > limit {
		resp.Documents = docs[:limit]
		resp.NextPageToken = EncodePageToken(documents.CursorOf(docs[limit-1]))
	}
	return resp, nil
}

// EncodePageToken serializes c into an opaque token.
func EncodePageToken(c documents.Cursor) string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodePageToken parses a token produced by EncodePageToken. An empty token
// yields a nil cursor.
func DecodePageToken(token string) (*documents.Cursor, error) {
	if token == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPageToken, err)
	}
	var c documents.Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPageToken, err)
	}
	return &c, nil
}
