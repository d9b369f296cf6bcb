package rpc

import "github.com/dmitrijs2005/gophrecords/internal/records"

const StatusOK = "OK"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// UpsertDocumentRequest overwrites one document. The owner comes from the
// access token.
type UpsertDocumentRequest struct {
	Workspace  string           `json:"workspace"`
	Collection string           `json:"collection"`
	Document   records.Document `json:"document"`
}

type UpsertDocumentResponse struct{}

// QueryDocumentsRequest selects documents of one scope whose updatedAt is
// strictly greater than Watermark. Results come in (updatedAt, id) order.
type QueryDocumentsRequest struct {
	Workspace  string `json:"workspace"`
	Collection string `json:"collection"`
	Scope      string `json:"scope"`
	Watermark  int64  `json:"watermark"`
	PageSize   int32  `json:"pageSize,omitempty"`
	PageToken  string `json:"pageToken,omitempty"`
}

type QueryDocumentsResponse struct {
	Documents     []records.Document `json:"documents"`
	NextPageToken string             `json:"nextPageToken,omitempty"`
}
