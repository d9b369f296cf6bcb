package remote

import (
	"context"

	"github.com/dmitrijs2005/gophrecords/internal/records"
)

// Store is the remote document store used by the sync orchestrator.
type Store interface {
	// UpsertOne overwrites the document with doc.ID in the scope partition
	// of collection.
	UpsertOne(ctx context.Context, scope records.Scope, collection records.Collection, doc records.Document) error

	// QueryNewerThan returns every document of the scope partition whose
	// UpdatedAt is strictly greater than watermark. The result is complete:
	// adapters follow pagination themselves.
	QueryNewerThan(ctx context.Context, scope records.Scope, collection records.Collection, watermark int64) ([]records.Document, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	Close() error
}
