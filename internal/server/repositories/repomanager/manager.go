// Package repomanager selects and owns the server's document storage
// backend: PostgreSQL when a DSN is configured, process memory otherwise.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophrecords/internal/server/repositories/documents"
)

type RepositoryManager interface {
	Documents() documents.Repository
	// Ping reports whether the backend can serve requests.
	Ping(ctx context.Context) error
	Close() error
}

// New returns a PostgreSQL manager for a non-empty dsn and an in-memory one
// otherwise.
func New(ctx context.Context, dsn string) (RepositoryManager, error) {
	if dsn == "" {
		return NewInMemoryRepositoryManager(), nil
	}
	m, err := NewPostgresRepositoryManager(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return m, nil
}
