package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophrecords/internal/server/repositories/documents"
)

type InMemoryRepositoryManager struct {
	documents *documents.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{documents: documents.NewMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Documents() documents.Repository { return m.documents }

func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error { return ctx.Err() }

func (m *InMemoryRepositoryManager) Close() error { return nil }
