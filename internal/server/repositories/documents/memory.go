package documents

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/gophrecords/internal/records"
)

// MemoryRepository keeps documents in process memory. It backs the server
// when no database DSN is configured.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[Key]records.Document
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[Key]records.Document)}
}

func (r *MemoryRepository) Upsert(ctx context.Context, key Key, doc records.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc.Body = slices.Clone(doc.Body)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[key] = doc
	return nil
}

func (r *MemoryRepository) SelectNewer(ctx context.Context, f Filter, after *Cursor, limit int) ([]records.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	result := make([]records.Document, 0)
	for k, doc := range r.docs {
		if k.OwnerID != f.OwnerID || k.Workspace != f.Workspace || k.Scope != f.Scope || k.Collection != f.Collection {
			continue
		}
		if doc.UpdatedAt <= f.Watermark {
			continue
		}
		if after != nil && !after.After(doc) {
			continue
		}
		doc.Body = slices.Clone(doc.Body)
		result = append(result, doc)
	}
	r.mu.RUnlock()

	slices.SortFunc(result, func(a, b records.Document) int {
		return cmp.Or(cmp.Compare(a.UpdatedAt, b.UpdatedAt), cmp.Compare(a.ID, b.ID))
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Len returns the number of stored documents.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}
