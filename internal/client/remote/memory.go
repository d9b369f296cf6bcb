package remote

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/records"
)

type memoryKey struct {
	collection records.Collection
	scope      records.Scope
	id         string
}

// Memory is an in-process Store. One instance is one owner/workspace; hand
// the same instance to several replicas to let them converge.
type Memory struct {
	mu   sync.RWMutex
	docs map[memoryKey]records.Document
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[memoryKey]records.Document)}
}

func (m *Memory) UpsertOne(ctx context.Context, scope records.Scope, collection records.Collection, doc records.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.ID == "" {
		return fmt.Errorf("%w: empty id", common.ErrInvalidDocument)
	}
	doc.Body = slices.Clone(doc.Body)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[memoryKey{collection: collection, scope: scope, id: doc.ID}] = doc
	return nil
}

func (m *Memory) QueryNewerThan(ctx context.Context, scope records.Scope, collection records.Collection, watermark int64) ([]records.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	var out []records.Document
	for k, d := range m.docs {
		if k.collection == collection && k.scope == scope && d.UpdatedAt > watermark {
			d.Body = slices.Clone(d.Body)
			out = append(out, d)
		}
	}
	m.mu.RUnlock()

	sortDocuments(out)
	return out, nil
}

// Get returns one stored document.
func (m *Memory) Get(scope records.Scope, collection records.Collection, id string) (records.Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.docs[memoryKey{collection: collection, scope: scope, id: id}]
	return d, ok
}

// Len returns the number of stored documents.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Close() error { return nil }

// sortDocuments orders by (UpdatedAt, ID).
func sortDocuments(docs []records.Document) {
	slices.SortFunc(docs, func(a, b records.Document) int {
		return cmp.Or(cmp.Compare(a.UpdatedAt, b.UpdatedAt), strings.Compare(a.ID, b.ID))
	})
}
