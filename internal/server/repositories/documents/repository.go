package documents

import (
	"context"

	"github.com/dmitrijs2005/gophrecords/internal/records"
)

// Key addresses one stored document.
type Key struct {
	OwnerID    string
	Workspace  string
	Scope      records.Scope
	Collection records.Collection
	ID         string
}

// Filter selects documents of one scope newer than Watermark.
type Filter struct {
	OwnerID    string
	Workspace  string
	Collection records.Collection
	Scope      records.Scope
	Watermark  int64
}

// Cursor is the position of the last document of a page.
type Cursor struct {
	UpdatedAt int64  `json:"u"`
	ID        string `json:"i"`
}

// After reports whether doc sorts strictly after c.
func (c Cursor) After(doc records.Document) bool {
	if doc.UpdatedAt != c.UpdatedAt {
		return doc.UpdatedAt > c.UpdatedAt
	}
	return doc.ID > c.ID
}

// CursorOf returns the cursor positioned at doc.
func CursorOf(doc records.Document) Cursor {
	return Cursor{UpdatedAt: doc.UpdatedAt, ID: doc.ID}
}

type Repository interface {
	// Upsert stores doc under key, replacing any previous version.
	Upsert(ctx context.Context, key Key, doc records.Document) error
	// SelectNewer returns up to limit documents matching f, ordered by
	// (updated_at, id). A non-nil after skips documents up to and including it.
	SelectNewer(ctx context.Context, f Filter, after *Cursor, limit int) ([]records.Document, error)
}
