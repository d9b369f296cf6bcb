package subjects

import (
	"context"

	"github.com/dmitrijs2005/gophrecords/internal/records"
)

// Repository describes storage operations for Subjects.
type Repository interface {
	// Create inserts a new dirty subject. s.UpdatedAt must already be set.
	Create(ctx context.Context, s *records.Subject) error

	// Update overwrites the mutable fields of an existing subject, marks it
	// dirty and stores the advanced clock back into s.UpdatedAt.
	Update(ctx context.Context, s *records.Subject) error

	// SoftDelete turns the subject into a tombstone and returns its new
	// updated_at.
	SoftDelete(ctx context.Context, scope records.Scope, id string, now int64) (int64, error)

	// GetByID returns a subject, tombstones included.
	GetByID(ctx context.Context, scope records.Scope, id string) (*records.Subject, error)

	// List returns subjects of a scope ordered by name.
	List(ctx context.Context, scope records.Scope, includeDeleted bool) ([]*records.Subject, error)

	ListDirty(ctx context.Context, scope records.Scope) ([]*records.Subject, error)
	MarkClean(ctx context.Context, versions []records.Version) error
	Upsert(ctx context.Context, subjects ...*records.Subject) error
	MaxUpdatedAt(ctx context.Context, scope records.Scope) (int64, error)
}
