package events

import (
	"context"

	"github.com/dmitrijs2005/gophrecords/internal/records"
)

// Repository describes storage operations for Events.
type Repository interface {
	Create(ctx context.Context, e *records.Event) error
	Update(ctx context.Context, e *records.Event) error
	SoftDelete(ctx context.Context, scope records.Scope, id string, now int64) (int64, error)
	GetByID(ctx context.Context, scope records.Scope, id string) (*records.Event, error)

	// List returns events of a scope ordered by due date. An empty subjectID
	// lists every subject.
	List(ctx context.Context, scope records.Scope, subjectID string, includeDeleted bool) ([]*records.Event, error)

	ListDirty(ctx context.Context, scope records.Scope) ([]*records.Event, error)
	MarkClean(ctx context.Context, versions []records.Version) error
	Upsert(ctx context.Context, events ...*records.Event) error
	MaxUpdatedAt(ctx context.Context, scope records.Scope) (int64, error)
}
