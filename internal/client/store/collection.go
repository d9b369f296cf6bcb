package store

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/records"
)

// TypedRepository is the sync-facing half of the subjects and events
// repositories.
type TypedRepository[R records.Record] interface {
	ListDirty(ctx context.Context, scope records.Scope) ([]R, error)
	MarkClean(ctx context.Context, versions []records.Version) error
	Upsert(ctx context.Context, recs ...R) error
	MaxUpdatedAt(ctx context.Context, scope records.Scope) (int64, error)
}

// Collection adapts a TypedRepository to records.Record values.
type Collection[R records.Record] struct {
	collection records.Collection
	repo       TypedRepository[R]
}

func NewCollection[R records.Record](c records.Collection, repo TypedRepository[R]) *Collection[R] {
	return &Collection[R]{collection: c, repo: repo}
}

func (c *Collection[R]) Collection() records.Collection { return c.collection }

func (c *Collection[R]) ListDirty(ctx context.Context, scope records.Scope) ([]records.Record, error) {
	typed, err := c.repo.ListDirty(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]records.Record, len(typed))
	for i, r := range typed {
		out[i] = r
	}
	return out, nil
}

func (c *Collection[R]) MarkClean(ctx context.Context, versions []records.Version) error {
	return c.repo.MarkClean(ctx, versions)
}

// Upsert rejects the whole batch if any record belongs to another
// collection.
func (c *Collection[R]) Upsert(ctx context.Context, recs ...records.Record) error {
	typed := make([]R, len(recs))
	for i, rec := range recs {
		t, ok := rec.(R)
		if !ok {
			return fmt.Errorf("record %s is not in %s: %w", rec.Metadata().ID, c.collection, common.ErrInvalidCollection)
		}
		typed[i] = t
	}
	return c.repo.Upsert(ctx, typed...)
}

func (c *Collection[R]) MaxUpdatedAt(ctx context.Context, scope records.Scope) (int64, error) {
	return c.repo.MaxUpdatedAt(ctx, scope)
}
