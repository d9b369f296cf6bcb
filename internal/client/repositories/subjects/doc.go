// Package subjects provides the client-side persistence layer for Subjects.
//
// # Overview
//
// Repository covers the presentation-facing operations (Create, Update,
// SoftDelete, GetByID, List) and the sync-facing ones (ListDirty,
// MarkClean, Upsert, MaxUpdatedAt). SQLiteRepository implements it over a
// dbx.DBTX, so it can be bound to *sql.DB or to a running *sql.Tx.
//
// A subject is addressed by (scope, id): the same id may exist in several
// scopes as unrelated rows, and no operation reaches across scopes.
//
// # Dirty tracking
//
// Every local mutation sets dirty=1 and advances updated_at to
// max(now, previous+1). Upsert is reserved for records arriving from the
// remote store: it always writes dirty=0 and never replaces a row whose
// updated_at is greater than or equal to the incoming one. Tombstones are
// sticky; rows are never purged.
//
// Typical Usage
//
//	repo := subjects.NewSQLiteRepository(db)
//	_ = repo.Create(ctx, &records.Subject{Meta: records.Meta{ID: id, Scope: records.ScopePets, UpdatedAt: now}, Name: "Rex"})
//	dirty, _ := repo.ListDirty(ctx, records.ScopePets)
package subjects
