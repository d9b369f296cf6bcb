package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophrecords/internal/client/repositories/tracked"
	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/dbx"
	"github.com/dmitrijs2005/gophrecords/internal/records"
)

const columns = `id, scope, owner_id, subject_id, title, note, due_at, realized, realized_at, cost, updated_at, deleted, dirty`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, e *records.Event) error {
	query := `INSERT INTO events (` + columns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, string(e.Scope), e.OwnerID, e.SubjectID, e.Title, e.Note, e.DueAt, e.Realized,
		dbx.NullInt64(e.RealizedAt), dbx.NullFloat64(e.Cost), e.UpdatedAt, e.Deleted)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	e.Dirty = true
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e *records.Event) error {
	query := `UPDATE events SET subject_id = ?, title = ?, note = ?, due_at = ?, realized = ?, realized_at = ?, cost = ?,
			dirty = 1, updated_at = MAX(?, updated_at + 1)
		WHERE scope = ? AND id = ? RETURNING updated_at, deleted`
	var deleted int64
	err := r.db.QueryRowContext(ctx, query,
		e.SubjectID, e.Title, e.Note, e.DueAt, e.Realized, dbx.NullInt64(e.RealizedAt), dbx.NullFloat64(e.Cost),
		e.UpdatedAt, string(e.Scope), e.ID).Scan(&e.UpdatedAt, &deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update event %s: %w", e.ID, err)
	}
	e.Deleted = tracked.Bool(deleted)
	e.Dirty = true
	return nil
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, scope records.Scope, id string, now int64) (int64, error) {
	return tracked.SoftDelete(ctx, r.db, tracked.Events, scope, id, now)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, scope records.Scope, id string) (*records.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM events WHERE scope = ? AND id = ?`, string(scope), id)
	e, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", id, err)
	}
	return e, nil
}

func (r *SQLiteRepository) List(ctx context.Context, scope records.Scope, subjectID string, includeDeleted bool) ([]*records.Event, error) {
	query := `SELECT ` + columns + ` FROM events
		WHERE scope = ? AND (? = '' OR subject_id = ?) AND (? OR deleted = 0)
		ORDER BY due_at, id`
	return r.query(ctx, "list events", query, string(scope), subjectID, subjectID, includeDeleted)
}

func (r *SQLiteRepository) ListDirty(ctx context.Context, scope records.Scope) ([]*records.Event, error) {
	query := `SELECT ` + columns + ` FROM events WHERE scope = ? AND dirty = 1`
	return r.query(ctx, "list dirty events", query, string(scope))
}

func (r *SQLiteRepository) MarkClean(ctx context.Context, versions []records.Version) error {
	return tracked.MarkClean(ctx, r.db, tracked.Events, versions)
}

// Upsert applies remote events in one transaction. A failure names the
// offending id and rolls back the whole batch.
func (r *SQLiteRepository) Upsert(ctx context.Context, events ...*records.Event) error {
	if len(events) == 0 {
		return nil
	}
	query := `INSERT INTO events (` + columns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(scope, id) DO UPDATE SET
			owner_id = excluded.owner_id,
			subject_id = excluded.subject_id,
			title = excluded.title,
			note = excluded.note,
			due_at = excluded.due_at,
			realized = excluded.realized,
			realized_at = excluded.realized_at,
			cost = excluded.cost,
			updated_at = excluded.updated_at,
			deleted = MAX(events.deleted, excluded.deleted),
			dirty = 0
		WHERE excluded.updated_at > events.updated_at`

	err := dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		for _, e := range events {
			_, err := tx.ExecContext(ctx, query,
				e.ID, string(e.Scope), e.OwnerID, e.SubjectID, e.Title, e.Note, e.DueAt, e.Realized,
				dbx.NullInt64(e.RealizedAt), dbx.NullFloat64(e.Cost), e.UpdatedAt, e.Deleted)
			if err != nil {
				return fmt.Errorf("event %s: %w", e.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert events: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MaxUpdatedAt(ctx context.Context, scope records.Scope) (int64, error) {
	return tracked.MaxUpdatedAt(ctx, r.db, tracked.Events, scope)
}

func (r *SQLiteRepository) query(ctx context.Context, op, query string, args ...any) ([]*records.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer rows.Close()

	var result []*records.Event
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to %s: %w", op, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*records.Event, error) {
	var (
		e          records.Event
		scope      string
		realized   int64
		realizedAt sql.NullInt64
		cost       sql.NullFloat64
		deleted    int64
		dirty      int64
	)
	err := row.Scan(&e.ID, &scope, &e.OwnerID, &e.SubjectID, &e.Title, &e.Note, &e.DueAt, &realized,
		&realizedAt, &cost, &e.UpdatedAt, &deleted, &dirty)
	if err != nil {
		return nil, err
	}
	e.Scope = records.Scope(scope)
	e.Realized = tracked.Bool(realized)
	e.RealizedAt = dbx.Int64Ptr(realizedAt)
	e.Cost = dbx.Float64Ptr(cost)
	e.Deleted = tracked.Bool(deleted)
	e.Dirty = tracked.Bool(dirty)
	return &e, nil
}
