package subjects

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

const columns = `id, scope, owner_id, name, birth_date, measurement, notes, icon_key, color, updated_at, deleted, dirty`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, s *records.Subject) error {
	query := `INSERT INTO subjects (` + columns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, string(s.Scope), s.OwnerID, s.Name, dbx.NullInt64(s.BirthDate), dbx.NullFloat64(s.Measurement),
		s.Notes, s.IconKey, s.Color, s.UpdatedAt, s.Deleted)
	if err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	s.Dirty = true
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, s *records.Subject) error {
	query := `UPDATE subjects SET name = ?, birth_date = ?, measurement = ?, notes = ?, icon_key = ?, color = ?,
			dirty = 1, updated_at = MAX(?, updated_at + 1)
		WHERE scope = ? AND id = ? RETURNING updated_at, deleted`
	var deleted int64
	err := r.db.QueryRowContext(ctx, query,
		s.Name, dbx.NullInt64(s.BirthDate), dbx.NullFloat64(s.Measurement), s.Notes, s.IconKey, s.Color,
		s.UpdatedAt, string(s.Scope), s.ID).Scan(&s.UpdatedAt, &deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update subject %s: %w", s.ID, err)
	}
	s.Deleted = tracked.Bool(deleted)
	s.Dirty = true
	return nil
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, scope records.Scope, id string, now int64) (int64, error) {
	return tracked.SoftDelete(ctx, r.db, tracked.Subjects, scope, id, now)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, scope records.Scope, id string) (*records.Subject, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM subjects WHERE scope = ? AND id = ?`, string(scope), id)
	s, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject %s: %w", id, err)
	}
	return s, nil
}

func (r *SQLiteRepository) List(ctx context.Context, scope records.Scope, includeDeleted bool) ([]*records.Subject, error) {
	query := `SELECT ` + columns + ` FROM subjects WHERE scope = ? AND (? OR deleted = 0) ORDER BY name, id`
	return r.query(ctx, "list subjects", query, string(scope), includeDeleted)
}

func (r *SQLiteRepository) ListDirty(ctx context.Context, scope records.Scope) ([]*records.Subject, error) {
	query := `SELECT ` + columns + ` FROM subjects WHERE scope = ? AND dirty = 1`
	return r.query(ctx, "list dirty subjects", query, string(scope))
}

func (r *SQLiteRepository) MarkClean(ctx context.Context, versions []records.Version) error {
	return tracked.MarkClean(ctx, r.db, tracked.Subjects, versions)
}

// Upsert applies remote subjects in one transaction. A failure names the
// offending id and rolls back the whole batch.
func (r *SQLiteRepository) Upsert(ctx context.Context, subjects ...*records.Subject) error {
	if len(subjects) == 0 {
		return nil
	}
	query := `INSERT INTO subjects (` + columns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(scope, id) DO UPDATE SET
			owner_id = excluded.owner_id,
			name = excluded.name,
			birth_date = excluded.birth_date,
			measurement = excluded.measurement,
			notes = excluded.notes,
			icon_key = excluded.icon_key,
			color = excluded.color,
			updated_at = excluded.updated_at,
			deleted = MAX(subjects.deleted, excluded.deleted),
			dirty = 0
		WHERE excluded.updated_at > subjects.updated_at`

	err := dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		for _, s := range subjects {
			_, err := tx.ExecContext(ctx, query,
				s.ID, string(s.Scope), s.OwnerID, s.Name, dbx.NullInt64(s.BirthDate), dbx.NullFloat64(s.Measurement),
				s.Notes, s.IconKey, s.Color, s.UpdatedAt, s.Deleted)
			if err != nil {
				return fmt.Errorf("subject %s: %w", s.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert subjects: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MaxUpdatedAt(ctx context.Context, scope records.Scope) (int64, error) {
	return tracked.MaxUpdatedAt(ctx, r.db, tracked.Subjects, scope)
}

func (r *SQLiteRepository) query(ctx context.Context, op, query string, args ...any) ([]*records.Subject, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer rows.Close()

	var result []*records.Subject
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to %s: %w", op, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*records.Subject, error) {
	var (
		s           records.Subject
		scope       string
		birthDate   sql.NullInt64
		measurement sql.NullFloat64
		deleted     int64
		dirty       int64
	)
	err := row.Scan(&s.ID, &scope, &s.OwnerID, &s.Name, &birthDate, &measurement,
		&s.Notes, &s.IconKey, &s.Color, &s.UpdatedAt, &deleted, &dirty)
	if err != nil {
		return nil, err
	}
	s.Scope = records.Scope(scope)
	s.BirthDate = dbx.Int64Ptr(birthDate)
	s.Measurement = dbx.Float64Ptr(measurement)
	s.Deleted = tracked.Bool(deleted)
	s.Dirty = tracked.Bool(dirty)
	return &s, nil
}
