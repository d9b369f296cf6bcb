// Package tracked holds the SQL shared by the local record tables. Each
// tracked table carries id, scope, updated_at, deleted and dirty columns;
// the helpers here implement the sync-facing half of the store contract on
// top of them.
package tracked

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/dbx"
	"github.com/dmitrijs2005/gophrecords/internal/records"
)

// Table names a tracked table. Only package constants are used so the
// name is never user input.
type Table string

const (
	Subjects Table = "subjects"
	Events   Table = "events"
)

// MarkClean clears dirty for each version whose stored updated_at still
// equals the uploaded one. Rows edited since the upload, and unknown
// (scope, id) pairs, are left alone. All updates run in one transaction.
func MarkClean(ctx context.Context, db dbx.DBTX, t Table, versions []records.Version) error {
	if len(versions) == 0 {
		return nil
	}
	query := fmt.Sprintf(`UPDATE %s SET dirty = 0 WHERE scope = ? AND id = ? AND updated_at = ?`, t)
	err := dbx.InTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) error {
		for _, v := range versions {
			if _, err := tx.ExecContext(ctx, query, string(v.Scope), v.ID, v.UpdatedAt); err != nil {
				return fmt.Errorf("record %s: %w", v.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to mark %s clean: %w", t, err)
	}
	return nil
}

// MaxUpdatedAt returns the greatest updated_at in scope, dirty or not,
// deleted or not. An empty scope yields 0.
func MaxUpdatedAt(ctx context.Context, db dbx.DBTX, t Table, scope records.Scope) (int64, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(updated_at), 0) FROM %s WHERE scope = ?`, t)
	var wm int64
	if err := db.QueryRowContext(ctx, query, string(scope)).Scan(&wm); err != nil {
		return 0, fmt.Errorf("failed to read %s watermark: %w", t, err)
	}
	return wm, nil
}

// SoftDelete turns the row into a tombstone. It is a local mutation: the
// clock advances past the stored value and the row becomes dirty. Returns
// the new updated_at.
func SoftDelete(ctx context.Context, db dbx.DBTX, t Table, scope records.Scope, id string, now int64) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET deleted = 1, dirty = 1, updated_at = MAX(?, updated_at + 1)
		WHERE scope = ? AND id = ? RETURNING updated_at`, t)
	var updatedAt int64
	err := db.QueryRowContext(ctx, query, now, string(scope), id).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, common.ErrorNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s %s: %w", t, id, err)
	}
	return updatedAt, nil
}

// Bool converts a SQLite integer flag.
func Bool(v int64) bool { return v != 0 }
