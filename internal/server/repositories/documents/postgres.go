package documents

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophrecords/internal/dbx"
	"github.com/dmitrijs2005/gophrecords/internal/records"
)

// PostgresRepository implements document storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, key Key, doc records.Document) error {
	query := `
		INSERT INTO documents (owner_id, workspace, scope, collection, id, updated_at, deleted, body)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (owner_id, workspace, scope, collection, id)
		DO UPDATE SET
			updated_at = EXCLUDED.updated_at,
			deleted = EXCLUDED.deleted,
			body = EXCLUDED.body;
	`
	_, err := r.db.ExecContext(ctx, query,
		key.OwnerID, key.Workspace, string(key.Scope), string(key.Collection), key.ID,
		doc.UpdatedAt, doc.Deleted, string(doc.Body))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SelectNewer(ctx context.Context, f Filter, after *Cursor, limit int) ([]records.Document, error) {
	cursor := Cursor{UpdatedAt: f.Watermark}
	if after != nil && after.UpdatedAt >= f.Watermark {
		cursor = *after
	}

	query := `
		SELECT id, scope, updated_at, deleted, body FROM documents
		WHERE owner_id = $1 AND workspace = $2 AND collection = $3 AND scope = $4
			AND updated_at > $5
			AND (updated_at, id) > ($6, $7)
		ORDER BY updated_at, id
		LIMIT $8
	`
	rows, err := r.db.QueryContext(ctx, query,
		f.OwnerID, f.Workspace, string(f.Collection), string(f.Scope),
		f.Watermark, cursor.UpdatedAt, cursor.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	result := make([]records.Document, 0)
	for rows.Next() {
		var (
			doc   records.Document
			scope string
			body  []byte
		)
		if err := rows.Scan(&doc.ID, &scope, &doc.UpdatedAt, &doc.Deleted, &body); err != nil {
			return nil, err
		}
		doc.Scope = records.Scope(scope)
		doc.Body = body
		result = append(result, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
