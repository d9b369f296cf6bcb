package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophrecords/internal/server/migrations"
	"github.com/dmitrijs2005/gophrecords/internal/server/repositories/documents"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories over one
// connection pool.
type PostgresRepositoryManager struct {
	db        *sql.DB
	documents *documents.PostgresRepository
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// NewPostgresRepositoryManager opens dsn with the pgx driver and applies the
// embedded migrations.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	m, err := NewPostgresRepositoryManagerWithDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

// NewPostgresRepositoryManagerWithDB migrates db and wraps it. Close closes db.
func NewPostgresRepositoryManagerWithDB(ctx context.Context, db *sql.DB) (*PostgresRepositoryManager, error) {
	if err := migrateUp(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}
	return &PostgresRepositoryManager{db: db, documents: documents.NewPostgresRepository(db)}, nil
}

func (m *PostgresRepositoryManager) Documents() documents.Repository { return m.documents }

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
