// Package store opens the client's local SQLite database and exposes its
// repositories, plus adapters that present the subjects and events tables
// to the sync orchestrator as untyped record collections.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/gophrecords/internal/client/migrations"
	"github.com/dmitrijs2005/gophrecords/internal/client/repositories/events"
	"github.com/dmitrijs2005/gophrecords/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophrecords/internal/client/repositories/subjects"
	"github.com/dmitrijs2005/gophrecords/internal/filex"
	"github.com/dmitrijs2005/gophrecords/internal/records"

	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the data directory.
const FileName = "records.db"

type Store struct {
	db       *sql.DB
	subjects *subjects.SQLiteRepository
	events   *events.SQLiteRepository
	metadata *metadata.SQLiteRepository
}

// Open creates dataDir when needed, opens FileName inside it and applies
// migrations.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	dir, err := filex.EnsureDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare data dir: %w", err)
	}
	dsn := "file:" + filepath.Join(dir, FileName) + "?_pragma=busy_timeout(5000)"
	return OpenDSN(ctx, dsn)
}

// OpenDSN opens a SQLite database by driver DSN and applies migrations.
func OpenDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite has a single writer, and :memory: is private to a connection.
	db.SetMaxOpenConns(1)

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db), nil
}

// New wraps an already migrated database.
func New(db *sql.DB) *Store {
	return &Store{
		db:       db,
		subjects: subjects.NewSQLiteRepository(db),
		events:   events.NewSQLiteRepository(db),
		metadata: metadata.NewSQLiteRepository(db),
	}
}

func (s *Store) Subjects() *subjects.SQLiteRepository { return s.subjects }
func (s *Store) Events() *events.SQLiteRepository     { return s.events }
func (s *Store) Metadata() *metadata.SQLiteRepository { return s.metadata }

// SyncSubjects returns the subjects table as a sync collection.
func (s *Store) SyncSubjects() *Collection[*records.Subject] {
	return NewCollection[*records.Subject](records.CollectionSubjects, s.subjects)
}

// SyncEvents returns the events table as a sync collection.
func (s *Store) SyncEvents() *Collection[*records.Event] {
	return NewCollection[*records.Event](records.CollectionEvents, s.events)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
