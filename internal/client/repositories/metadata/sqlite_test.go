package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k1", []byte{0x01, 0x02}))
	v, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, v)

	require.NoError(t, r.Set(ctx, "k1", []byte("new")))
	v, err = r.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestGet_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_NilValueStoredAsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", nil))
	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)
}

func TestList_ByPrefix(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "sync.pets.last_success", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "sync.pets.last_error", []byte{0xBB, 0xCC}))
	require.NoError(t, r.Set(ctx, "sync.pets/", []byte{0x00}))
	require.NoError(t, r.Set(ctx, "sync.cars.last_success", []byte{0xDD}))

	m, err := r.List(ctx, "sync.pets.")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"sync.pets.last_success": {0xAA},
		"sync.pets.last_error":   {0xBB, 0xCC},
	}, m)

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := r.List(ctx, "sync.house.")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPrefixEnd(t *testing.T) {
	end, ok := prefixEnd("sync.pets.")
	require.True(t, ok)
	assert.Equal(t, "sync.pets/", end)

	end, ok = prefixEnd("a\xff")
	require.True(t, ok)
	assert.Equal(t, "b", end)

	_, ok = prefixEnd("")
	assert.False(t, ok)
	_, ok = prefixEnd("\xff\xff")
	assert.False(t, ok)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set metadata[k]")

	_, err = r.List(ctx, "sync.")
	require.ErrorContains(t, err, `failed to list metadata "sync."`)
}
