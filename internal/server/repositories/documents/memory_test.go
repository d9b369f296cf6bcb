package documents

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophrecords/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func put(t *testing.T, r *MemoryRepository, owner string, c records.Collection, scope records.Scope, id string, updatedAt int64) {
	t.Helper()
	key := Key{OwnerID: owner, Workspace: "home", Scope: scope, Collection: c, ID: id}
	require.NoError(t, r.Upsert(context.Background(), key, records.Document{
		ID: id, Scope: scope, UpdatedAt: updatedAt, Body: []byte(`{"id":"` + id + `"}`),
	}))
}

func TestMemoryRepository_Overwrite(t *testing.T) {
	r := NewMemoryRepository()
	put(t, r, "o1", records.CollectionSubjects, records.ScopePets, "s1", 100)
	put(t, r, "o1", records.CollectionSubjects, records.ScopePets, "s1", 90)

	assert.Equal(t, 1, r.Len())
	docs, err := r.SelectNewer(context.Background(), testFilter(0), nil, 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, int64(90), docs[0].UpdatedAt, "upsert overwrites unconditionally")
}

func TestMemoryRepository_SelectNewer_Filters(t *testing.T) {
	r := NewMemoryRepository()
	put(t, r, "o1", records.CollectionSubjects, records.ScopePets, "s1", 100)
	put(t, r, "o1", records.CollectionSubjects, records.ScopePets, "s2", 101)
	put(t, r, "o1", records.CollectionSubjects, records.ScopeCars, "c1", 200)
	put(t, r, "o1", records.CollectionEvents, records.ScopePets, "e1", 300)
	put(t, r, "o2", records.CollectionSubjects, records.ScopePets, "x1", 400)

	docs, err := r.SelectNewer(context.Background(), testFilter(100), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"s2"}, docIDs(docs), "strictly greater than watermark, same owner, collection and scope")
}

func TestMemoryRepository_SelectNewer_Pages(t *testing.T) {
	r := NewMemoryRepository()
	put(t, r, "o1", records.CollectionSubjects, records.ScopePets, "b", 5)
	put(t, r, "o1", records.CollectionSubjects, records.ScopePets, "a", 5)
	put(t, r, "o1", records.CollectionSubjects, records.ScopePets, "c", 3)

	ctx := context.Background()
	first, err := r.SelectNewer(ctx, testFilter(0), nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, docIDs(first))

	cursor := CursorOf(first[len(first)-1])
	second, err := r.SelectNewer(ctx, testFilter(0), &cursor, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, docIDs(second))
}

func TestMemoryRepository_SameIDInTwoScopes(t *testing.T) {
	r := NewMemoryRepository()
	put(t, r, "o1", records.CollectionSubjects, records.ScopePets, "x", 10)
	put(t, r, "o1", records.CollectionSubjects, records.ScopeCars, "x", 20)

	assert.Equal(t, 2, r.Len())

	pets, err := r.SelectNewer(context.Background(), testFilter(0), nil, 10)
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, records.ScopePets, pets[0].Scope)
	assert.Equal(t, int64(10), pets[0].UpdatedAt)

	f := testFilter(0)
	f.Scope = records.ScopeCars
	cars, err := r.SelectNewer(context.Background(), f, nil, 10)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, int64(20), cars[0].UpdatedAt)
}

func TestMemoryRepository_BodyIsCopied(t *testing.T) {
	r := NewMemoryRepository()
	body := []byte(`{"id":"s1"}`)
	key := testKey()
	require.NoError(t, r.Upsert(context.Background(), key, records.Document{ID: "s1", Scope: records.ScopePets, UpdatedAt: 1, Body: body}))
	body[2] = 'X'

	docs, err := r.SelectNewer(context.Background(), testFilter(0), nil, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"s1"}`, string(docs[0].Body))
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	r := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, r.Upsert(ctx, testKey(), records.Document{}), context.Canceled)
	_, err := r.SelectNewer(ctx, testFilter(0), nil, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCursor_After(t *testing.T) {
	c := Cursor{UpdatedAt: 10, ID: "m"}
	assert.True(t, c.After(records.Document{UpdatedAt: 11, ID: "a"}))
	assert.True(t, c.After(records.Document{UpdatedAt: 10, ID: "n"}))
	assert.False(t, c.After(records.Document{UpdatedAt: 10, ID: "m"}))
	assert.False(t, c.After(records.Document{UpdatedAt: 9, ID: "z"}))
}

func docIDs(docs []records.Document) []string {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids
}

var (
	_ Repository = (*PostgresRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
)
