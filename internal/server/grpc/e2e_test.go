package grpc

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophrecords/internal/client/remote"
	"github.com/dmitrijs2005/gophrecords/internal/client/store"
	"github.com/dmitrijs2005/gophrecords/internal/client/syncer"
	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteGRPC_AgainstServer(t *testing.T) {
	s, _ := newTestServer(2)
	conn := serveBufconn(t, s)
	ctx := context.Background()

	rs := remote.NewGRPCWithConn(conn, "home", token(t, "o1"))
	require.NoError(t, rs.Ping(ctx))

	for i, id := range []string{"a", "b", "c", "d", "e"} {
		body := []byte(`{"id":"` + id + `"}`)
		doc := records.Document{ID: id, UpdatedAt: int64(100 + i), Body: body}
		require.NoError(t, rs.UpsertOne(ctx, records.ScopePets, records.CollectionSubjects, doc))
	}

	docs, err := rs.QueryNewerThan(ctx, records.ScopePets, records.CollectionSubjects, 101)
	require.NoError(t, err)
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
		assert.Equal(t, records.ScopePets, d.Scope)
	}
	assert.Equal(t, []string{"c", "d", "e"}, ids, "follows pages of two")

	other := remote.NewGRPCWithConn(conn, "home", token(t, "o2"))
	docs, err = other.QueryNewerThan(ctx, records.ScopePets, records.CollectionSubjects, 0)
	require.NoError(t, err)
	assert.Empty(t, docs, "owners are isolated")
}

func TestRemoteGRPC_Unauthenticated(t *testing.T) {
	s, _ := newTestServer(10)
	conn := serveBufconn(t, s)
	ctx := context.Background()

	rs := remote.NewGRPCWithConn(conn, "home", "")
	require.NoError(t, rs.Ping(ctx), "ping needs no token")

	_, err := rs.QueryNewerThan(ctx, records.ScopePets, records.CollectionSubjects, 0)
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	err = rs.UpsertOne(ctx, records.ScopePets, records.CollectionSubjects, records.Document{ID: "x", Body: []byte(`{}`)})
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestSync_TwoReplicasThroughServer(t *testing.T) {
	s, _ := newTestServer(1)
	conn := serveBufconn(t, s)
	ctx := context.Background()

	open := func() (*store.Store, *syncer.Syncer) {
		st, err := store.Open(ctx, t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })
		rs := remote.NewGRPCWithConn(conn, "home", token(t, "o1"))
		return st, syncer.New(st.SyncSubjects(), st.SyncEvents(), rs)
	}

	a, syncA := open()
	require.NoError(t, a.Subjects().Create(ctx, &records.Subject{
		Meta: records.Meta{ID: "s1", Scope: records.ScopePets, OwnerID: "o1", UpdatedAt: 100},
		Name: "Rex",
	}))
	require.NoError(t, a.Events().Create(ctx, &records.Event{
		Meta:      records.Meta{ID: "e1", Scope: records.ScopePets, OwnerID: "o1", UpdatedAt: 101},
		SubjectID: "s1",
		Title:     "vaccine",
		DueAt:     5000,
	}))
	_, err := syncA.Run(ctx, records.ScopePets)
	require.NoError(t, err)

	b, syncB := open()
	report, err := syncB.Run(ctx, records.ScopePets)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Pulled())

	got, err := b.Subjects().GetByID(ctx, records.ScopePets, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)
	assert.Equal(t, int64(100), got.UpdatedAt)
	assert.False(t, got.Dirty)

	ev, err := b.Events().GetByID(ctx, records.ScopePets, "e1")
	require.NoError(t, err)
	assert.Equal(t, "s1", ev.SubjectID)
	assert.False(t, ev.Dirty)
}
