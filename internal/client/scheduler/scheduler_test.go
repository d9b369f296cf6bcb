package scheduler

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophrecords/internal/client/services"
	"github.com/dmitrijs2005/gophrecords/internal/client/syncer"
	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/logging"
	"github.com/dmitrijs2005/gophrecords/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSync struct {
	services.SyncService
	mu      sync.Mutex
	running bool
	err     error
	scopes  []records.Scope
}

func (f *fakeSync) Running(records.Scope) bool { return f.running }

func (f *fakeSync) Sync(ctx context.Context, scope records.Scope) services.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scopes = append(f.scopes, scope)
	if f.err != nil {
		return services.Outcome{Scope: scope, Err: f.err}
	}
	return services.Outcome{Scope: scope, Report: &syncer.Report{Scope: scope}}
}

func fixedScope(s records.Scope) func() records.Scope {
	return func() records.Scope { return s }
}

func TestTrigger_SyncsCurrentScope(t *testing.T) {
	fs := &fakeSync{}
	var got []services.Outcome
	s := New("@every 1h", fs, fixedScope(records.ScopeCars), func(o services.Outcome) { got = append(got, o) }, logging.NewNopLogger())

	s.trigger(context.Background())

	assert.Equal(t, []records.Scope{records.ScopeCars}, fs.scopes)
	require.Len(t, got, 1)
	assert.True(t, got[0].Success())
}

func TestTrigger_SkipsWhileRunning(t *testing.T) {
	fs := &fakeSync{running: true}
	s := New("@every 1h", fs, fixedScope(records.ScopePets), nil, logging.NewNopLogger())

	s.trigger(context.Background())
	assert.Empty(t, fs.scopes)
}

func TestTrigger_LostRaceIsNotReported(t *testing.T) {
	fs := &fakeSync{err: common.ErrSyncInProgress}
	called := false
	s := New("@every 1h", fs, fixedScope(records.ScopePets), func(services.Outcome) { called = true }, logging.NewNopLogger())

	s.trigger(context.Background())

	assert.Equal(t, []records.Scope{records.ScopePets}, fs.scopes)
	assert.False(t, called, "a sync started elsewhere is not a scheduled failure")
}

func TestTrigger_ReportsFailure(t *testing.T) {
	fs := &fakeSync{err: common.ErrUnavailable}
	var got []services.Outcome
	s := New("@every 1h", fs, fixedScope(records.ScopePets), func(o services.Outcome) { got = append(got, o) }, logging.NewNopLogger())

	s.trigger(context.Background())

	require.Len(t, got, 1)
	require.ErrorIs(t, got[0].Err, common.ErrUnavailable)
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New("every now and then", &fakeSync{}, fixedScope(records.ScopePets), nil, logging.NewNopLogger())
	require.Error(t, s.Start(context.Background()))
}

func TestStart_RegistersEntry(t *testing.T) {
	s := New("*/5 * * * *", &fakeSync{}, fixedScope(records.ScopePets), nil, logging.NewNopLogger())
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	entries := s.cron.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, s.entryID, entries[0].ID)
	assert.False(t, entries[0].Next.IsZero())
}
