package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophrecords/internal/client/remote"
	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/logging"
	"github.com/dmitrijs2005/gophrecords/internal/records"
	"github.com/dmitrijs2005/gophrecords/internal/timex"
)

// DefaultConcurrency caps parallel uploads within a push phase.
const DefaultConcurrency = 8

// LocalCollection is what the orchestrator needs from one local table.
type LocalCollection interface {
	Collection() records.Collection
	ListDirty(ctx context.Context, scope records.Scope) ([]records.Record, error)
	MarkClean(ctx context.Context, versions []records.Version) error
	Upsert(ctx context.Context, recs ...records.Record) error
	MaxUpdatedAt(ctx context.Context, scope records.Scope) (int64, error)
}

type Option func(*Syncer)

func WithLogger(l logging.Logger) Option {
	return func(s *Syncer) { s.logger = l }
}

// WithConcurrency sets the upload limit per push phase. n < 1 is ignored.
func WithConcurrency(n int) Option {
	return func(s *Syncer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithClock(c timex.Clock) Option {
	return func(s *Syncer) { s.clock = c }
}

// WithRecorder stores the outcome of every run under LastSuccessKey or
// LastErrorKey.
func WithRecorder(r Recorder) Option {
	return func(s *Syncer) { s.recorder = r }
}

type Syncer struct {
	subjects LocalCollection
	events   LocalCollection
	remote   remote.Store

	logger      logging.Logger
	concurrency int
	clock       timex.Clock
	recorder    Recorder

	mu      sync.Mutex
	running map[records.Scope]struct{}
}

func New(subjects, events LocalCollection, rs remote.Store, opts ...Option) *Syncer {
	s := &Syncer{
		subjects:    subjects,
		events:      events,
		remote:      rs,
		logger:      logging.NewNopLogger(),
		concurrency: DefaultConcurrency,
		clock:       timex.NowMillis,
		running:     make(map[records.Scope]struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("module", "syncer")
	return s
}

// Run performs one sync cycle for scope. On failure the returned error is a
// *PhaseError and the report covers the phases that ran.
func (s *Syncer) Run(ctx context.Context, scope records.Scope) (*Report, error) {
	return s.run(ctx, scope, false)
}

// Resync is Run with the pull watermark forced to zero, so every remote
// document of the scope is fetched again. Local rows newer than the remote
// copy are kept.
func (s *Syncer) Resync(ctx context.Context, scope records.Scope) (*Report, error) {
	return s.run(ctx, scope, true)
}

// Go runs Run in a new goroutine. The channel receives exactly one Result.
func (s *Syncer) Go(ctx context.Context, scope records.Scope) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		report, err := s.Run(ctx, scope)
		ch <- Result{Report: report, Err: err}
	}()
	return ch
}

// Running reports whether scope is syncing right now.
func (s *Syncer) Running(scope records.Scope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.running[scope]
	return ok
}

func (s *Syncer) acquire(scope records.Scope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.running[scope]; busy {
		return false
	}
	s.running[scope] = struct{}{}
	return true
}

func (s *Syncer) release(scope records.Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, scope)
}

func (s *Syncer) now() time.Time {
	return time.UnixMilli(s.clock())
}

func (s *Syncer) run(ctx context.Context, scope records.Scope, full bool) (*Report, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidScope, scope)
	}
	if !s.acquire(scope) {
		return nil, common.ErrSyncInProgress
	}
	defer s.release(scope)

	log := s.logger.With("scope", scope)
	report := &Report{Scope: scope, Full: full, StartedAt: s.now()}
	log.Info(ctx, "sync started", "full", full)

	steps := []struct {
		phase Phase
		run   func(context.Context, *PhaseReport) error
	}{
		{PhasePushSubjects, func(ctx context.Context, pr *PhaseReport) error { return s.push(ctx, scope, s.subjects, pr) }},
		{PhasePushEvents, func(ctx context.Context, pr *PhaseReport) error { return s.push(ctx, scope, s.events, pr) }},
		{PhasePullSubjects, func(ctx context.Context, pr *PhaseReport) error { return s.pull(ctx, scope, s.subjects, full, pr) }},
		{PhasePullEvents, func(ctx context.Context, pr *PhaseReport) error { return s.pull(ctx, scope, s.events, full, pr) }},
	}

	for _, step := range steps {
		plog := log.With("phase", step.phase)
		pr := PhaseReport{Phase: step.phase}
		started := time.Now()

		err := ctx.Err()
		if err == nil {
			err = step.run(ctx, &pr)
		}
		pr.Duration = time.Since(started)
		report.Phases = append(report.Phases, pr)

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, common.ErrTimeout) {
				err = fmt.Errorf("%w: %w", common.ErrTimeout, err)
			}
			perr := &PhaseError{Phase: step.phase, Err: err}
			report.FinishedAt = s.now()
			plog.Error(ctx, "sync failed", "error", err)
			s.record(ctx, LastErrorKey(scope), Status{At: report.FinishedAt, Phase: step.phase, Error: err.Error(),
				Pushed: report.Pushed(), Pulled: report.Pulled()})
			return report, perr
		}
		plog.Debug(ctx, "phase finished", "dirty", pr.Dirty, "uploaded", pr.Uploaded, "pulled", pr.Pulled,
			"applied", pr.Applied, "duration", pr.Duration)
	}

	report.FinishedAt = s.now()
	log.Info(ctx, "sync finished", "pushed", report.Pushed(), "pulled", report.Pulled())
	s.record(ctx, LastSuccessKey(scope), Status{At: report.FinishedAt, Pushed: report.Pushed(), Pulled: report.Pulled()})
	return report, nil
}

// record never fails the run; bookkeeping is best effort.
func (s *Syncer) record(ctx context.Context, key string, st Status) {
	if s.recorder == nil {
		return
	}
	b, err := json.Marshal(st)
	if err == nil {
		err = s.recorder.Set(context.WithoutCancel(ctx), key, b)
	}
	if err != nil {
		s.logger.Warn(ctx, "failed to record sync status", "key", key, "error", err)
	}
}
