// Package scheduler runs synchronization on a cron schedule in the
// background of the CLI.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophrecords/internal/client/services"
	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/logging"
	"github.com/dmitrijs2005/gophrecords/internal/records"
	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	spec     string
	sync     services.SyncService
	scope    func() records.Scope
	onResult func(services.Outcome)
	logger   logging.Logger
	cron     *cron.Cron
	entryID  cron.EntryID
}

// New returns a scheduler that syncs the scope reported by scope each time
// spec fires. spec uses the standard five-field cron syntax or descriptors
// such as "@every 5m". onResult may be nil.
func New(spec string, sync services.SyncService, scope func() records.Scope, onResult func(services.Outcome), logger logging.Logger) *Scheduler {
	return &Scheduler{
		spec:     spec,
		sync:     sync,
		scope:    scope,
		onResult: onResult,
		logger:   logger.With("module", "scheduler"),
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start schedules the job and starts the cron loop. Jobs run with ctx, so
// canceling it aborts a sync in flight.
func (s *Scheduler) Start(ctx context.Context) error {
	id, err := s.cron.AddFunc(s.spec, func() { s.trigger(ctx) })
	if err != nil {
		return fmt.Errorf("invalid auto-sync schedule %q: %w", s.spec, err)
	}
	s.entryID = id
	s.cron.Start()
	s.logger.Info(ctx, "Starting scheduler", "schedule", s.spec)
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) trigger(ctx context.Context) {
	scope := s.scope()
	if s.sync.Running(scope) {
		s.logger.Info(ctx, "Sync already running, skipping scheduled run", "scope", scope)
		return
	}

	out := s.sync.Sync(ctx, scope)
	if errors.Is(out.Err, common.ErrSyncInProgress) {
		// a manual sync won the race after the Running check
		s.logger.Info(ctx, "Sync already running, skipping scheduled run", "scope", scope)
		return
	}
	if out.Success() {
		s.logger.Info(ctx, "Scheduled sync finished", "scope", scope)
	}
	if s.onResult != nil {
		s.onResult(out)
	}
}
