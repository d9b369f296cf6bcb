package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophrecords/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophrecords/internal/client/syncer"
	"github.com/dmitrijs2005/gophrecords/internal/logging"
	"github.com/dmitrijs2005/gophrecords/internal/records"
)

// Syncer is the part of *syncer.Syncer the service drives.
type Syncer interface {
	Run(ctx context.Context, scope records.Scope) (*syncer.Report, error)
	Resync(ctx context.Context, scope records.Scope) (*syncer.Report, error)
	Running(scope records.Scope) bool
}

// Outcome is the result of one sync as shown to the user. Err is nil on
// success; otherwise Phase names the phase that failed, if any started.
type Outcome struct {
	Scope  records.Scope
	Report *syncer.Report
	Phase  syncer.Phase
	Err    error
}

func (o Outcome) Success() bool { return o.Err == nil }

func (o Outcome) String() string {
	if o.Success() {
		return fmt.Sprintf("sync %s ok: pushed %d, pulled %d", o.Scope, o.Report.Pushed(), o.Report.Pulled())
	}
	if o.Phase != "" {
		return fmt.Sprintf("sync %s failed in %s: %v", o.Scope, o.Phase, o.Err)
	}
	return fmt.Sprintf("sync %s failed: %v", o.Scope, o.Err)
}

// LastStatus is what the metadata table remembers about a scope.
type LastStatus struct {
	Success *syncer.Status
	Failure *syncer.Status
}

type SyncService interface {
	Sync(ctx context.Context, scope records.Scope) Outcome
	// Resync runs a full cycle that ignores the pull watermark.
	Resync(ctx context.Context, scope records.Scope) Outcome
	Running(scope records.Scope) bool
	LastStatus(ctx context.Context, scope records.Scope) (LastStatus, error)
}

type syncService struct {
	syncer   Syncer
	metadata metadata.Repository
	timeout  time.Duration
	logger   logging.Logger
}

// NewSyncService bounds every run by timeout; zero means no limit.
func NewSyncService(s Syncer, meta metadata.Repository, timeout time.Duration, logger logging.Logger) SyncService {
	return &syncService{syncer: s, metadata: meta, timeout: timeout, logger: logger}
}

func (s *syncService) Sync(ctx context.Context, scope records.Scope) Outcome {
	return s.run(ctx, scope, s.syncer.Run)
}

func (s *syncService) Resync(ctx context.Context, scope records.Scope) Outcome {
	return s.run(ctx, scope, s.syncer.Resync)
}

func (s *syncService) run(ctx context.Context, scope records.Scope, fn func(context.Context, records.Scope) (*syncer.Report, error)) Outcome {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	report, err := fn(ctx, scope)
	out := Outcome{Scope: scope, Report: report, Err: err}

	var pe *syncer.PhaseError
	if errors.As(err, &pe) {
		out.Phase = pe.Phase
	}
	if err != nil {
		s.logger.Warn(ctx, "sync failed", "scope", scope, "phase", out.Phase, "error", err)
	}
	return out
}

func (s *syncService) Running(scope records.Scope) bool {
	return s.syncer.Running(scope)
}

func (s *syncService) LastStatus(ctx context.Context, scope records.Scope) (LastStatus, error) {
	var ls LastStatus

	kv, err := s.metadata.List(ctx, syncer.StatusPrefix(scope))
	if err != nil {
		return ls, err
	}
	if ls.Success, err = syncer.ParseStatus(kv[syncer.LastSuccessKey(scope)]); err != nil {
		return ls, fmt.Errorf("last success of %s: %w", scope, err)
	}
	if ls.Failure, err = syncer.ParseStatus(kv[syncer.LastErrorKey(scope)]); err != nil {
		return ls, fmt.Errorf("last error of %s: %w", scope, err)
	}
	return ls, nil
}
