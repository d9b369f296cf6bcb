package syncer

import (
	"time"

	"github.com/dmitrijs2005/gophrecords/internal/records"
)

type Phase string

const (
	PhasePushSubjects Phase = "push_subjects"
	PhasePushEvents   Phase = "push_events"
	PhasePullSubjects Phase = "pull_subjects"
	PhasePullEvents   Phase = "pull_events"
)

// Phases lists the phases in execution order.
var Phases = []Phase{PhasePushSubjects, PhasePushEvents, PhasePullSubjects, PhasePullEvents}

// PhaseReport counts what one phase did. Push phases fill Dirty, Uploaded,
// Failed and Cleaned; pull phases fill Watermark, Pulled and Applied.
type PhaseReport struct {
	Phase    Phase
	Dirty    int
	Uploaded int
	Failed   int
	Cleaned  int

	Watermark int64
	Pulled    int
	Applied   int

	Duration time.Duration
}

// Report describes one run. Phases holds the phases that started, the
// failed one included.
type Report struct {
	Scope      records.Scope
	Full       bool
	StartedAt  time.Time
	FinishedAt time.Time
	Phases     []PhaseReport
}

// Phase returns the report of p, or nil when p did not run.
func (r *Report) Phase(p Phase) *PhaseReport {
	for i := range r.Phases {
		if r.Phases[i].Phase == p {
			return &r.Phases[i]
		}
	}
	return nil
}

// Pushed sums uploaded records over both push phases.
func (r *Report) Pushed() int {
	n := 0
	for _, p := range r.Phases {
		n += p.Uploaded
	}
	return n
}

// Pulled sums applied records over both pull phases.
func (r *Report) Pulled() int {
	n := 0
	for _, p := range r.Phases {
		n += p.Applied
	}
	return n
}

// Result is delivered by Go.
type Result struct {
	Report *Report
	Err    error
}
