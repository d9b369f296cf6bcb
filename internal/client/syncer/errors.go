package syncer

import (
	"fmt"

	"github.com/dmitrijs2005/gophrecords/internal/records"
	"go.uber.org/multierr"
)

// PhaseError is returned by Run when a phase fails.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("sync phase %s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// RecordError is the failure of a single record inside a phase.
type RecordError struct {
	Collection records.Collection
	ID         string
	Err        error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Collection, e.ID, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// BatchError reports the records of a push phase that were not uploaded.
// Err combines one *RecordError per failure.
type BatchError struct {
	Collection records.Collection
	Total      int
	Err        error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d %s failed to upload: %v", len(e.Records()), e.Total, e.Collection, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Records returns the individual record failures.
func (e *BatchError) Records() []*RecordError {
	errs := multierr.Errors(e.Err)
	out := make([]*RecordError, 0, len(errs))
	for _, err := range errs {
		if re, ok := err.(*RecordError); ok {
			out = append(out, re)
		}
	}
	return out
}

// LocalError marks a failure of the local store, as opposed to the remote.
type LocalError struct {
	Op  string
	Err error
}

func (e *LocalError) Error() string {
	return fmt.Sprintf("local store %s: %v", e.Op, e.Err)
}

func (e *LocalError) Unwrap() error { return e.Err }
