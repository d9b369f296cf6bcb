// Package services holds the use cases behind the CLI: editing subjects and
// events in the local store and running synchronization.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophrecords/internal/client/repositories/events"
	"github.com/dmitrijs2005/gophrecords/internal/client/repositories/subjects"
	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/records"
	"github.com/dmitrijs2005/gophrecords/internal/timex"
	"github.com/google/uuid"
)

// ErrSubjectDeleted is returned when an event is attached to a tombstone.
var ErrSubjectDeleted = errors.New("subject is deleted")

// SubjectInput carries the user-editable fields of a subject.
type SubjectInput struct {
	Name        string
	BirthDate   *int64
	Measurement *float64
	Notes       string
	IconKey     string
	Color       string
}

// EventInput carries the user-editable fields of an event.
type EventInput struct {
	SubjectID string
	Title     string
	Note      string
	DueAt     int64
	Cost      *float64
}

type RecordService interface {
	AddSubject(ctx context.Context, scope records.Scope, in SubjectInput) (*records.Subject, error)
	UpdateSubject(ctx context.Context, scope records.Scope, id string, in SubjectInput) (*records.Subject, error)
	DeleteSubject(ctx context.Context, scope records.Scope, id string) error
	GetSubject(ctx context.Context, scope records.Scope, id string) (*records.Subject, error)
	ListSubjects(ctx context.Context, scope records.Scope) ([]*records.Subject, error)

	AddEvent(ctx context.Context, scope records.Scope, in EventInput) (*records.Event, error)
	UpdateEvent(ctx context.Context, scope records.Scope, id string, in EventInput) (*records.Event, error)
	// RealizeEvent marks the event done now, optionally recording its cost.
	RealizeEvent(ctx context.Context, scope records.Scope, id string, cost *float64) (*records.Event, error)
	DeleteEvent(ctx context.Context, scope records.Scope, id string) error
	ListEvents(ctx context.Context, scope records.Scope, subjectID string) ([]*records.Event, error)
}

type recordService struct {
	subjects subjects.Repository
	events   events.Repository
	owner    string
	clock    timex.Clock
	newID    func() string
}

// NewRecordService returns a RecordService stamping new records with owner.
// A nil clock selects timex.NowMillis.
func NewRecordService(subjectRepo subjects.Repository, eventRepo events.Repository, owner string, clock timex.Clock) RecordService {
	if clock == nil {
		clock = timex.NowMillis
	}
	return &recordService{subjects: subjectRepo, events: eventRepo, owner: owner, clock: clock, newID: uuid.NewString}
}

func (s *recordService) meta(scope records.Scope) records.Meta {
	return records.Meta{ID: s.newID(), Scope: scope, OwnerID: s.owner, UpdatedAt: s.clock(), Dirty: true}
}

func validateSubject(in SubjectInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrInvalidDocument)
	}
	return nil
}

func validateEvent(in EventInput) error {
	if in.SubjectID == "" {
		return fmt.Errorf("%w: subject is required", common.ErrInvalidDocument)
	}
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrInvalidDocument)
	}
	return nil
}

func (s *recordService) AddSubject(ctx context.Context, scope records.Scope, in SubjectInput) (*records.Subject, error) {
	if _, err := records.ParseScope(string(scope)); err != nil {
		return nil, err
	}
	if err := validateSubject(in); err != nil {
		return nil, err
	}

	subj := &records.Subject{Meta: s.meta(scope)}
	applySubject(subj, in)
	if err := s.subjects.Create(ctx, subj); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return subj, nil
}

func (s *recordService) UpdateSubject(ctx context.Context, scope records.Scope, id string, in SubjectInput) (*records.Subject, error) {
	if err := validateSubject(in); err != nil {
		return nil, err
	}
	subj, err := s.liveSubject(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	applySubject(subj, in)
	subj.UpdatedAt = s.clock()
	if err := s.subjects.Update(ctx, subj); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return subj, nil
}

func applySubject(subj *records.Subject, in SubjectInput) {
	subj.Name = strings.TrimSpace(in.Name)
	subj.BirthDate = in.BirthDate
	subj.Measurement = in.Measurement
	subj.Notes = in.Notes
	subj.IconKey = in.IconKey
	subj.Color = in.Color
}

// DeleteSubject tombstones the subject. Its events are left alone; they
// still reference the id and are shown as orphans.
func (s *recordService) DeleteSubject(ctx context.Context, scope records.Scope, id string) error {
	if _, err := s.subjects.SoftDelete(ctx, scope, id, s.clock()); err != nil {
		return fmt.Errorf("delete subject %s: %w", id, err)
	}
	return nil
}

func (s *recordService) GetSubject(ctx context.Context, scope records.Scope, id string) (*records.Subject, error) {
	return s.subjects.GetByID(ctx, scope, id)
}

func (s *recordService) liveSubject(ctx context.Context, scope records.Scope, id string) (*records.Subject, error) {
	subj, err := s.subjects.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if subj.Deleted {
		return nil, fmt.Errorf("%w: %s", ErrSubjectDeleted, id)
	}
	return subj, nil
}

func (s *recordService) ListSubjects(ctx context.Context, scope records.Scope) ([]*records.Subject, error) {
	return s.subjects.List(ctx, scope, false)
}

func (s *recordService) AddEvent(ctx context.Context, scope records.Scope, in EventInput) (*records.Event, error) {
	if _, err := records.ParseScope(string(scope)); err != nil {
		return nil, err
	}
	if err := validateEvent(in); err != nil {
		return nil, err
	}
	if _, err := s.liveSubject(ctx, scope, in.SubjectID); err != nil {
		return nil, err
	}

	ev := &records.Event{Meta: s.meta(scope)}
	applyEvent(ev, in)
	if err := s.events.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return ev, nil
}

func (s *recordService) UpdateEvent(ctx context.Context, scope records.Scope, id string, in EventInput) (*records.Event, error) {
	if err := validateEvent(in); err != nil {
		return nil, err
	}
	ev, err := s.liveEvent(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	applyEvent(ev, in)
	ev.UpdatedAt = s.clock()
	if err := s.events.Update(ctx, ev); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return ev, nil
}

func applyEvent(ev *records.Event, in EventInput) {
	ev.SubjectID = in.SubjectID
	ev.Title = strings.TrimSpace(in.Title)
	ev.Note = in.Note
	ev.DueAt = in.DueAt
	ev.Cost = in.Cost
}

func (s *recordService) RealizeEvent(ctx context.Context, scope records.Scope, id string, cost *float64) (*records.Event, error) {
	ev, err := s.liveEvent(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	ev.Realized = true
	ev.RealizedAt = &now
	if cost != nil {
		ev.Cost = cost
	}
	ev.UpdatedAt = now
	if err := s.events.Update(ctx, ev); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return ev, nil
}

func (s *recordService) liveEvent(ctx context.Context, scope records.Scope, id string) (*records.Event, error) {
	ev, err := s.events.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if ev.Deleted {
		return nil, fmt.Errorf("event %s: %w", id, common.ErrorNotFound)
	}
	return ev, nil
}

func (s *recordService) DeleteEvent(ctx context.Context, scope records.Scope, id string) error {
	if _, err := s.events.SoftDelete(ctx, scope, id, s.clock()); err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	return nil
}

func (s *recordService) ListEvents(ctx context.Context, scope records.Scope, subjectID string) ([]*records.Event, error) {
	return s.events.List(ctx, scope, subjectID, false)
}
