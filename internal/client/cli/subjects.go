package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophrecords/internal/client/services"
	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/records"
)

var (
	errUsage     = errors.New("usage")
	errAmbiguous = errors.New("ambiguous id")
)

func usage(s string) error {
	return fmt.Errorf("%w: %s", errUsage, s)
}

func (a *App) SetScope(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("scope <pets|cars|family|house>")
	}
	scope, err := records.ParseScope(args[0])
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.scope = scope
	a.mu.Unlock()
	return nil
}

func (a *App) ListSubjects(ctx context.Context, args []string) error {
	list, err := a.records.ListSubjects(ctx, a.Scope())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No subjects.")
		return nil
	}
	for _, s := range list {
		fmt.Fprintf(a.out, "%s  %s%s\n", shortID(s.ID), s.Name, subjectDetails(s))
	}
	return nil
}

func subjectDetails(s *records.Subject) string {
	var parts []string
	if s.BirthDate != nil {
		parts = append(parts, "born "+FormatDate(*s.BirthDate))
	}
	if s.Measurement != nil {
		parts = append(parts, fmt.Sprintf("%g", *s.Measurement))
	}
	if s.Notes != "" {
		parts = append(parts, s.Notes)
	}
	if s.Dirty {
		parts = append(parts, "unsynced")
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func (a *App) readSubjectInput(current *records.Subject) (services.SubjectInput, error) {
	var in services.SubjectInput
	if current != nil {
		in = services.SubjectInput{
			Name: current.Name, BirthDate: current.BirthDate, Measurement: current.Measurement,
			Notes: current.Notes, IconKey: current.IconKey, Color: current.Color,
		}
	}

	name, err := GetSimpleText(a.reader, "Name"+hint(in.Name), a.out)
	if err != nil {
		return in, err
	}
	if name != "" {
		in.Name = name
	}

	born, err := GetSimpleText(a.reader, "Birth date, YYYY-MM-DD (empty to keep/skip)", a.out)
	if err != nil {
		return in, err
	}
	if d, err := ParseDate(born); err != nil {
		return in, err
	} else if d != nil {
		in.BirthDate = d
	}

	measurement, err := GetSimpleText(a.reader, "Measurement (empty to keep/skip)", a.out)
	if err != nil {
		return in, err
	}
	if m, err := ParseOptionalFloat(measurement); err != nil {
		return in, err
	} else if m != nil {
		in.Measurement = m
	}

	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Notes", &in.Notes},
		{"Icon", &in.IconKey},
		{"Color", &in.Color},
	} {
		v, err := GetSimpleText(a.reader, f.prompt+hint(*f.dst), a.out)
		if err != nil {
			return in, err
		}
		if v != "" {
			*f.dst = v
		}
	}
	return in, nil
}

func hint(current string) string {
	if current == "" {
		return ""
	}
	return " [" + current + "]"
}

func (a *App) AddSubject(ctx context.Context, args []string) error {
	in, err := a.readSubjectInput(nil)
	if err != nil {
		return err
	}
	s, err := a.records.AddSubject(ctx, a.Scope(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s %s\n", shortID(s.ID), s.Name)
	return nil
}

func (a *App) EditSubject(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("editsubject <id>")
	}
	s, err := a.resolveSubject(ctx, args[0])
	if err != nil {
		return err
	}
	in, err := a.readSubjectInput(s)
	if err != nil {
		return err
	}
	if _, err := a.records.UpdateSubject(ctx, s.Scope, s.ID, in); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s\n", shortID(s.ID))
	return nil
}

func (a *App) DeleteSubject(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delsubject <id>")
	}
	s, err := a.resolveSubject(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.records.DeleteSubject(ctx, s.Scope, s.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s %s\n", shortID(s.ID), s.Name)
	return nil
}

// resolveSubject finds a live subject of the current scope by id or unique
// id prefix.
func (a *App) resolveSubject(ctx context.Context, ref string) (*records.Subject, error) {
	list, err := a.records.ListSubjects(ctx, a.Scope())
	if err != nil {
		return nil, err
	}
	return resolve(list, ref)
}

func resolve[R records.Record](list []R, ref string) (R, error) {
	var (
		zero    R
		matches []R
	)
	for _, r := range list {
		id := r.Metadata().ID
		if id == ref {
			return r, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s %q: %w", zero.Collection(), ref, common.ErrorNotFound)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("%w: %q matches %d records", errAmbiguous, ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
