package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophrecords/internal/client/services"
	"github.com/dmitrijs2005/gophrecords/internal/records"
)

func (a *App) ListEvents(ctx context.Context, args []string) error {
	subjectID := ""
	if len(args) > 0 {
		s, err := a.resolveSubject(ctx, args[0])
		if err != nil {
			return err
		}
		subjectID = s.ID
	}

	list, err := a.records.ListEvents(ctx, a.Scope(), subjectID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No events.")
		return nil
	}

	names := a.subjectNames(ctx)
	for _, e := range list {
		mark := " "
		if e.Realized {
			mark = "x"
		}
		subject, ok := names[e.SubjectID]
		if !ok {
			subject = "(deleted " + shortID(e.SubjectID) + ")"
		}
		fmt.Fprintf(a.out, "%s [%s] %s  %s  %s%s\n", shortID(e.ID), mark, FormatDate(e.DueAt), subject, e.Title, eventDetails(e))
	}
	return nil
}

func (a *App) subjectNames(ctx context.Context) map[string]string {
	names := map[string]string{}
	list, err := a.records.ListSubjects(ctx, a.Scope())
	if err != nil {
		a.logger.Error(ctx, "list subjects", "error", err)
		return names
	}
	for _, s := range list {
		names[s.ID] = s.Name
	}
	return names
}

func eventDetails(e *records.Event) string {
	var parts []string
	if e.Cost != nil {
		parts = append(parts, fmt.Sprintf("cost %g", *e.Cost))
	}
	if e.RealizedAt != nil {
		parts = append(parts, "done "+FormatDate(*e.RealizedAt))
	}
	if e.Note != "" {
		parts = append(parts, e.Note)
	}
	if e.Dirty {
		parts = append(parts, "unsynced")
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func (a *App) AddEvent(ctx context.Context, args []string) error {
	ref := ""
	if len(args) > 0 {
		ref = args[0]
	} else {
		var err error
		if ref, err = GetSimpleText(a.reader, "Subject id", a.out); err != nil {
			return err
		}
	}
	s, err := a.resolveSubject(ctx, ref)
	if err != nil {
		return err
	}

	in := services.EventInput{SubjectID: s.ID}
	if in.Title, err = GetSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Note, err = GetSimpleText(a.reader, "Note", a.out); err != nil {
		return err
	}

	due, err := GetSimpleText(a.reader, "Due, YYYY-MM-DD [HH:MM]", a.out)
	if err != nil {
		return err
	}
	d, err := ParseDate(due)
	if err != nil {
		return err
	}
	if d == nil {
		return usage("due date is required")
	}
	in.DueAt = *d

	cost, err := GetSimpleText(a.reader, "Cost (empty to skip)", a.out)
	if err != nil {
		return err
	}
	if in.Cost, err = ParseOptionalFloat(cost); err != nil {
		return err
	}

	e, err := a.records.AddEvent(ctx, a.Scope(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s %s for %s\n", shortID(e.ID), e.Title, s.Name)
	return nil
}

func (a *App) RealizeEvent(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("done <id> [cost]")
	}
	e, err := a.resolveEvent(ctx, args[0])
	if err != nil {
		return err
	}
	var cost *float64
	if len(args) == 2 {
		if cost, err = ParseOptionalFloat(args[1]); err != nil {
			return err
		}
	}
	if _, err := a.records.RealizeEvent(ctx, e.Scope, e.ID, cost); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Done %s %s\n", shortID(e.ID), e.Title)
	return nil
}

func (a *App) DeleteEvent(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delevent <id>")
	}
	e, err := a.resolveEvent(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.records.DeleteEvent(ctx, e.Scope, e.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s %s\n", shortID(e.ID), e.Title)
	return nil
}

func (a *App) resolveEvent(ctx context.Context, ref string) (*records.Event, error) {
	list, err := a.records.ListEvents(ctx, a.Scope(), "")
	if err != nil {
		return nil, err
	}
	return resolve(list, ref)
}
