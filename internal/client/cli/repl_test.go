package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	args  [][]string
	fail  error
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.fail
}

func (f *fakeExec) SetScope(_ context.Context, a []string) error     { return f.rec("scope", a) }
func (f *fakeExec) ListSubjects(_ context.Context, a []string) error { return f.rec("subjects", a) }
func (f *fakeExec) AddSubject(_ context.Context, a []string) error   { return f.rec("addsubject", a) }
func (f *fakeExec) EditSubject(_ context.Context, a []string) error  { return f.rec("editsubject", a) }
func (f *fakeExec) DeleteSubject(_ context.Context, a []string) error {
	return f.rec("delsubject", a)
}
func (f *fakeExec) ListEvents(_ context.Context, a []string) error   { return f.rec("events", a) }
func (f *fakeExec) AddEvent(_ context.Context, a []string) error     { return f.rec("addevent", a) }
func (f *fakeExec) RealizeEvent(_ context.Context, a []string) error { return f.rec("done", a) }
func (f *fakeExec) DeleteEvent(_ context.Context, a []string) error  { return f.rec("delevent", a) }
func (f *fakeExec) Sync(_ context.Context, a []string) error         { return f.rec("sync", a) }
func (f *fakeExec) Resync(_ context.Context, a []string) error       { return f.rec("resync", a) }
func (f *fakeExec) Status(_ context.Context, a []string) error       { return f.rec("status", a) }
func (f *fakeExec) Token(_ context.Context, a []string) error        { return f.rec("token", a) }

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			if err, ok := v.(error); ok {
				parts[i] = err.Error()
				continue
			}
			if s, ok := v.(string); ok {
				parts[i] = s
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrints(t)

	input := strings.Join([]string{
		"help",
		"scope cars",
		"subjects",
		"",
		"addsubject",
		"editsubject ab12",
		"delsubject ab12",
		"events ab",
		"addevent",
		"done e1 12.5",
		"delevent e1",
		"sync",
		"resync",
		"status",
		"token",
		"exit",
		"subjects",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"scope", "subjects", "addsubject", "editsubject", "delsubject", "events",
		"addevent", "done", "delevent", "sync", "resync", "status", "token",
	}, exec.calls)
	assert.Equal(t, []string{"cars"}, exec.args[0])
	assert.Equal(t, []string{"e1", "12.5"}, exec.args[7])
}

func TestRunREPL_UnknownCommandAndErrors(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{fail: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("foobar\nsync\nquit\n")))

	assert.Equal(t, []string{"sync"}, exec.calls)
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "Error: boom")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("subjects\nsync")))

	assert.Equal(t, []string{"subjects", "sync"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrints(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("sync\n")))

	assert.Empty(t, exec.calls)
}
