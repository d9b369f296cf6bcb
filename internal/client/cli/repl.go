package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. The real App
// satisfies it; tests can provide a lightweight stub. args are the words
// following the command.
type execIface interface {
	SetScope(ctx context.Context, args []string) error
	ListSubjects(ctx context.Context, args []string) error
	AddSubject(ctx context.Context, args []string) error
	EditSubject(ctx context.Context, args []string) error
	DeleteSubject(ctx context.Context, args []string) error
	ListEvents(ctx context.Context, args []string) error
	AddEvent(ctx context.Context, args []string) error
	RealizeEvent(ctx context.Context, args []string) error
	DeleteEvent(ctx context.Context, args []string) error
	Sync(ctx context.Context, args []string) error
	Resync(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Token(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  scope <pets|cars|family|house>   switch scope
  subjects                         list subjects
  addsubject                       add a subject
  editsubject <id>                 edit a subject
  delsubject <id>                  delete a subject
  events [subject]                 list events, optionally of one subject
  addevent [subject]               add an event
  done <id> [cost]                 mark an event realized
  delevent <id>                    delete an event
  sync                             synchronize the current scope
  resync                           synchronize ignoring the pull watermark
  status                           show mode and last sync results
  token                            enter a new access token
  exit | quit                      leave the program`

// runREPL reads commands from reader until EOF, "exit" or "quit", or until
// ctx ends. The first word selects the command. Handler errors are printed
// and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("gr %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "scope":
			cmdErr = a.SetScope(ctx, args)
		case "subjects", "ls":
			cmdErr = a.ListSubjects(ctx, args)
		case "addsubject":
			cmdErr = a.AddSubject(ctx, args)
		case "editsubject":
			cmdErr = a.EditSubject(ctx, args)
		case "delsubject":
			cmdErr = a.DeleteSubject(ctx, args)
		case "events":
			cmdErr = a.ListEvents(ctx, args)
		case "addevent":
			cmdErr = a.AddEvent(ctx, args)
		case "done":
			cmdErr = a.RealizeEvent(ctx, args)
		case "delevent":
			cmdErr = a.DeleteEvent(ctx, args)
		case "sync":
			cmdErr = a.Sync(ctx, args)
		case "resync":
			cmdErr = a.Resync(ctx, args)
		case "status":
			cmdErr = a.Status(ctx, args)
		case "token":
			cmdErr = a.Token(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}

func (a *App) getStatus() string {
	s := string(a.Scope())
	if m := a.Mode(); m != "" {
		s += " " + string(m)
	}
	return fmt.Sprintf("(%s)", s)
}
