package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophrecords/internal/client/services"
	"github.com/dmitrijs2005/gophrecords/internal/client/syncer"
)

func (a *App) Sync(ctx context.Context, args []string) error {
	a.reportOutcome(a.sync.Sync(ctx, a.Scope()))
	return nil
}

func (a *App) Resync(ctx context.Context, args []string) error {
	a.reportOutcome(a.sync.Resync(ctx, a.Scope()))
	return nil
}

// reportOutcome prints the result of a sync together with every record
// that failed to upload.
func (a *App) reportOutcome(o services.Outcome) {
	fmt.Fprintln(a.out, o.String())
	if o.Success() {
		a.setMode(ModeOnline)
		return
	}

	var be *syncer.BatchError
	if errors.As(o.Err, &be) {
		for _, re := range be.Records() {
			fmt.Fprintf(a.out, "  %s %s: %v\n", re.Collection, shortID(re.ID), re.Err)
		}
	}
}

func (a *App) Status(ctx context.Context, args []string) error {
	scope := a.Scope()
	fmt.Fprintf(a.out, "Scope: %s\n", scope)
	if m := a.Mode(); m != "" {
		fmt.Fprintf(a.out, "Mode: %s\n", m)
	}
	if a.sync.Running(scope) {
		fmt.Fprintln(a.out, "Sync: running")
	}

	st, err := a.sync.LastStatus(ctx, scope)
	if err != nil {
		return err
	}
	if st.Success == nil {
		fmt.Fprintln(a.out, "Last success: never")
	} else {
		fmt.Fprintf(a.out, "Last success: %s (pushed %d, pulled %d)\n",
			st.Success.At.Local().Format("2006-01-02 15:04:05"), st.Success.Pushed, st.Success.Pulled)
	}
	if st.Failure != nil {
		fmt.Fprintf(a.out, "Last failure: %s in %s: %s\n",
			st.Failure.At.Local().Format("2006-01-02 15:04:05"), st.Failure.Phase, st.Failure.Error)
	}
	return nil
}

// Token replaces the access token of the remote store for this session.
func (a *App) Token(ctx context.Context, args []string) error {
	ts, ok := a.remote.(tokenSetter)
	if !ok {
		return errors.New("remote store does not use tokens")
	}
	token, err := GetSecret(a.out, "Access token")
	if err != nil {
		return err
	}
	if token == "" {
		return usage("token must not be empty")
	}
	ts.SetToken(token)
	a.checkOnline(ctx)
	fmt.Fprintln(a.out, "Token updated.")
	return nil
}
