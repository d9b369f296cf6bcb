package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophrecords/internal/client/config"
	"github.com/dmitrijs2005/gophrecords/internal/client/remote"
	"github.com/dmitrijs2005/gophrecords/internal/client/scheduler"
	"github.com/dmitrijs2005/gophrecords/internal/client/services"
	"github.com/dmitrijs2005/gophrecords/internal/logging"
	"github.com/dmitrijs2005/gophrecords/internal/records"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// tokenSetter is implemented by remotes that authenticate with a token.
type tokenSetter interface {
	SetToken(token string)
}

type App struct {
	config  *config.Config
	records services.RecordService
	sync    services.SyncService
	remote  remote.Store
	logger  logging.Logger

	mu    sync.RWMutex
	scope records.Scope
	mode  Mode

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config, rs services.RecordService, ss services.SyncService, store remote.Store, logger logging.Logger) *App {
	return &App{
		config:  c,
		records: rs,
		sync:    ss,
		remote:  store,
		logger:  logger.With("module", "cli"),
		scope:   c.Scope,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

func (a *App) Scope() records.Scope {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.scope
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "Switched mode", "mode", mode)
	}
}

// Run starts the online watcher and the auto-sync schedule, then blocks in
// the REPL until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	if a.config.AutoSync != "" {
		s := scheduler.New(a.config.AutoSync, a.sync, a.Scope, a.reportOutcome, a.logger)
		if err := s.Start(ctx); err != nil {
			return err
		}
		defer s.Stop()
	}

	printlnFn("Welcome to gophrecords (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// StartOnlineStatusWatcher pings the remote store every interval until ctx
// ends and flips the mode accordingly.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.remote.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
