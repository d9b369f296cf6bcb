// Package server wires the gophrecords server: document storage, the
// RecordStore gRPC endpoint and the HTTP health probes, with graceful
// shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophrecords/internal/logging"
	"github.com/dmitrijs2005/gophrecords/internal/server/config"
	"github.com/dmitrijs2005/gophrecords/internal/server/httpapi"
	"github.com/dmitrijs2005/gophrecords/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophrecords/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/gophrecords/internal/server/grpc"
)

// runner is a component served until its context ends.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	runners []runner
}

// NewApp opens the storage backend selected by c and builds the servers.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewJSONLogger(slog.LevelInfo)
	}

	repos, err := repomanager.New(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, documents are kept in memory")
	}

	ds := services.NewDocumentService(repos.Documents(), c.QueryPageSize, logger.With("module", "documents"))

	return &App{
		config: c,
		logger: logger,
		repos:  repos,
		runners: []runner{
			gs.NewGRPCServer(c.EndpointAddrGRPC, logger, ds, c.SecretKey),
			httpapi.NewServer(c.EndpointAddrHTTP, httpapi.NewHandler(repos.Ping, logger), logger),
		},
	}, nil
}

// Run serves until ctx is canceled, a termination signal arrives or one of
// the servers fails. The storage backend is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(context.Background(), "closing storage", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	for _, r := range app.runners {
		g.Go(func() error { return r.Run(ctx) })
	}

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
	} else {
		app.logger.Info(ctx, "App stopped")
	}
	return err
}
