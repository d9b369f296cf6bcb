package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophrecords/internal/client/cli"
	"github.com/dmitrijs2005/gophrecords/internal/client/config"
	"github.com/dmitrijs2005/gophrecords/internal/client/remote"
	"github.com/dmitrijs2005/gophrecords/internal/client/services"
	"github.com/dmitrijs2005/gophrecords/internal/client/store"
	"github.com/dmitrijs2005/gophrecords/internal/client/syncer"
	"github.com/dmitrijs2005/gophrecords/internal/logging"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	logger, closer := logging.NewFileLogger(logging.FileOptions{
		Path:       filepath.Join(cfg.DataDir, "client.log"),
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		Level:      slog.LevelInfo,
	})
	defer closer.Close()

	rs, err := newRemote(ctx, cfg)
	if err != nil {
		return err
	}
	defer rs.Close()

	s := syncer.New(st.SyncSubjects(), st.SyncEvents(), rs,
		syncer.WithLogger(logger),
		syncer.WithConcurrency(cfg.PushConcurrency),
		syncer.WithRecorder(st.Metadata()),
	)

	app := cli.NewApp(cfg,
		services.NewRecordService(st.Subjects(), st.Events(), cfg.Owner, nil),
		services.NewSyncService(s, st.Metadata(), cfg.SyncTimeout, logger),
		rs, logger)

	return app.Run(ctx)
}

func newRemote(ctx context.Context, cfg *config.Config) (remote.Store, error) {
	switch cfg.Remote {
	case config.RemoteS3:
		return remote.NewS3(ctx, remote.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Owner:     cfg.Owner,
			Workspace: cfg.Workspace,
		})
	case config.RemoteMemory:
		return remote.NewMemory(), nil
	default:
		return remote.NewGRPC(cfg.ServerEndpointAddr, cfg.Workspace, cfg.AccessToken)
	}
}
