package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/gophrecords/internal/logging"
	"github.com/dmitrijs2005/gophrecords/internal/server"
	"github.com/dmitrijs2005/gophrecords/internal/server/config"
)

func main() {
	ctx := context.Background()
	logger := logging.NewJSONLogger(slog.LevelInfo)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error(ctx, "config error", "error", err)
		os.Exit(2)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup error", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
