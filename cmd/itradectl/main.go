package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/itradeops/itradectl/internal/cli"
	"github.com/itradeops/itradectl/internal/config"
	"github.com/itradeops/itradectl/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		log.Error(context.Background(), "startup failed", "err", err)
		os.Exit(1)
	}

	app.Run(context.Background())
}
