// Package main provides the battle server binary: the battle kernel behind a
// gRPC service, with PostgreSQL persistence and an optional Redis result cache.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	a, cleanup, err := initializeApp(ctx, cfg)
	if err != nil {
		log.Fatalf("initializing game server: %v", err)
	}

	a.logger.Info("game server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("grpc_addr", cfg.GameServer.Addr()),
		zap.Bool("cache", cfg.Redis.Enabled()),
	)

	err = a.lifecycle.Run(ctx)
	if err != nil {
		a.logger.Error("server error", zap.Error(err))
	}
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}
