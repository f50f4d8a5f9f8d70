package main

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/gameserver"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/server"
	"github.com/cory-johannsen/skirmish/internal/storage/cache"
	"github.com/cory-johannsen/skirmish/internal/storage/postgres"
)

const healthInterval = 30 * time.Second

// app is the assembled server process.
type app struct {
	logger    *zap.Logger
	lifecycle *server.Lifecycle
}

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging, "gameserver")
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func providePool(ctx context.Context, cfg config.Config, logger *zap.Logger) (*postgres.Pool, func(), error) {
	start := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.CheckSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(start)),
	)
	return pool, pool.Close, nil
}

func provideDB(pool *postgres.Pool) *pgxpool.Pool { return pool.DB() }

// provideCache returns a nil cache when redis.addr is empty.
func provideCache(ctx context.Context, cfg config.Config, logger *zap.Logger) (*cache.ResultCache, func(), error) {
	if !cfg.Redis.Enabled() {
		logger.Info("result cache disabled")
		return nil, func() {}, nil
	}
	rc, err := cache.NewResultCache(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	logger.Info("result cache connected", zap.String("addr", cfg.Redis.Addr))
	return rc, func() { _ = rc.Close() }, nil
}

// provideResultCache keeps a disabled cache a nil interface rather than a typed nil.
func provideResultCache(rc *cache.ResultCache) gameserver.ResultCache {
	if rc == nil {
		return nil
	}
	return rc
}

func provideEngineConfig(cfg config.Config) config.EngineConfig { return cfg.Engine }

func provideSourceFactory() gameserver.SourceFactory { return gameserver.DefaultSourceFactory }

func provideApp(cfg config.Config, logger *zap.Logger, svc *gameserver.BattleService, pool *postgres.Pool, rc *cache.ResultCache) *app {
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(gameserver.UnaryLoggingInterceptor(logger)))
	gameserver.RegisterBattleServiceServer(grpcServer, svc)

	lc := server.NewLifecycle(logger)
	lc.Add("grpc", &server.FuncService{
		StartFn: func(context.Context) error {
			lis, err := net.Listen("tcp", cfg.GameServer.Addr())
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.GameServer.Addr(), err)
			}
			logger.Info("gRPC server listening",
				zap.String("addr", lis.Addr().String()),
			)
			return grpcServer.Serve(lis)
		},
		StopFn: grpcServer.GracefulStop,
	})
	lc.Add("postgres", &server.HealthCheck{
		Name:     "postgres",
		Interval: healthInterval,
		Timeout:  5 * time.Second,
		Check:    func(ctx context.Context) error { return pool.Health(ctx, 5*time.Second) },
		Logger:   logger,
	})
	if rc != nil {
		lc.Add("redis", &server.HealthCheck{
			Name:     "redis",
			Interval: healthInterval,
			Timeout:  5 * time.Second,
			Check:    rc.Ping,
			Logger:   logger,
		})
	}
	return &app{logger: logger, lifecycle: lc}
}
