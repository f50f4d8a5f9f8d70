//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/gameserver"
	"github.com/cory-johannsen/skirmish/internal/storage/postgres"
)

var storageSet = wire.NewSet(
	providePool,
	provideDB,
	postgres.NewBattleRepository,
	postgres.NewBattlefieldRepository,
	wire.Bind(new(gameserver.BattleStore), new(*postgres.BattleRepository)),
	wire.Bind(new(gameserver.BattlefieldStore), new(*postgres.BattlefieldRepository)),
	provideCache,
	provideResultCache,
)

func initializeApp(ctx context.Context, cfg config.Config) (*app, func(), error) {
	wire.Build(
		provideLogger,
		storageSet,
		provideEngineConfig,
		provideSourceFactory,
		gameserver.NewBattleService,
		provideApp,
	)
	return nil, nil, nil
}
