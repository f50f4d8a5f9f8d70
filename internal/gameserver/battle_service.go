// Package gameserver exposes the battle kernel over gRPC.
package gameserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cory-johannsen/skirmish/internal/api"
	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/battlefield"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grid"
	"github.com/cory-johannsen/skirmish/internal/storage/cache"
	"github.com/cory-johannsen/skirmish/internal/storage/postgres"
)

// BattleStore persists finished battles.
type BattleStore interface {
	Save(ctx context.Context, rec postgres.BattleRecord) (postgres.BattleRecord, error)
	Get(ctx context.Context, id uuid.UUID) (postgres.BattleRecord, error)
}

// BattlefieldStore persists named battlefields.
type BattlefieldStore interface {
	Create(ctx context.Context, name string, bf combat.Battlefield) (postgres.StoredBattlefield, error)
	Get(ctx context.Context, id uuid.UUID) (postgres.StoredBattlefield, error)
	List(ctx context.Context) ([]postgres.StoredBattlefield, error)
}

// ResultCache keeps recent battle results close at hand.
type ResultCache interface {
	Put(ctx context.Context, id uuid.UUID, result api.BattleResultContract) error
	Get(ctx context.Context, id uuid.UUID) (api.BattleResultContract, error)
}

// SourceFactory builds the randomness for one battle. A zero seed asks for a
// non-reproducible source.
type SourceFactory func(seed uint64) dice.Source

// DefaultSourceFactory returns crypto randomness for seed 0 and a seeded PCG otherwise.
func DefaultSourceFactory(seed uint64) dice.Source {
	if seed == 0 {
		return dice.NewCryptoSource()
	}
	return dice.NewSeededSource(seed)
}

// BattleService implements BattleServiceServer. Each request runs its own engine
// on the request goroutine.
type BattleService struct {
	battles      BattleStore
	battlefields BattlefieldStore
	cache        ResultCache
	engine       config.EngineConfig
	newSource    SourceFactory
	logger       *zap.Logger
}

var _ BattleServiceServer = (*BattleService)(nil)

// NewBattleService creates a BattleService with the given dependencies.
//
// Precondition: battles, battlefields, newSource and logger must be non-nil.
// resultCache may be nil (results are then always read from the store).
// Postcondition: Returns a ready BattleService.
func NewBattleService(
	battles BattleStore,
	battlefields BattlefieldStore,
	resultCache ResultCache,
	engineCfg config.EngineConfig,
	newSource SourceFactory,
	logger *zap.Logger,
) *BattleService {
	return &BattleService{
		battles:      battles,
		battlefields: battlefields,
		cache:        resultCache,
		engine:       engineCfg,
		newSource:    newSource,
		logger:       logger,
	}
}

type runBattleRequest struct {
	Battlefield   *api.BattlefieldContract `json:"battlefield"`
	BattlefieldID string                   `json:"battlefield_id"`
	Seed          *uint64                  `json:"seed"`
}

// RunBattle runs a battle to completion, persists it and returns the result contract.
// The request carries either an inline "battlefield" or a stored "battlefield_id",
// and optionally a "seed" overriding engine.seed.
func (s *BattleService) RunBattle(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	start := time.Now()
	data, err := protojson.Marshal(in)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "encoding request: %v", err)
	}
	var req runBattleRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, toStatus(fmt.Errorf("%w: %w", battlefield.ErrInvalidBattlefield, err))
	}

	var (
		bf      combat.Battlefield
		fieldID uuid.NullUUID
	)
	switch {
	case req.BattlefieldID != "":
		id, err := uuid.Parse(req.BattlefieldID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "battlefield_id: %v", err)
		}
		stored, err := s.battlefields.Get(ctx, id)
		if err != nil {
			return nil, toStatus(err)
		}
		bf, fieldID = stored.Battlefield, uuid.NullUUID{UUID: id, Valid: true}
		if err := battlefield.Validate(bf); err != nil {
			return nil, toStatus(err)
		}
	case req.Battlefield != nil:
		if bf, err = api.ParseCreateBattle(data); err != nil {
			return nil, toStatus(err)
		}
	default:
		return nil, status.Error(codes.InvalidArgument, "request needs a battlefield or battlefield_id")
	}

	seed := s.engine.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}
	battleID := uuid.New()
	logger := s.logger.With(zap.Stringer("battle_id", battleID))

	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	eng, err := combat.NewEngine(bf,
		combat.Config{MaxRounds: s.engine.MaxRounds, MaxSteps: s.engine.MaxSteps},
		dice.NewLoggedSource(s.newSource(seed), logger),
		logger,
	)
	if err != nil {
		return nil, toStatus(err)
	}
	res, err := eng.Start()
	if err != nil {
		return nil, toStatus(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	rec, err := s.battles.Save(ctx, postgres.BattleRecord{
		ID:            battleID,
		BattlefieldID: fieldID,
		Result:        api.FromResult(res),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	s.cachePut(ctx, rec.ID, rec.Result)

	logger.Info("battle stored",
		zap.Uint32("rounds", rec.Result.RoundNumber),
		zap.Int("actions", len(rec.Result.Actions)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return toStruct(rec.Result)
}

// GetBattle returns a stored battle by "id", preferring the cache.
func (s *BattleService) GetBattle(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := idField(in, "id")
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		result, err := s.cache.Get(ctx, id)
		switch {
		case err == nil:
			return toStruct(result)
		case errors.Is(err, cache.ErrMiss):
		default:
			s.logger.Warn("reading battle cache failed", zap.Stringer("battle_id", id), zap.Error(err))
		}
	}

	rec, err := s.battles.Get(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	s.cachePut(ctx, rec.ID, rec.Result)
	return toStruct(rec.Result)
}

type createBattlefieldRequest struct {
	Name        string                  `json:"name"`
	Battlefield api.BattlefieldContract `json:"battlefield"`
}

type battlefieldResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Battlefield api.BattlefieldContract `json:"battlefield"`
}

// CreateBattlefield validates and stores a named battlefield.
func (s *BattleService) CreateBattlefield(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	data, err := protojson.Marshal(in)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "encoding request: %v", err)
	}
	var req createBattlefieldRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, toStatus(fmt.Errorf("%w: %w", battlefield.ErrInvalidBattlefield, err))
	}
	if req.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "name must not be empty")
	}
	bf := req.Battlefield.ToBattlefield()
	if err := battlefield.Validate(bf); err != nil {
		return nil, toStatus(err)
	}

	stored, err := s.battlefields.Create(ctx, req.Name, bf)
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info("battlefield created",
		zap.Stringer("battlefield_id", stored.ID),
		zap.String("name", stored.Name),
	)
	return toStruct(fromStored(stored))
}

// ListBattlefields returns {"battlefields":[...]} ordered by name.
func (s *BattleService) ListBattlefields(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	all, err := s.battlefields.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	out := struct {
		Battlefields []battlefieldResponse `json:"battlefields"`
	}{Battlefields: make([]battlefieldResponse, 0, len(all))}
	for _, bf := range all {
		out.Battlefields = append(out.Battlefields, fromStored(bf))
	}
	return toStruct(out)
}

func (s *BattleService) cachePut(ctx context.Context, id uuid.UUID, result api.BattleResultContract) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, id, result); err != nil {
		s.logger.Warn("caching battle failed", zap.Stringer("battle_id", id), zap.Error(err))
	}
}

func fromStored(bf postgres.StoredBattlefield) battlefieldResponse {
	return battlefieldResponse{
		ID:          bf.ID.String(),
		Name:        bf.Name,
		Battlefield: api.FromBattlefield(bf.Battlefield),
	}
}

// idField reads a UUID string field from in.
func idField(in *structpb.Struct, name string) (uuid.UUID, error) {
	v, ok := in.GetFields()[name]
	if !ok || v.GetStringValue() == "" {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	id, err := uuid.Parse(v.GetStringValue())
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%s: %v", name, err)
	}
	return id, nil
}

// toStruct converts a JSON-tagged value into a Struct.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding response: %v", err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encoding response: %v", err)
	}
	return out, nil
}

// toStatus maps domain errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, battlefield.ErrInvalidBattlefield):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, postgres.ErrBattleNotFound), errors.Is(err, postgres.ErrBattlefieldNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, postgres.ErrBattlefieldNameTaken):
		return status.Error(codes.AlreadyExists, err.Error())
	case isKernelError(err):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func isKernelError(err error) bool {
	for _, target := range []error{
		grid.ErrUserAlreadyOnMap,
		grid.ErrLocationOccupied,
		grid.ErrDestinationOccupied,
		grid.ErrDestinationOutOfBounds,
		grid.ErrMapLocationEmpty,
		grid.ErrMapIDUnknown,
		combat.ErrNoOpponentsPresent,
		combat.ErrBattleAlreadyStarted,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
