package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/skirmish/internal/api"
)

// BattleRecord is a finished battle as stored.
type BattleRecord struct {
	ID uuid.UUID
	// BattlefieldID links the battle to a stored battlefield; invalid for ad-hoc battles.
	BattlefieldID uuid.NullUUID
	Result        api.BattleResultContract
	CreatedAt     time.Time
}

// BattleRepository persists battle results.
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository creates a BattleRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

// Save inserts rec. A zero rec.ID is replaced by a fresh UUID.
//
// Postcondition: Returns the stored record with ID and CreatedAt set, or
// ErrBattlefieldNotFound when rec.BattlefieldID names no stored battlefield.
func (r *BattleRepository) Save(ctx context.Context, rec BattleRecord) (BattleRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.Result.ID = rec.ID.String()
	doc, err := json.Marshal(rec.Result)
	if err != nil {
		return BattleRecord{}, fmt.Errorf("encoding battle result: %w", err)
	}

	var winner *string
	if rec.Result.Winner != nil {
		winner = &rec.Result.Winner.Name
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO battles (id, battlefield_id, rounds, winner, stalemate, result)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		rec.ID, rec.BattlefieldID, int64(rec.Result.RoundNumber), winner, rec.Result.Stalemate, doc,
	).Scan(&rec.CreatedAt)
	if isForeignKeyError(err) {
		return BattleRecord{}, fmt.Errorf("%w: %s", ErrBattlefieldNotFound, rec.BattlefieldID.UUID)
	}
	if err != nil {
		return BattleRecord{}, fmt.Errorf("inserting battle: %w", err)
	}
	return rec, nil
}

// Get retrieves a battle by id.
//
// Postcondition: Returns the record or ErrBattleNotFound.
func (r *BattleRepository) Get(ctx context.Context, id uuid.UUID) (BattleRecord, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, battlefield_id, result, created_at
		FROM battles WHERE id = $1`, id)
	rec, err := scanBattle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BattleRecord{}, ErrBattleNotFound
		}
		return BattleRecord{}, fmt.Errorf("querying battle: %w", err)
	}
	return rec, nil
}

// ListByBattlefield returns the battles fought on a battlefield, newest first.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *BattleRepository) ListByBattlefield(ctx context.Context, battlefieldID uuid.UUID) ([]BattleRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, battlefield_id, result, created_at
		FROM battles WHERE battlefield_id = $1 ORDER BY created_at DESC`, battlefieldID)
	if err != nil {
		return nil, fmt.Errorf("listing battles: %w", err)
	}
	defer rows.Close()

	out := make([]BattleRecord, 0)
	for rows.Next() {
		rec, err := scanBattle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning battle row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanBattle(row pgx.Row) (BattleRecord, error) {
	var (
		rec BattleRecord
		doc []byte
	)
	if err := row.Scan(&rec.ID, &rec.BattlefieldID, &doc, &rec.CreatedAt); err != nil {
		return BattleRecord{}, err
	}
	if err := json.Unmarshal(doc, &rec.Result); err != nil {
		return BattleRecord{}, fmt.Errorf("decoding battle result: %w", err)
	}
	return rec, nil
}
