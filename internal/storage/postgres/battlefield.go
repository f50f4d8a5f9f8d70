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
	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// StoredBattlefield is a battlefield row.
type StoredBattlefield struct {
	ID          uuid.UUID
	Name        string
	Battlefield combat.Battlefield
	CreatedAt   time.Time
}

// BattlefieldRepository persists reusable battle definitions.
type BattlefieldRepository struct {
	db *pgxpool.Pool
}

// NewBattlefieldRepository creates a BattlefieldRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewBattlefieldRepository(db *pgxpool.Pool) *BattlefieldRepository {
	return &BattlefieldRepository{db: db}
}

// Create stores bf under name with a fresh UUID.
//
// Precondition: name must be non-empty; bf should already be validated.
// Postcondition: Returns the stored row, or ErrBattlefieldNameTaken on duplicate name.
func (r *BattlefieldRepository) Create(ctx context.Context, name string, bf combat.Battlefield) (StoredBattlefield, error) {
	roster, err := json.Marshal(api.FromBattlefield(bf).Combatants)
	if err != nil {
		return StoredBattlefield{}, fmt.Errorf("encoding combatants: %w", err)
	}

	out := StoredBattlefield{ID: uuid.New(), Name: name, Battlefield: bf}
	err = r.db.QueryRow(ctx, `
		INSERT INTO battlefields (id, name, width, height, combatants)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		out.ID, name, int16(bf.Width), int16(bf.Height), roster,
	).Scan(&out.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return StoredBattlefield{}, ErrBattlefieldNameTaken
		}
		return StoredBattlefield{}, fmt.Errorf("inserting battlefield: %w", err)
	}
	return out, nil
}

// Get retrieves a battlefield by id.
//
// Postcondition: Returns the row or ErrBattlefieldNotFound.
func (r *BattlefieldRepository) Get(ctx context.Context, id uuid.UUID) (StoredBattlefield, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, width, height, combatants, created_at
		FROM battlefields WHERE id = $1`, id)
	out, err := scanBattlefield(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoredBattlefield{}, ErrBattlefieldNotFound
		}
		return StoredBattlefield{}, fmt.Errorf("querying battlefield: %w", err)
	}
	return out, nil
}

// List returns every stored battlefield ordered by name.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *BattlefieldRepository) List(ctx context.Context) ([]StoredBattlefield, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, width, height, combatants, created_at
		FROM battlefields ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing battlefields: %w", err)
	}
	defer rows.Close()

	out := make([]StoredBattlefield, 0)
	for rows.Next() {
		bf, err := scanBattlefield(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning battlefield row: %w", err)
		}
		out = append(out, bf)
	}
	return out, rows.Err()
}

func scanBattlefield(row pgx.Row) (StoredBattlefield, error) {
	var (
		out           StoredBattlefield
		width, height int16
		roster        []byte
	)
	if err := row.Scan(&out.ID, &out.Name, &width, &height, &roster, &out.CreatedAt); err != nil {
		return StoredBattlefield{}, err
	}
	contract := api.BattlefieldContract{Width: uint8(width), Height: uint8(height)}
	if err := json.Unmarshal(roster, &contract.Combatants); err != nil {
		return StoredBattlefield{}, fmt.Errorf("decoding combatants: %w", err)
	}
	out.Battlefield = contract.ToBattlefield()
	return out, nil
}
