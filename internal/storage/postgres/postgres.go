// Package postgres stores battlefields and finished battles in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/skirmish/internal/config"
)

// applicationName is reported to the server as application_name.
const applicationName = "skirmish"

// requiredTables are the relations created by the migrations in migrations/.
var requiredTables = []string{"battlefields", "battles"}

// ErrSchemaNotMigrated is returned by CheckSchema when a required table is absent.
var ErrSchemaNotMigrated = errors.New("database schema not migrated")

// Pool owns the pgx connection pool shared by the battlefield and battle repositories.
type Pool struct {
	pool *pgxpool.Pool
	name string
}

// NewPool connects to the database described by cfg.
//
// Precondition: cfg must pass config validation.
// Postcondition: Returns a pinged Pool or a non-nil error; no pool is leaked on failure.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool for %s: %w", cfg.Name, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database %s: %w", cfg.Name, err)
	}
	return &Pool{pool: pool, name: cfg.Name}, nil
}

// CheckSchema verifies that the battlefields and battles tables exist.
//
// Postcondition: Returns nil, or an error wrapping ErrSchemaNotMigrated that names
// every missing table.
func (p *Pool) CheckSchema(ctx context.Context) error {
	var missing []string
	for _, table := range requiredTables {
		var found *string
		if err := p.pool.QueryRow(ctx, `SELECT to_regclass($1)::text`, table).Scan(&found); err != nil {
			return fmt.Errorf("checking table %s: %w", table, err)
		}
		if found == nil {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s missing %s (run cmd/migrate)", ErrSchemaNotMigrated, p.name, strings.Join(missing, ", "))
	}
	return nil
}

// Health pings the database within timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := p.pool.Ping(ctx); err != nil {
		stat := p.pool.Stat()
		return fmt.Errorf("database %s unreachable (%d/%d conns acquired): %w",
			p.name, stat.AcquiredConns(), stat.TotalConns(), err)
	}
	return nil
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the pgxpool.Pool handed to the repositories.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
