// Package country resolves externally-owned reference identifiers to country
// names. The eligibility gate's blacklist is expressed as identifiers, not
// names, so resolution goes through this capability.
package country

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/address-verify/internal/db"
)

// ErrNotFound is returned when an identifier has no country entry.
var ErrNotFound = eris.New("country: not found")

// Resolver maps a reference identifier to a country name.
type Resolver interface {
	ResolveCountry(ctx context.Context, id string) (string, error)
}

// PostgresResolver resolves identifiers against the country_ref table.
type PostgresResolver struct {
	pool db.Pool
}

// NewPostgresResolver creates a resolver over the given pool.
func NewPostgresResolver(pool db.Pool) *PostgresResolver {
	return &PostgresResolver{pool: pool}
}

// ResolveCountry implements Resolver.
func (r *PostgresResolver) ResolveCountry(ctx context.Context, id string) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx, `SELECT name FROM country_ref WHERE id = $1`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", eris.Wrapf(err, "country: resolve %s", id)
	}
	return name, nil
}

// StaticResolver resolves from an in-memory table, for config-file
// deployments and tests.
type StaticResolver map[string]string

// ResolveCountry implements Resolver.
func (r StaticResolver) ResolveCountry(_ context.Context, id string) (string, error) {
	name, ok := r[id]
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}
