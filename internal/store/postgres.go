package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/address-verify/internal/db"
	"github.com/sells-group/address-verify/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

const locationColumns = `id, name, street1, street2, city, county, state, postal_code, country, geo_point_locked, latitude, longitude, standardize_attempted_at, standardize_attempted_service, geocode_attempted_at, geocode_attempted_service, geocode_attempted_result, standardized_at, geocoded_at`

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, maxConns, minConns int32) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	if maxConns > 0 {
		pgxCfg.MaxConns = maxConns
	}
	if minConns > 0 {
		pgxCfg.MinConns = minConns
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// Pool returns the underlying database pool for subsystems that need direct
// query access (e.g., the country reference resolver).
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS locations (
	id                            TEXT PRIMARY KEY,
	name                          TEXT NOT NULL DEFAULT '',
	street1                       TEXT NOT NULL DEFAULT '',
	street2                       TEXT NOT NULL DEFAULT '',
	city                          TEXT NOT NULL DEFAULT '',
	county                        TEXT NOT NULL DEFAULT '',
	state                         TEXT NOT NULL DEFAULT '',
	postal_code                   TEXT NOT NULL DEFAULT '',
	country                       TEXT NOT NULL DEFAULT '',
	geo_point_locked              BOOLEAN NOT NULL DEFAULT FALSE,
	latitude                      DOUBLE PRECISION,
	longitude                     DOUBLE PRECISION,
	standardize_attempted_at      TIMESTAMPTZ,
	standardize_attempted_service TEXT NOT NULL DEFAULT '',
	geocode_attempted_at          TIMESTAMPTZ,
	geocode_attempted_service     TEXT NOT NULL DEFAULT '',
	geocode_attempted_result      TEXT NOT NULL DEFAULT '',
	standardized_at               TIMESTAMPTZ,
	geocoded_at                   TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_locations_pending
	ON locations (country) WHERE NOT geo_point_locked AND geocoded_at IS NULL;

CREATE TABLE IF NOT EXISTS country_ref (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
`

// Migrate creates the schema if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

// GetLocation fetches a single location by ID.
func (s *PostgresStore) GetLocation(ctx context.Context, id string) (*model.Location, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
	loc, err := scanLocation(row)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get location %s", id)
	}
	return loc, nil
}

// ListPending returns unlocked locations that have never been geocoded.
func (s *PostgresStore) ListPending(ctx context.Context, filter ListFilter) ([]model.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE NOT geo_point_locked AND geocoded_at IS NULL`
	args := []any{}
	if filter.Country != "" {
		query += ` AND country = $1`
		args = append(args, filter.Country)
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		if filter.Country != "" {
			query += ` LIMIT $2`
		} else {
			query += ` LIMIT $1`
		}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list pending")
	}
	defer rows.Close()

	var locs []model.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan location")
		}
		locs = append(locs, *loc)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: list pending rows")
	}
	return locs, nil
}

// SaveLocation upserts a location record, assigning an ID if absent.
func (s *PostgresStore) SaveLocation(ctx context.Context, loc *model.Location) error {
	if loc.ID == "" {
		loc.ID = uuid.NewString()
	}

	var lat, lon *float64
	if loc.GeoPoint != nil {
		lat = &loc.GeoPoint.Latitude
		lon = &loc.GeoPoint.Longitude
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO locations (`+locationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			street1 = EXCLUDED.street1,
			street2 = EXCLUDED.street2,
			city = EXCLUDED.city,
			county = EXCLUDED.county,
			state = EXCLUDED.state,
			postal_code = EXCLUDED.postal_code,
			country = EXCLUDED.country,
			geo_point_locked = EXCLUDED.geo_point_locked,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			standardize_attempted_at = EXCLUDED.standardize_attempted_at,
			standardize_attempted_service = EXCLUDED.standardize_attempted_service,
			geocode_attempted_at = EXCLUDED.geocode_attempted_at,
			geocode_attempted_service = EXCLUDED.geocode_attempted_service,
			geocode_attempted_result = EXCLUDED.geocode_attempted_result,
			standardized_at = EXCLUDED.standardized_at,
			geocoded_at = EXCLUDED.geocoded_at`,
		loc.ID, loc.Name, loc.Street1, loc.Street2, loc.City, loc.County, loc.State,
		loc.PostalCode, loc.Country, loc.GeoPointLocked, lat, lon,
		loc.StandardizeAttemptedAt, loc.StandardizeAttemptedService,
		loc.GeocodeAttemptedAt, loc.GeocodeAttemptedService, loc.GeocodeAttemptedResult,
		loc.StandardizedAt, loc.GeocodedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save location %s", loc.ID)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// scanLocation reads one locations row into a model.Location.
func scanLocation(row pgx.Row) (*model.Location, error) {
	var loc model.Location
	var lat, lon *float64

	err := row.Scan(
		&loc.ID, &loc.Name, &loc.Street1, &loc.Street2, &loc.City, &loc.County,
		&loc.State, &loc.PostalCode, &loc.Country, &loc.GeoPointLocked, &lat, &lon,
		&loc.StandardizeAttemptedAt, &loc.StandardizeAttemptedService,
		&loc.GeocodeAttemptedAt, &loc.GeocodeAttemptedService, &loc.GeocodeAttemptedResult,
		&loc.StandardizedAt, &loc.GeocodedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat != nil && lon != nil {
		loc.GeoPoint = &model.GeoPoint{Latitude: *lat, Longitude: *lon}
	}
	return &loc, nil
}
