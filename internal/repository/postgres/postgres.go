package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skycast/widget/internal/domain"
)

// Schema creates the lookup history table
const Schema = `
	CREATE TABLE IF NOT EXISTS weather_lookups (
		id          BIGSERIAL PRIMARY KEY,
		query       TEXT NOT NULL,
		city        TEXT NOT NULL,
		temperature DOUBLE PRECISION NOT NULL,
		humidity    DOUBLE PRECISION NOT NULL,
		wind_speed  DOUBLE PRECISION NOT NULL,
		condition   TEXT,
		icon        TEXT,
		fetched_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS weather_lookups_fetched_at_idx ON weather_lookups (fetched_at);
`

// PostgresRepository implements domain.LookupRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Migrate creates the schema if it does not exist
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("postgres: failed to migrate: %w", err)
	}
	return nil
}

// SaveLookup persists a lookup to PostgreSQL
func (r *PostgresRepository) SaveLookup(ctx context.Context, entry domain.LookupLog) error {
	query := `
		INSERT INTO weather_lookups (
			query, city, temperature, humidity, wind_speed, condition, icon, fetched_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	f := entry.Record.Fields()
	_, err := r.pool.Exec(ctx, query,
		entry.Query, f.City, *f.Temperature, *f.Humidity, *f.WindSpeed, f.Condition, f.Icon, entry.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save lookup: %w", err)
	}

	return nil
}

// RecentLookups retrieves lookup history from PostgreSQL
func (r *PostgresRepository) RecentLookups(ctx context.Context, from, to time.Time) ([]domain.LookupLog, error) {
	query := `
		SELECT query, city, temperature, humidity, wind_speed, condition, icon, fetched_at
		FROM weather_lookups
		WHERE fetched_at BETWEEN $1 AND $2
		ORDER BY fetched_at DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query lookups: %w", err)
	}
	defer rows.Close()

	var results []domain.LookupLog
	for rows.Next() {
		var (
			entry domain.LookupLog
			f     domain.RecordFields
		)
		err := rows.Scan(
			&entry.Query, &f.City, &f.Temperature, &f.Humidity, &f.WindSpeed, &f.Condition, &f.Icon, &entry.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan lookup row: %w", err)
		}
		entry.Record, err = domain.NewWeatherRecord(f)
		if err != nil {
			return nil, fmt.Errorf("postgres: invalid lookup row: %w", err)
		}
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read lookups: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
