package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ambutrack/internal/config"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// New connects to Postgres and returns a Bun DB handle.
func New(dsn string, cfg *config.Config) (*bun.DB, error) {
	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(30*time.Second),
		pgdriver.WithDialTimeout(10*time.Second),
		pgdriver.WithReadTimeout(cfg.StoreTimeout),
		pgdriver.WithWriteTimeout(cfg.StoreTimeout),
	)

	sqldb := sql.OpenDB(connector)
	db := bun.NewDB(sqldb, pgdialect.New())

	sqldb.SetMaxOpenConns(25)
	sqldb.SetMaxIdleConns(10)
	sqldb.SetConnMaxLifetime(5 * time.Minute)
	sqldb.SetConnMaxIdleTime(10 * time.Minute)

	// Optional query logging
	if cfg.BunDebug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// InitSchema creates the PostGIS extension, entity tables and spatial
// indexes. Safe to run on every start.
func InitSchema(ctx context.Context, db *bun.DB) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis;`,

		`CREATE TABLE IF NOT EXISTS ambulances (
			id UUID PRIMARY KEY,
			vehicle_number VARCHAR(50) NOT NULL UNIQUE,
			status VARCHAR(20) NOT NULL DEFAULT 'available',
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			location GEOGRAPHY(POINT, 4326) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS hospitals (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			address TEXT NOT NULL,
			number_of_beds INT NOT NULL DEFAULT 100,
			specialties TEXT[] NOT NULL DEFAULT '{}',
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			location GEOGRAPHY(POINT, 4326) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,

		`CREATE INDEX IF NOT EXISTS idx_ambulances_location ON ambulances USING GIST(location);`,
		`CREATE INDEX IF NOT EXISTS idx_hospitals_location ON hospitals USING GIST(location);`,
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}

	return nil
}
