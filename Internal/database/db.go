package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/utils/config"
)

const connectTimeout = 5 * time.Second

// ConnString builds the lib/pq keyword/value connection string.
func ConnString(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// InitDatabase opens the connection pool, pings it and creates the journal
// table if it does not exist yet.
func InitDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", ConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = initializeSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

// initializeSchema creates the dmr_runs table if it doesn't exist
func initializeSchema(ctx context.Context, db *sql.DB) error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS dmr_runs (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		input JSONB NOT NULL,
		daily_support TEXT NOT NULL,
		daily_resistance TEXT NOT NULL,
		breakout_trigger TEXT NOT NULL,
		breakdown_trigger TEXT NOT NULL,
		output JSONB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_dmr_runs_created_at ON dmr_runs(created_at DESC);
	`

	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}

func HealthCheck(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.PingContext(ctx)
}
