package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// Schema creates the run report tables
const Schema = `
CREATE TABLE IF NOT EXISTS test_runs (
	id UUID PRIMARY KEY,
	suite VARCHAR(16) NOT NULL,
	base_url TEXT NOT NULL,
	headless BOOLEAN NOT NULL,
	status VARCHAR(16) NOT NULL,
	passed INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0,
	skipped INTEGER NOT NULL DEFAULT 0,
	started_at TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_test_runs_started_at ON test_runs(started_at);

CREATE TABLE IF NOT EXISTS test_results (
	id UUID PRIMARY KEY,
	run_id UUID NOT NULL REFERENCES test_runs(id) ON DELETE CASCADE,
	package TEXT NOT NULL,
	test TEXT NOT NULL,
	status VARCHAR(8) NOT NULL,
	elapsed_ms BIGINT NOT NULL,
	output TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_test_results_run_id ON test_results(run_id);
CREATE INDEX IF NOT EXISTS idx_test_results_status ON test_results(status);
`

// RunMigrations creates the report tables
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create report tables: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
