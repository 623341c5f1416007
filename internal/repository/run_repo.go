package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/swaglabs-qa/storefront-e2e/internal/models"
)

// ErrRunNotFound is returned when no run has the requested id
var ErrRunNotFound = errors.New("run not found")

// RunRepository handles database operations for runs and their results
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository over db
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// CreateRun inserts a new run
func (r *RunRepository) CreateRun(ctx context.Context, run *models.Run) error {
	query := `
		INSERT INTO test_runs (id, suite, base_url, headless, status, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Suite,
		run.BaseURL,
		run.Headless,
		run.Status,
		run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// AddResult inserts the result of one test
func (r *RunRepository) AddResult(ctx context.Context, res *models.Result) error {
	query := `
		INSERT INTO test_results (id, run_id, package, test, status, elapsed_ms, output, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		res.RunID,
		res.Package,
		res.Test,
		res.Status,
		res.Elapsed.Milliseconds(),
		res.Output,
		res.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add result: %w", err)
	}

	return nil
}

// FinishRun stores the final status and totals of a run
func (r *RunRepository) FinishRun(ctx context.Context, run *models.Run) error {
	query := `
		UPDATE test_runs
		SET status = $1, passed = $2, failed = $3, skipped = $4, finished_at = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		run.Status,
		run.Passed,
		run.Failed,
		run.Skipped,
		run.FinishedAt,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRunNotFound
	}

	return nil
}

// GetRun retrieves a run by id
func (r *RunRepository) GetRun(ctx context.Context, id string) (*models.Run, error) {
	query := `
		SELECT id, suite, base_url, headless, status, passed, failed, skipped,
		       started_at, finished_at
		FROM test_runs
		WHERE id = $1
	`

	run := &models.Run{}
	var finishedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.Suite,
		&run.BaseURL,
		&run.Headless,
		&run.Status,
		&run.Passed,
		&run.Failed,
		&run.Skipped,
		&run.StartedAt,
		&finishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	run.FinishedAt = finishedAt.Time

	return run, nil
}

// ListResults returns the results of a run in insertion order
func (r *RunRepository) ListResults(ctx context.Context, runID string) ([]*models.Result, error) {
	query := `
		SELECT id, run_id, package, test, status, elapsed_ms, output, created_at
		FROM test_results
		WHERE run_id = $1
		ORDER BY created_at, test
	`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		res := &models.Result{}
		var elapsedMS int64
		if err := rows.Scan(
			&res.ID,
			&res.RunID,
			&res.Package,
			&res.Test,
			&res.Status,
			&elapsedMS,
			&res.Output,
			&res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		res.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}
