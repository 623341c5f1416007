package services

import (
	"context"
	"fmt"
	"time"

	"github.com/swaglabs-qa/storefront-e2e/internal/models"
)

// RunRepository defines the interface for run persistence
type RunRepository interface {
	CreateRun(ctx context.Context, run *models.Run) error
	AddResult(ctx context.Context, res *models.Result) error
	FinishRun(ctx context.Context, run *models.Run) error
	GetRun(ctx context.Context, id string) (*models.Run, error)
	ListResults(ctx context.Context, runID string) ([]*models.Result, error)
}

// RunService handles run bookkeeping
type RunService interface {
	StartRun(ctx context.Context, suite, baseURL string, headless bool) (*models.Run, error)
	RecordResult(ctx context.Context, run *models.Run, in ResultInput) (*models.Result, error)
	FinishRun(ctx context.Context, run *models.Run) error
	AbortRun(ctx context.Context, run *models.Run) error
	GetReport(ctx context.Context, id string) (*Report, error)
}

// ResultInput is the outcome of one test as seen by the runner
type ResultInput struct {
	Package string
	Test    string
	Status  models.ResultStatus
	Elapsed time.Duration
	Output  string
}

// Report is a stored run with its results
type Report struct {
	Run     *models.Run
	Results []*models.Result
}

// Failures returns the failed results of the report
func (r *Report) Failures() []*models.Result {
	var failed []*models.Result
	for _, res := range r.Results {
		if res.Status == models.ResultFail {
			failed = append(failed, res)
		}
	}
	return failed
}

// RunServiceImpl implements RunService
type RunServiceImpl struct {
	runRepo RunRepository
}

// NewRunService creates a new run service
func NewRunService(runRepo RunRepository) RunService {
	return &RunServiceImpl{
		runRepo: runRepo,
	}
}

// StartRun creates and persists a running run
func (s *RunServiceImpl) StartRun(ctx context.Context, suite, baseURL string, headless bool) (*models.Run, error) {
	run, err := models.NewRun(suite, baseURL, headless)
	if err != nil {
		return nil, fmt.Errorf("invalid run: %w", err)
	}

	if err := s.runRepo.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return run, nil
}

// RecordResult counts a test outcome towards run and persists it. Passing
// tests are stored without their output.
func (s *RunServiceImpl) RecordResult(ctx context.Context, run *models.Run, in ResultInput) (*models.Result, error) {
	res, err := models.NewResult(run.ID, in.Package, in.Test, in.Status, in.Elapsed)
	if err != nil {
		return nil, fmt.Errorf("invalid result: %w", err)
	}
	if in.Status != models.ResultPass {
		res.Output = in.Output
	}

	if err := run.Record(res); err != nil {
		return nil, err
	}

	if err := s.runRepo.AddResult(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to add result: %w", err)
	}

	return res, nil
}

// FinishRun closes run and stores its totals
func (s *RunServiceImpl) FinishRun(ctx context.Context, run *models.Run) error {
	if err := run.Finish(); err != nil {
		return err
	}

	if err := s.runRepo.FinishRun(ctx, run); err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	return nil
}

// AbortRun closes a run whose test binary never completed
func (s *RunServiceImpl) AbortRun(ctx context.Context, run *models.Run) error {
	if err := run.Abort(); err != nil {
		return err
	}

	if err := s.runRepo.FinishRun(ctx, run); err != nil {
		return fmt.Errorf("failed to abort run: %w", err)
	}

	return nil
}

// GetReport loads a run and its results
func (s *RunServiceImpl) GetReport(ctx context.Context, id string) (*Report, error) {
	run, err := s.runRepo.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	results, err := s.runRepo.ListResults(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}

	return &Report{Run: run, Results: results}, nil
}
