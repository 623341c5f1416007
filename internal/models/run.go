package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid suite run states
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
	RunStatusAborted RunStatus = "aborted"
)

// ResultStatus is the outcome of a single test
type ResultStatus string

// Result statuses
const (
	ResultPass ResultStatus = "pass"
	ResultFail ResultStatus = "fail"
	ResultSkip ResultStatus = "skip"
)

// Run is one invocation of the suite
type Run struct {
	ID         string
	Suite      string
	BaseURL    string
	Headless   bool
	Status     RunStatus
	Passed     int
	Failed     int
	Skipped    int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Result is the outcome of one test within a run
type Result struct {
	ID        string
	RunID     string
	Package   string
	Test      string
	Status    ResultStatus
	Elapsed   time.Duration
	Output    string
	CreatedAt time.Time
}

// Domain errors
var (
	ErrInvalidSuite        = errors.New("suite name cannot be empty")
	ErrInvalidBaseURL      = errors.New("base URL cannot be empty")
	ErrInvalidTestName     = errors.New("test name cannot be empty")
	ErrInvalidResultStatus = errors.New("invalid result status")
	ErrRunNotRunning       = errors.New("run is not running")
	ErrRunAlreadyFinished  = errors.New("run is already finished")
)

// NewRun creates a new run in the running state
func NewRun(suite, baseURL string, headless bool) (*Run, error) {
	if suite == "" {
		return nil, ErrInvalidSuite
	}
	if baseURL == "" {
		return nil, ErrInvalidBaseURL
	}

	return &Run{
		ID:        uuid.New().String(),
		Suite:     suite,
		BaseURL:   baseURL,
		Headless:  headless,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// NewResult creates a result belonging to run
func NewResult(runID, pkg, test string, status ResultStatus, elapsed time.Duration) (*Result, error) {
	if test == "" {
		return nil, ErrInvalidTestName
	}
	switch status {
	case ResultPass, ResultFail, ResultSkip:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidResultStatus, status)
	}

	return &Result{
		ID:        uuid.New().String(),
		RunID:     runID,
		Package:   pkg,
		Test:      test,
		Status:    status,
		Elapsed:   elapsed,
		CreatedAt: time.Now(),
	}, nil
}

// Record counts a result towards the run totals
func (r *Run) Record(res *Result) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot record into run with status %s", ErrRunNotRunning, r.Status)
	}

	switch res.Status {
	case ResultPass:
		r.Passed++
	case ResultFail:
		r.Failed++
	case ResultSkip:
		r.Skipped++
	default:
		return fmt.Errorf("%w: %q", ErrInvalidResultStatus, res.Status)
	}
	return nil
}

// Finish closes the run. A run with any failure ends failed.
func (r *Run) Finish() error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: status %s", ErrRunAlreadyFinished, r.Status)
	}

	if r.Failed > 0 {
		r.Status = RunStatusFailed
	} else {
		r.Status = RunStatusPassed
	}
	r.FinishedAt = time.Now()
	return nil
}

// Abort closes a run that never completed, e.g. the test binary crashed
func (r *Run) Abort() error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: status %s", ErrRunAlreadyFinished, r.Status)
	}

	r.Status = RunStatusAborted
	r.FinishedAt = time.Now()
	return nil
}

// IsRunning returns true while results can still be recorded
func (r *Run) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// Total returns the number of recorded results
func (r *Run) Total() int {
	return r.Passed + r.Failed + r.Skipped
}

// Duration returns how long the run took, or has taken so far
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
