package runner

import (
	"fmt"
	"time"

	"github.com/swaglabs-qa/storefront-e2e/internal/models"
)

// TestResult is the outcome of one test with its captured output
type TestResult struct {
	Package string
	Test    string
	Status  models.ResultStatus
	Elapsed time.Duration
	Output  string
}

// Name returns the package-qualified test name
func (r TestResult) Name() string {
	if r.Package == "" {
		return r.Test
	}
	return r.Package + "." + r.Test
}

// Summary aggregates the outcomes of a run
type Summary struct {
	Passed   int
	Failed   int
	Skipped  int
	Failures []TestResult
	Elapsed  time.Duration

	// BuildOutput holds output not attributed to any test, e.g. compile errors
	BuildOutput string
	// PackageFailed is set when any package reported failure, including
	// packages that failed to build
	PackageFailed bool
}

// Add counts res
func (s *Summary) Add(res TestResult) {
	switch res.Status {
	case models.ResultPass:
		s.Passed++
	case models.ResultFail:
		s.Failed++
		s.Failures = append(s.Failures, res)
	case models.ResultSkip:
		s.Skipped++
	}
}

// Total returns the number of finished tests
func (s *Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// OK reports whether the run had no failures
func (s *Summary) OK() bool {
	return s.Failed == 0 && !s.PackageFailed
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped in %s",
		s.Passed, s.Failed, s.Skipped, s.Elapsed.Round(time.Millisecond))
}
