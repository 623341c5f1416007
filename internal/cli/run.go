package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/swaglabs-qa/storefront-e2e/internal/models"
	"github.com/swaglabs-qa/storefront-e2e/internal/runner"
	"github.com/swaglabs-qa/storefront-e2e/internal/services"
)

// ErrTestsFailed is returned when the suite ran but at least one test failed
var ErrTestsFailed = errors.New("tests failed")

// RunDependencies holds everything needed to execute the suite
type RunDependencies struct {
	Options  runner.Options
	Reporter runner.Reporter
	// BaseURL and Headless are stored with recorded runs
	BaseURL  string
	Headless bool
	// RunService records the run when set
	RunService    services.RunService
	RunnerOptions []runner.RunnerOption
}

// RunSuite executes the suite, records it when a RunService is configured,
// and returns ErrTestsFailed when any test failed
func RunSuite(ctx context.Context, deps RunDependencies) (*runner.Summary, error) {
	reporter := deps.Reporter
	var run *models.Run

	if deps.RunService != nil {
		var err error
		run, err = deps.RunService.StartRun(ctx, string(deps.Options.Suite), deps.BaseURL, deps.Headless)
		if err != nil {
			return nil, fmt.Errorf("failed to start run: %w", err)
		}
		log.Printf("Recording run %s", run.ID)
		reporter = runner.MultiReporter{reporter, &recordingReporter{ctx: ctx, svc: deps.RunService, run: run}}
	}

	summary, err := runner.NewRunner(reporter, deps.RunnerOptions...).Run(ctx, deps.Options)
	if err != nil {
		if run != nil {
			if abortErr := deps.RunService.AbortRun(context.WithoutCancel(ctx), run); abortErr != nil {
				log.Printf("Failed to abort run %s: %v", run.ID, abortErr)
			}
		}
		return summary, err
	}

	if run != nil {
		if err := deps.RunService.FinishRun(ctx, run); err != nil {
			return summary, err
		}
	}

	if !summary.OK() {
		return summary, fmt.Errorf("%w: %s", ErrTestsFailed, summary)
	}
	return summary, nil
}

// recordingReporter stores each finished test through the run service
type recordingReporter struct {
	ctx context.Context
	svc services.RunService
	run *models.Run
}

func (r *recordingReporter) TestStarted(pkg, test string) {}

func (r *recordingReporter) TestFinished(res runner.TestResult) {
	_, err := r.svc.RecordResult(r.ctx, r.run, services.ResultInput{
		Package: res.Package,
		Test:    res.Test,
		Status:  res.Status,
		Elapsed: res.Elapsed,
		Output:  res.Output,
	})
	if err != nil {
		log.Printf("Failed to record %s: %v", res.Name(), err)
	}
}

func (r *recordingReporter) RunFinished(*runner.Summary) {}
