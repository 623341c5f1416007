package runner

import (
	"strings"

	"github.com/swaglabs-qa/storefront-e2e/internal/models"
)

type testKey struct {
	pkg, test string
}

// collector turns a stream of events into per-test results
type collector struct {
	reporter Reporter
	summary  *Summary
	output   map[testKey]*strings.Builder
}

func newCollector(reporter Reporter) *collector {
	return &collector{
		reporter: reporter,
		summary:  &Summary{},
		output:   map[testKey]*strings.Builder{},
	}
}

func (c *collector) handle(ev Event) error {
	key := testKey{ev.Package, ev.Test}

	switch {
	case ev.Test == "" && ev.Action == ActionOutput:
		if ev.Package == "" {
			c.summary.BuildOutput += ev.Output
		}
	case ev.Test == "" && ev.Action == ActionFail:
		c.summary.PackageFailed = true
	case ev.Test == "":
	case ev.Action == ActionRun:
		c.output[key] = &strings.Builder{}
		c.reporter.TestStarted(ev.Package, ev.Test)
	case ev.Action == ActionOutput:
		if b, ok := c.output[key]; ok {
			b.WriteString(ev.Output)
		}
	case ev.IsTerminal():
		res := TestResult{
			Package: ev.Package,
			Test:    ev.Test,
			Status:  statusOf(ev.Action),
			Elapsed: ev.Duration(),
		}
		if b, ok := c.output[key]; ok {
			res.Output = b.String()
			delete(c.output, key)
		}
		c.summary.Add(res)
		c.reporter.TestFinished(res)
	}
	return nil
}

func statusOf(action string) models.ResultStatus {
	switch action {
	case ActionPass:
		return models.ResultPass
	case ActionSkip:
		return models.ResultSkip
	default:
		return models.ResultFail
	}
}
