package runner

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/swaglabs-qa/storefront-e2e/internal/models"
)

// Reporter receives test lifecycle notifications while a run streams
type Reporter interface {
	TestStarted(pkg, test string)
	TestFinished(res TestResult)
	RunFinished(summary *Summary)
}

// ConsoleReporter prints colored progress for humans
type ConsoleReporter struct {
	// OutputOnFailure dumps the captured output of failed tests
	OutputOnFailure bool
	// Verbose prints a line when each test starts
	Verbose bool

	w    io.Writer
	pass *color.Color
	fail *color.Color
	skip *color.Color
	dim  *color.Color
}

// NewConsoleReporter creates a reporter writing to w
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{
		OutputOnFailure: true,
		w:               w,
		pass:            color.New(color.FgGreen),
		fail:            color.New(color.FgRed, color.Bold),
		skip:            color.New(color.FgYellow),
		dim:             color.New(color.Faint),
	}
}

func (c *ConsoleReporter) TestStarted(pkg, test string) {
	if c.Verbose {
		c.dim.Fprintf(c.w, "[%s]\n", test)
	}
}

func (c *ConsoleReporter) TestFinished(res TestResult) {
	elapsed := res.Elapsed.Round(time.Millisecond)

	switch res.Status {
	case models.ResultPass:
		c.pass.Fprint(c.w, "  PASS ")
		fmt.Fprintf(c.w, "%s (%s)\n", res.Test, elapsed)
	case models.ResultSkip:
		c.skip.Fprint(c.w, "  SKIP ")
		fmt.Fprintf(c.w, "%s\n", res.Test)
	default:
		c.fail.Fprint(c.w, "  FAIL ")
		fmt.Fprintf(c.w, "%s (%s)\n", res.Test, elapsed)
		if c.OutputOnFailure && res.Output != "" {
			c.dump(res.Output, "    ")
		}
	}
}

func (c *ConsoleReporter) RunFinished(s *Summary) {
	fmt.Fprintln(c.w)
	for _, f := range s.Failures {
		c.fail.Fprint(c.w, "FAILED: ")
		fmt.Fprintln(c.w, f.Name())
	}
	if s.BuildOutput != "" {
		c.dump(s.BuildOutput, "  ")
	}

	line := c.pass
	if !s.OK() {
		line = c.fail
	}
	line.Fprintf(c.w, "%s\n", s)
}

func (c *ConsoleReporter) dump(output, indent string) {
	for _, l := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		fmt.Fprintf(c.w, "%s%s\n", indent, l)
	}
}

// MultiReporter fans notifications out to several reporters
type MultiReporter []Reporter

func (m MultiReporter) TestStarted(pkg, test string) {
	for _, r := range m {
		r.TestStarted(pkg, test)
	}
}

func (m MultiReporter) TestFinished(res TestResult) {
	for _, r := range m {
		r.TestFinished(res)
	}
}

func (m MultiReporter) RunFinished(s *Summary) {
	for _, r := range m {
		r.RunFinished(s)
	}
}
