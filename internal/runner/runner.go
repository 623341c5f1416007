// Package runner executes the browser and API suites through `go test -json`
// and reports their progress.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/alessio/shellescape"
)

// Suite selects which specs a run executes
type Suite string

// Suites
const (
	SuiteUI  Suite = "ui"
	SuiteAPI Suite = "api"
	SuiteAll Suite = "all"
)

// ErrUnknownSuite is returned for a suite name that is not ui, api or all
var ErrUnknownSuite = errors.New("unknown suite")

// ParseSuite validates a suite name
func ParseSuite(name string) (Suite, error) {
	switch s := Suite(strings.ToLower(name)); s {
	case SuiteUI, SuiteAPI, SuiteAll:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q (want ui, api or all)", ErrUnknownSuite, name)
}

// Packages returns the package patterns of the suite
func (s Suite) Packages() []string {
	switch s {
	case SuiteUI:
		return []string{"./e2e/ui/..."}
	case SuiteAPI:
		return []string{"./e2e/api/..."}
	default:
		return []string{"./e2e/..."}
	}
}

// Options controls one invocation of the suite
type Options struct {
	Suite   Suite
	Headed  bool
	Grep    string
	Timeout time.Duration
	// Dir is the module root the packages are resolved against
	Dir string
	// Env is appended to the current environment
	Env []string
}

// Args returns the go command arguments for the run
func (o Options) Args() []string {
	args := []string{"test", "-json", "-tags", "e2e", "-count=1"}
	if o.Grep != "" {
		args = append(args, "-run", o.Grep)
	}
	if o.Timeout > 0 {
		args = append(args, "-timeout", o.Timeout.String())
	}
	return append(args, o.Suite.Packages()...)
}

func (o Options) env() []string {
	env := append([]string{}, o.Env...)
	if o.Headed {
		env = append(env, "HEADLESS=false")
	}
	return env
}

// CommandLine renders a command with shell quoting for logs
func CommandLine(name string, args ...string) string {
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, shellescape.Quote(name))
	for _, a := range args {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}

// Runner executes suites and streams their events into a Reporter
type Runner struct {
	reporter Reporter
	goBin    string
	stderr   io.Writer
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// RunnerOption customizes a Runner
type RunnerOption func(*Runner)

// WithGoBinary sets the go executable, "go" by default
func WithGoBinary(path string) RunnerOption {
	return func(r *Runner) { r.goBin = path }
}

// WithStderr sets where the go command's stderr is copied
func WithStderr(w io.Writer) RunnerOption {
	return func(r *Runner) { r.stderr = w }
}

// WithCommand replaces how the go command is created
func WithCommand(fn func(ctx context.Context, name string, args ...string) *exec.Cmd) RunnerOption {
	return func(r *Runner) { r.command = fn }
}

// NewRunner creates a runner reporting to reporter
func NewRunner(reporter Reporter, opts ...RunnerOption) *Runner {
	r := &Runner{
		reporter: reporter,
		goBin:    "go",
		stderr:   os.Stderr,
		command:  exec.CommandContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the suite. Test failures are reported through the summary,
// not as an error; an error means the suite could not run to completion.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	args := opts.Args()
	log.Printf("Running %s", CommandLine(r.goBin, args...))

	cmd := r.command(ctx, r.goBin, args...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), opts.env()...)
	cmd.Stderr = r.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to capture test output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start go test: %w", err)
	}

	summary, consumeErr := r.Consume(stdout)
	// go test blocks on a full pipe if parsing stopped early
	_, _ = io.Copy(io.Discard, stdout)
	waitErr := cmd.Wait()

	if consumeErr != nil {
		return summary, consumeErr
	}
	if ctx.Err() != nil {
		return summary, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) && !summary.OK() {
		return summary, nil
	}
	if waitErr != nil {
		return summary, fmt.Errorf("go test: %w", waitErr)
	}
	return summary, nil
}

// Consume reads a test2json stream to the end and returns its summary
func (r *Runner) Consume(stream io.Reader) (*Summary, error) {
	start := time.Now()
	c := newCollector(r.reporter)

	err := ParseEvents(stream, c.handle)
	c.summary.Elapsed = time.Since(start)
	if err != nil {
		return c.summary, fmt.Errorf("failed to read test events: %w", err)
	}

	r.reporter.RunFinished(c.summary)
	return c.summary, nil
}
