package mocks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/swaglabs-qa/storefront-e2e/internal/wait"
)

// DefaultWaitTimeout is how long Wait blocks when no timeout is given
const DefaultWaitTimeout = 10 * time.Second

// Registry binds rules to aliases for the duration of one test. Registering
// an alias twice is an error unless the caller asks to overwrite it.
type Registry struct {
	router  Router
	timeout time.Duration
	debug   bool

	mu      sync.Mutex
	rules   map[string]*Rule
	calls   map[string][]Request
	waited  map[string]int
	changed chan struct{}
	seq     int
}

// RegistryOption customizes a Registry
type RegistryOption func(*Registry)

// WithWaitTimeout sets the default timeout of Wait and VerifyCalls
func WithWaitTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.timeout = d }
}

// WithDebugLogging logs every registration and intercepted call
func WithDebugLogging(enabled bool) RegistryOption {
	return func(r *Registry) { r.debug = enabled }
}

// NewRegistry creates a registry installing its rules on router
func NewRegistry(router Router, opts ...RegistryOption) *Registry {
	r := &Registry{
		router:  router,
		timeout: DefaultWaitTimeout,
		rules:   make(map[string]*Rule),
		calls:   make(map[string][]Request),
		waited:  make(map[string]int),
		changed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type registerOptions struct {
	overwrite bool
}

// RegisterOption customizes a single registration
type RegisterOption func(*registerOptions)

// WithOverwrite replaces an existing rule bound to the same alias
func WithOverwrite() RegisterOption {
	return func(o *registerOptions) { o.overwrite = true }
}

// Register installs a rule for method and pattern bound to alias. An empty
// alias gets a generated name.
func (r *Registry) Register(alias, method, pattern string, h Handler, opts ...RegisterOption) (*Alias, error) {
	var o registerOptions
	for _, opt := range opts {
		opt(&o)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if alias == "" {
		r.seq++
		alias = fmt.Sprintf("mock-%d", r.seq)
	}

	existing, dup := r.rules[alias]
	if dup && !o.overwrite {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAlias, alias)
	}

	rule, err := NewRule(alias, method, pattern, nil)
	if err != nil {
		return nil, err
	}
	rule.Handler = r.recording(rule, h)

	if dup {
		if err := r.router.Unroute(existing); err != nil {
			return nil, fmt.Errorf("failed to remove rule %s: %w", alias, err)
		}
	}
	if err := r.router.Route(rule); err != nil {
		return nil, fmt.Errorf("failed to install rule %s: %w", alias, err)
	}

	r.rules[alias] = rule
	r.calls[alias] = nil
	r.waited[alias] = 0
	if r.debug {
		log.Printf("mock %s: %s %s", alias, valueOr(rule.Method, "*"), pattern)
	}

	return &Alias{name: alias, reg: r}, nil
}

// recording wraps h so each call is stored under the rule's alias. Calls that
// reach a rule after it was replaced are not recorded.
func (r *Registry) recording(rule *Rule, h Handler) Handler {
	return func(req Request) Reply {
		if req.Time.IsZero() {
			req.Time = time.Now()
		}

		r.mu.Lock()
		if r.rules[rule.Alias] == rule {
			r.calls[rule.Alias] = append(r.calls[rule.Alias], req)
			close(r.changed)
			r.changed = make(chan struct{})
		}
		r.mu.Unlock()

		if r.debug {
			log.Printf("mock %s intercepted %s %s", rule.Alias, req.Method, req.URL)
		}
		return h(req)
	}
}

// Wait blocks until the alias receives a call that no earlier Wait consumed,
// and returns it. A zero timeout uses the registry default.
func (r *Registry) Wait(ctx context.Context, alias string, timeout time.Duration) (Request, error) {
	if timeout <= 0 {
		timeout = r.timeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		r.mu.Lock()
		if _, ok := r.rules[alias]; !ok {
			r.mu.Unlock()
			return Request{}, fmt.Errorf("%w: %s", ErrUnknownAlias, alias)
		}
		calls, consumed := r.calls[alias], r.waited[alias]
		if len(calls) > consumed {
			r.waited[alias] = consumed + 1
			req := calls[consumed]
			r.mu.Unlock()
			return req, nil
		}
		changed := r.changed
		r.mu.Unlock()

		select {
		case <-changed:
		case <-timer.C:
			return Request{}, &wait.TimeoutError{
				Description: fmt.Sprintf("a request matching mock %q", alias),
				Expected:    fmt.Sprintf("call #%d", consumed+1),
				Observed:    fmt.Sprintf("%d calls", len(calls)),
				Timeout:     timeout,
				Err:         ErrNoCall,
			}
		case <-ctx.Done():
			return Request{}, ctx.Err()
		}
	}
}

// VerifyCalls waits until the alias has exactly expected calls
func (r *Registry) VerifyCalls(ctx context.Context, alias string, expected int) error {
	if _, err := r.Calls(alias); err != nil {
		return err
	}
	return wait.Equal(ctx, wait.Options{Timeout: r.timeout}, fmt.Sprintf("call count of mock %q", alias), expected,
		func(context.Context) (int, error) {
			calls, err := r.Calls(alias)
			return len(calls), err
		})
}

// Calls returns every call the alias received, oldest first
func (r *Registry) Calls(alias string) ([]Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[alias]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlias, alias)
	}
	out := make([]Request, len(r.calls[alias]))
	copy(out, r.calls[alias])
	return out, nil
}

// CallData returns the body of the most recent call to alias
func (r *Registry) CallData(alias string) ([]byte, error) {
	calls, err := r.Calls(alias)
	if err != nil {
		return nil, err
	}
	if len(calls) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCall, alias)
	}
	return calls[len(calls)-1].Body, nil
}

// Aliases returns the registered alias names
func (r *Registry) Aliases() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	return names
}

// Reset removes every rule from the router and forgets all aliases
func (r *Registry) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for alias, rule := range r.rules {
		if err := r.router.Unroute(rule); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove rule %s: %w", alias, err))
		}
	}
	r.rules = make(map[string]*Rule)
	r.calls = make(map[string][]Request)
	r.waited = make(map[string]int)

	return errors.Join(errs...)
}

// Alias is the handle returned for a registered rule
type Alias struct {
	name string
	reg  *Registry
}

// Name returns the alias
func (a *Alias) Name() string {
	return a.name
}

// Wait blocks until the rule receives its next unconsumed call
func (a *Alias) Wait(ctx context.Context, timeout time.Duration) (Request, error) {
	return a.reg.Wait(ctx, a.name, timeout)
}

// Verify waits until the rule has exactly expected calls
func (a *Alias) Verify(ctx context.Context, expected int) error {
	return a.reg.VerifyCalls(ctx, a.name, expected)
}

// Calls returns every call the rule received
func (a *Alias) Calls() ([]Request, error) {
	return a.reg.Calls(a.name)
}

// LastBody returns the body of the most recent call
func (a *Alias) LastBody() ([]byte, error) {
	return a.reg.CallData(a.name)
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
