package browser

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/swaglabs-qa/storefront-e2e/internal/config"
	"github.com/swaglabs-qa/storefront-e2e/internal/mocks"
	"github.com/swaglabs-qa/storefront-e2e/internal/wait"
)

// Session is one isolated browser context and its page
type Session struct {
	cfg  *config.SuiteConfig
	bctx playwright.BrowserContext
	page playwright.Page

	mu        sync.RWMutex
	rules     []*mocks.Rule
	routed    bool
	pending   sync.WaitGroup
	closeOnce sync.Once
}

// Page exposes the underlying Playwright page
func (s *Session) Page() playwright.Page {
	return s.page
}

// WaitOptions returns the polling options matching the session timeouts
func (s *Session) WaitOptions() wait.Options {
	return wait.Options{Timeout: s.cfg.CommandTimeout, Interval: s.cfg.PollInterval}
}

func (s *Session) target(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return s.cfg.URL(path)
}

// Navigate opens path relative to the base URL and waits for the load event
func (s *Session) Navigate(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.page.Goto(s.target(path))
	return err
}

// URL returns the current page URL
func (s *Session) URL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.page.URL(), nil
}

// Title returns the document title
func (s *Session) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.page.Title()
}

// Click clicks the first element matching selector
func (s *Session) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.page.Locator(selector).First().Click()
}

// Fill replaces the field value. An empty value clears the field.
func (s *Session) Fill(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.page.Locator(selector).First().Fill(value)
}

// SelectOption picks value in the first select matching selector
func (s *Session) SelectOption(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.page.Locator(selector).First().SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	return err
}

// Count returns how many elements match selector
func (s *Session) Count(ctx context.Context, selector string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.page.Locator(selector).Count()
}

// IsVisible reports whether the first match is visible
func (s *Session) IsVisible(ctx context.Context, selector string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.page.Locator(selector).First().IsVisible()
}

// Texts returns the inner text of every match
func (s *Session) Texts(ctx context.Context, selector string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.page.Locator(selector).AllInnerTexts()
}

// Attribute reads name from the first match
func (s *Session) Attribute(ctx context.Context, selector, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.page.Locator(selector).First().GetAttribute(name)
}

// Back navigates back in history
func (s *Session) Back(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.page.GoBack()
	return err
}

// Forward navigates forward in history
func (s *Session) Forward(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.page.GoForward()
	return err
}

// Reload reloads the page
func (s *Session) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.page.Reload()
	return err
}

// SetViewport resizes the page
func (s *Session) SetViewport(v config.Viewport) error {
	return s.page.SetViewportSize(v.Width, v.Height)
}

// Screenshot saves a full page screenshot under the configured directory and
// returns its path
func (s *Session) Screenshot(name string) (string, error) {
	if err := os.MkdirAll(s.cfg.ScreenshotsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshots dir: %w", err)
	}
	path := filepath.Join(s.cfg.ScreenshotsDir, sanitize(name)+".png")
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("failed to take screenshot: %w", err)
	}
	return path, nil
}

// Close closes the context, flushing any recorded video
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.bctx.Close()
		s.pending.Wait()
	})
	return err
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':', '"', '<', '>', '|', '?', '*':
			return '_'
		}
		return r
	}, name)
}

// Route installs a mock rule. The first rule makes the context intercept
// every URL any rule matches.
func (s *Session) Route(rule *mocks.Rule) error {
	s.mu.Lock()
	s.rules = append(s.rules, rule)
	install := !s.routed
	s.routed = true
	s.mu.Unlock()

	if !install {
		return nil
	}
	matcher := func(url string) bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for _, r := range s.rules {
			if r.Regexp().MatchString(url) {
				return true
			}
		}
		return false
	}
	return s.bctx.Route(matcher, s.intercept)
}

// Unroute removes a mock rule
func (s *Session) Unroute(rule *mocks.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rules {
		if r == rule {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Session) match(method, url string) *mocks.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.rules) - 1; i >= 0; i-- {
		if s.rules[i].Matches(method, url) {
			return s.rules[i]
		}
	}
	return nil
}

func (s *Session) intercept(route playwright.Route) {
	req := route.Request()
	rule := s.match(req.Method(), req.URL())
	if rule == nil {
		_ = route.Fallback()
		return
	}

	body, _ := req.PostDataBuffer()
	header := make(http.Header)
	for k, v := range req.Headers() {
		header.Set(k, v)
	}

	reply := rule.Handler(mocks.Request{
		Method: req.Method(),
		URL:    req.URL(),
		Header: header,
		Body:   body,
		Time:   time.Now(),
	})

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := respond(route, reply); err != nil {
			log.Printf("mock %s failed to answer %s %s: %v", rule.Alias, req.Method(), req.URL(), err)
		}
	}()
}

func respond(route playwright.Route, reply mocks.Reply) error {
	if reply.Delay > 0 {
		time.Sleep(reply.Delay)
	}

	switch {
	case reply.NoResponse:
		return nil
	case reply.NetworkError:
		return route.Abort("failed")
	case reply.Passthrough:
		return route.Continue()
	}

	payload, contentType, err := reply.Encode()
	if err != nil {
		return err
	}
	return route.Fulfill(playwright.RouteFulfillOptions{
		Status:      playwright.Int(reply.StatusCode()),
		Body:        payload,
		ContentType: playwright.String(contentType),
		Headers:     reply.Headers,
	})
}
