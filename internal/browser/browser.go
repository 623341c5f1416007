// Package browser drives a real browser through Playwright. A Session is both
// the page objects' Driver and a Router for network mocks.
package browser

import (
	"errors"
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"

	"github.com/swaglabs-qa/storefront-e2e/internal/config"
)

// Browser is a launched browser process shared by many sessions
type Browser struct {
	cfg     *config.SuiteConfig
	pw      *playwright.Playwright
	browser playwright.Browser
}

// Launch starts Playwright and the browser named in cfg
func Launch(cfg *config.SuiteConfig) (*Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var bt playwright.BrowserType
	switch cfg.Browser {
	case "firefox":
		bt = pw.Firefox
	case "webkit":
		bt = pw.WebKit
	default:
		bt = pw.Chromium
	}

	b, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", cfg.Browser, err)
	}

	log.Printf("Launched %s (headless=%t) against %s", cfg.Browser, cfg.Headless, cfg.BaseURL)
	return &Browser{cfg: cfg, pw: pw, browser: b}, nil
}

// Config returns the configuration the browser was launched with
func (b *Browser) Config() *config.SuiteConfig {
	return b.cfg
}

// Close shuts the browser and Playwright down
func (b *Browser) Close() error {
	return errors.Join(b.browser.Close(), b.pw.Stop())
}

type sessionOptions struct {
	viewport config.Viewport
	video    bool
}

// SessionOption customizes a new session
type SessionOption func(*sessionOptions)

// WithViewport overrides the configured viewport
func WithViewport(v config.Viewport) SessionOption {
	return func(o *sessionOptions) { o.viewport = v }
}

// NewSession opens a fresh browser context with a single page. Nothing is
// shared with other sessions.
func (b *Browser) NewSession(opts ...SessionOption) (*Session, error) {
	o := sessionOptions{viewport: b.cfg.Viewport, video: b.cfg.RecordVideo}
	for _, opt := range opts {
		opt(&o)
	}

	ctxOpts := playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(b.cfg.BaseURL),
		Viewport: &playwright.Size{
			Width:  o.viewport.Width,
			Height: o.viewport.Height,
		},
	}
	if o.video {
		ctxOpts.RecordVideo = &playwright.RecordVideo{Dir: b.cfg.VideosDir}
	}

	bctx, err := b.browser.NewContext(ctxOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	bctx.SetDefaultTimeout(float64(b.cfg.CommandTimeout.Milliseconds()))
	bctx.SetDefaultNavigationTimeout(float64(b.cfg.PageLoadTimeout.Milliseconds()))

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Session{cfg: b.cfg, bctx: bctx, page: page}, nil
}
