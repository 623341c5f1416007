package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Viewport is a browser window size in CSS pixels
type Viewport struct {
	Width  int
	Height int
}

// Viewport presets used by the responsive specs
var (
	ViewportMobile  = Viewport{Width: 375, Height: 667}
	ViewportTablet  = Viewport{Width: 768, Height: 1024}
	ViewportDesktop = Viewport{Width: 1280, Height: 720}
)

// SuiteConfig holds everything the browser specs need at startup
type SuiteConfig struct {
	BaseURL         string
	Browser         string
	Headless        bool
	Viewport        Viewport
	CommandTimeout  time.Duration
	PageLoadTimeout time.Duration
	RequestTimeout  time.Duration
	ResponseTimeout time.Duration
	PollInterval    time.Duration
	ScreenshotsDir  string
	VideosDir       string
	RecordVideo     bool
}

// LoadSuiteConfig loads suite configuration from environment variables
func LoadSuiteConfig(getenv func(string) string) (*SuiteConfig, error) {
	config := &SuiteConfig{
		BaseURL:        strings.TrimRight(valueOr(getenv("BASE_URL"), "https://www.saucedemo.com"), "/"),
		Browser:        valueOr(getenv("BROWSER"), "chromium"),
		ScreenshotsDir: valueOr(getenv("SCREENSHOTS_DIR"), "artifacts/screenshots"),
		VideosDir:      valueOr(getenv("VIDEOS_DIR"), "artifacts/videos"),
	}

	var err error
	if config.Headless, err = parseBool(getenv, "HEADLESS", true); err != nil {
		return nil, err
	}
	if config.RecordVideo, err = parseBool(getenv, "RECORD_VIDEO", false); err != nil {
		return nil, err
	}
	if config.Viewport.Width, err = parsePositiveInt(getenv, "VIEWPORT_WIDTH", ViewportDesktop.Width); err != nil {
		return nil, err
	}
	if config.Viewport.Height, err = parsePositiveInt(getenv, "VIEWPORT_HEIGHT", ViewportDesktop.Height); err != nil {
		return nil, err
	}

	durations := []struct {
		key    string
		target *time.Duration
		def    time.Duration
	}{
		{"COMMAND_TIMEOUT", &config.CommandTimeout, 10 * time.Second},
		{"PAGE_LOAD_TIMEOUT", &config.PageLoadTimeout, 30 * time.Second},
		{"REQUEST_TIMEOUT", &config.RequestTimeout, 10 * time.Second},
		{"RESPONSE_TIMEOUT", &config.ResponseTimeout, 10 * time.Second},
		{"POLL_INTERVAL", &config.PollInterval, 100 * time.Millisecond},
	}
	for _, d := range durations {
		if *d.target, err = parseDuration(getenv, d.key, d.def); err != nil {
			return nil, err
		}
	}

	switch config.Browser {
	case "chromium", "firefox", "webkit":
	default:
		return nil, fmt.Errorf("BROWSER must be chromium, firefox or webkit, got %q", config.Browser)
	}

	return config, nil
}

// URL joins path onto the base URL
func (c *SuiteConfig) URL(path string) string {
	if path == "" || path == "/" {
		return c.BaseURL + "/"
	}
	return c.BaseURL + "/" + strings.TrimLeft(path, "/")
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseBool(getenv func(string) string, key string, def bool) (bool, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return v, nil
}

func parsePositiveInt(getenv func(string) string, key string, def int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return v, nil
}

// parseDuration accepts Go durations ("10s") or bare milliseconds ("10000")
func parseDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		if ms <= 0 {
			return 0, fmt.Errorf("%s must be positive, got %q", key, raw)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return v, nil
}
