package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadSuiteConfig_Defaults(t *testing.T) {
	cfg, err := LoadSuiteConfig(envOf(nil))
	if err != nil {
		t.Fatalf("LoadSuiteConfig() error = %v", err)
	}

	if cfg.BaseURL != "https://www.saucedemo.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if !cfg.Headless {
		t.Error("Headless should default to true")
	}
	if cfg.Viewport != ViewportDesktop {
		t.Errorf("Viewport = %+v, want %+v", cfg.Viewport, ViewportDesktop)
	}
	if cfg.CommandTimeout != 10*time.Second {
		t.Errorf("CommandTimeout = %v", cfg.CommandTimeout)
	}
	if cfg.PageLoadTimeout != 30*time.Second {
		t.Errorf("PageLoadTimeout = %v", cfg.PageLoadTimeout)
	}
	if cfg.RequestTimeout != 10*time.Second || cfg.ResponseTimeout != 10*time.Second {
		t.Errorf("network timeouts = %v/%v", cfg.RequestTimeout, cfg.ResponseTimeout)
	}
	if cfg.ScreenshotsDir != "artifacts/screenshots" || cfg.VideosDir != "artifacts/videos" {
		t.Errorf("artifact dirs = %q/%q", cfg.ScreenshotsDir, cfg.VideosDir)
	}
	if cfg.RecordVideo {
		t.Error("RecordVideo should default to false")
	}
}

func TestLoadSuiteConfig_Overrides(t *testing.T) {
	cfg, err := LoadSuiteConfig(envOf(map[string]string{
		"BASE_URL":          "http://localhost:3000/",
		"HEADLESS":          "false",
		"BROWSER":           "firefox",
		"VIEWPORT_WIDTH":    "375",
		"VIEWPORT_HEIGHT":   "667",
		"COMMAND_TIMEOUT":   "4000",
		"PAGE_LOAD_TIMEOUT": "45s",
	}))
	if err != nil {
		t.Fatalf("LoadSuiteConfig() error = %v", err)
	}

	if cfg.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL should drop trailing slash, got %q", cfg.BaseURL)
	}
	if cfg.Headless {
		t.Error("Headless should be false")
	}
	if cfg.Viewport != ViewportMobile {
		t.Errorf("Viewport = %+v", cfg.Viewport)
	}
	if cfg.CommandTimeout != 4*time.Second {
		t.Errorf("CommandTimeout = %v", cfg.CommandTimeout)
	}
	if cfg.PageLoadTimeout != 45*time.Second {
		t.Errorf("PageLoadTimeout = %v", cfg.PageLoadTimeout)
	}
	if got := cfg.URL("/cart.html"); got != "http://localhost:3000/cart.html" {
		t.Errorf("URL() = %q", got)
	}
}

func TestLoadSuiteConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "bad boolean", env: map[string]string{"HEADLESS": "maybe"}, want: "HEADLESS"},
		{name: "zero width", env: map[string]string{"VIEWPORT_WIDTH": "0"}, want: "VIEWPORT_WIDTH"},
		{name: "bad duration", env: map[string]string{"COMMAND_TIMEOUT": "soon"}, want: "COMMAND_TIMEOUT"},
		{name: "negative ms", env: map[string]string{"REQUEST_TIMEOUT": "-5"}, want: "REQUEST_TIMEOUT"},
		{name: "unknown browser", env: map[string]string{"BROWSER": "lynx"}, want: "BROWSER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSuiteConfig(envOf(tt.env))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %s", err, tt.want)
			}
		})
	}
}

func TestLoadAPIConfig(t *testing.T) {
	cfg, err := LoadAPIConfig(envOf(nil))
	if err != nil {
		t.Fatalf("LoadAPIConfig() error = %v", err)
	}
	if cfg.BaseURL != "https://reqres.in/api" || cfg.APIKey != "reqres-free-v1" {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	cfg, err = LoadAPIConfig(envOf(map[string]string{"REQRES_BASE_URL": "http://127.0.0.1:8080/api/"}))
	if err != nil {
		t.Fatalf("LoadAPIConfig() error = %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:8080/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoadServerConfig(t *testing.T) {
	cfg, err := LoadServerConfig(envOf(nil))
	if err != nil {
		t.Fatalf("LoadServerConfig() error = %v", err)
	}
	if cfg.Port != "8080" || cfg.RequireAPIKey {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}

	if _, err := LoadServerConfig(envOf(map[string]string{"REQUIRE_API_KEY": "nope"})); err == nil {
		t.Error("expected error for invalid REQUIRE_API_KEY")
	}
}

func TestLoadPostgresConfig(t *testing.T) {
	_, err := LoadPostgresConfig(envOf(nil))
	if !errors.Is(err, ErrReportingDisabled) {
		t.Fatalf("expected ErrReportingDisabled, got %v", err)
	}

	_, err = LoadPostgresConfig(envOf(map[string]string{"POSTGRES_HOSTNAME": "db"}))
	if err == nil || !strings.Contains(err.Error(), "POSTGRES_USER") {
		t.Errorf("expected missing user error, got %v", err)
	}

	cfg, err := LoadPostgresConfig(envOf(map[string]string{
		"POSTGRES_HOSTNAME": "db",
		"POSTGRES_USER":     "qa",
		"POSTGRES_PASSWORD": "p@ss",
		"POSTGRES_DB":       "reports",
		"POSTGRES_SCHEMA":   "runs",
	}))
	if err != nil {
		t.Fatalf("LoadPostgresConfig() error = %v", err)
	}
	want := "postgres://qa:p%40ss@db:5432/reports?search_path=runs&sslmode=disable"
	if got := cfg.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
