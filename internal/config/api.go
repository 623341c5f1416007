package config

import (
	"strings"
	"time"
)

// APIConfig holds configuration for the fake REST API suite
type APIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// LoadAPIConfig loads REST API configuration from environment variables
func LoadAPIConfig(getenv func(string) string) (*APIConfig, error) {
	config := &APIConfig{
		BaseURL: strings.TrimRight(valueOr(getenv("REQRES_BASE_URL"), "https://reqres.in/api"), "/"),
		APIKey:  valueOr(getenv("REQRES_API_KEY"), "reqres-free-v1"),
	}

	var err error
	if config.Timeout, err = parseDuration(getenv, "RESPONSE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	return config, nil
}
