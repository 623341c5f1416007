package config

import "fmt"

// ServerConfig holds configuration for the local fake REST API server
type ServerConfig struct {
	Port          string
	RequireAPIKey bool
	APIKey        string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) (ServerConfig, error) {
	config := ServerConfig{
		Port:   valueOr(getenv("PORT"), "8080"), // Default to port 8080
		APIKey: valueOr(getenv("REQRES_API_KEY"), "reqres-free-v1"),
	}

	requireKey, err := parseBool(getenv, "REQUIRE_API_KEY", false)
	if err != nil {
		return config, err
	}
	config.RequireAPIKey = requireKey

	return config, nil
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}
