package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrReportingDisabled is returned when no report database is configured
var ErrReportingDisabled = errors.New("result reporting disabled: POSTGRES_HOSTNAME not set")

// PostgresConfig holds configuration for the run report database
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	Port     string
	SSLMode  string
	Schema   string
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables.
// Reporting is optional: without a host it returns ErrReportingDisabled.
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
		Port:     valueOr(getenv("POSTGRES_PORT"), "5432"),
		SSLMode:  valueOr(getenv("POSTGRES_SSLMODE"), "disable"),
		Schema:   getenv("POSTGRES_SCHEMA"),
	}

	if config.Host == "" {
		return nil, ErrReportingDisabled
	}

	// Validate required fields
	if config.User == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	if config.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("POSTGRES_DB is required")
	}

	return config, nil
}

// ConnectionString returns a PostgreSQL connection URL
func (c *PostgresConfig) ConnectionString() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:   c.Database,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	if c.Schema != "" {
		q.Set("search_path", c.Schema)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
