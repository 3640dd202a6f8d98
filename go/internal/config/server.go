package config

import (
	"fmt"
	"strings"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Server holds the API server settings.
type Server struct {
	Port                 int      `env:"PORT"                   envDefault:"8080"`
	StoreDriver          string   `env:"STORE_DRIVER"           envDefault:"postgres"`
	CORSAllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	CORSAllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	LogLevel             string   `env:"LOG_LEVEL"              envDefault:"info"`
	LogFormat            string   `env:"LOG_FORMAT"             envDefault:"console"`
	SeedSampleQuiz       bool     `env:"SEED_SAMPLE_QUIZ"       envDefault:"false"`
}

// LoadServer parses and validates the server configuration.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot.
func (c Server) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, c.StoreDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Server) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
