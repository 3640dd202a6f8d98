package config

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLoadServerDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "STORE_DRIVER", "CORS_ALLOWED_ORIGINS", "CORS_ALLOW_CREDENTIALS",
		"LOG_LEVEL", "LOG_FORMAT", "SEED_SAMPLE_QUIZ",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Server{
		Port:                 8080,
		StoreDriver:          StoreDriverPostgres,
		CORSAllowedOrigins:   []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		CORSAllowCredentials: true,
		LogLevel:             "info",
		LogFormat:            "console",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr())
	}
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://quiz.example.com")
	t.Setenv("SEED_SAMPLE_QUIZ", "true")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 || cfg.StoreDriver != StoreDriverMemory || !cfg.SeedSampleQuiz || cfg.LogFormat != "json" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if diff := cmp.Diff([]string{"https://quiz.example.com"}, cfg.CORSAllowedOrigins); diff != "" {
		t.Fatalf("origins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadServerRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"non-numeric port", "PORT", "eighty"},
		{"port out of range", "PORT", "70000"},
		{"unknown driver", "STORE_DRIVER", "sqlite"},
		{"bad bool", "SEED_SAMPLE_QUIZ", "maybe"},
		{"unknown log format", "LOG_FORMAT", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadServer(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestSetupLoggerJSON(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	SetupLoggerTo(&buf, "warn", "json")
	log.Info().Msg("hidden")
	log.Warn().Str("quiz_id", "q1").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, `"quiz_id":"q1"`) {
		t.Fatalf("expected structured field in %s", out)
	}
}
