package dbconfig

import (
	"net/url"
	"testing"
)

func TestDSNEscapesCredentials(t *testing.T) {
	cfg := Config{
		Host:     "db.internal",
		Port:     6543,
		User:     "quiz",
		Password: "p@ss:w/rd",
		Database: "quizhost",
		SSLMode:  "require",
	}

	u, err := url.Parse(cfg.DSN())
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	if pw, _ := u.User.Password(); pw != cfg.Password {
		t.Fatalf("password = %q", pw)
	}
	if u.Host != "db.internal:6543" || u.Path != "/quizhost" {
		t.Fatalf("unexpected dsn %s", u)
	}
	if u.Query().Get("sslmode") != "require" {
		t.Fatalf("sslmode = %q", u.Query().Get("sslmode"))
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "quiz_test")

	cfg, err := NewConfigFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Host != "postgres" || cfg.Port != 5433 || cfg.Database != "quiz_test" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	t.Setenv("DB_PORT", "not-a-port")
	if _, err := NewConfigFromEnv(); err == nil {
		t.Fatal("expected error for malformed DB_PORT")
	}
}
