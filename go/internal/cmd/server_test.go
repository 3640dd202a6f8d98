package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mcdev12/quizhost/go/internal/config"
)

func memoryConfig() *Config {
	return &Config{Server: config.Server{
		Port:                 8080,
		StoreDriver:          config.StoreDriverMemory,
		CORSAllowedOrigins:   []string{"http://localhost:3000"},
		CORSAllowCredentials: true,
	}}
}

func TestServerAppliesCORS(t *testing.T) {
	cfg := memoryConfig()
	stores, err := setupStores(context.Background(), cfg)
	if err != nil {
		t.Fatalf("stores: %v", err)
	}
	server := setupServer(cfg.Server, setupServices(stores))

	req := httptest.NewRequest(http.MethodGet, "/api/health/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestSeedSampleQuizOnce(t *testing.T) {
	ctx := context.Background()
	stores, err := setupStores(ctx, memoryConfig())
	if err != nil {
		t.Fatalf("stores: %v", err)
	}
	services := setupServices(stores)

	for i := 0; i < 2; i++ {
		if err := seedSampleQuiz(ctx, services); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	list, err := services.Quizzes.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || len(list[0].Questions) != 3 {
		t.Fatalf("unexpected quizzes %+v", list)
	}
}
