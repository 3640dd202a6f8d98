package db

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "up and down",
			content: "-- +migrate Up\nCREATE TABLE a();\n-- +migrate Down\nDROP TABLE a;",
			want:    "CREATE TABLE a();",
		},
		{
			name:    "up only",
			content: "-- +migrate Up\nCREATE TABLE b();",
			want:    "CREATE TABLE b();",
		},
		{
			name:    "no markers",
			content: "CREATE TABLE c();",
			want:    "CREATE TABLE c();",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.TrimSpace(ExtractUpMigration(tt.content))
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMigrationNamesSortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_b.sql":      &fstest.MapFile{Data: []byte("SELECT 2;")},
		"0001_a.sql":      &fstest.MapFile{Data: []byte("SELECT 1;")},
		"README.md":       &fstest.MapFile{Data: []byte("notes")},
		"nested/0003.sql": &fstest.MapFile{Data: []byte("SELECT 3;")},
	}

	names, err := MigrationNames(fsys)
	if err != nil {
		t.Fatalf("migration names: %v", err)
	}
	if len(names) != 2 || names[0] != "0001_a.sql" || names[1] != "0002_b.sql" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestEmbeddedMigrationsDefineSchema(t *testing.T) {
	names, err := MigrationNames(Migrations())
	if err != nil {
		t.Fatalf("migration names: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("expected embedded migrations")
	}

	var all strings.Builder
	for _, name := range names {
		data, err := fs.ReadFile(Migrations(), name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		all.WriteString(ExtractUpMigration(string(data)))
	}
	for _, table := range []string{"quizzes", "questions", "quiz_sessions", "teams", "score_events", "quiz_outbox"} {
		if !strings.Contains(all.String(), "CREATE TABLE IF NOT EXISTS "+table+" ") {
			t.Fatalf("expected migration for table %s", table)
		}
	}
	if !strings.Contains(all.String(), "WHERE is_active") {
		t.Fatal("expected partial unique index on active sessions")
	}
}

func TestApplyMigrationsRequiresDB(t *testing.T) {
	if err := ApplyMigrations(context.Background(), nil, Migrations()); err == nil {
		t.Fatal("expected error for nil db")
	}
}
