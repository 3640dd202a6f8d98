package main

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mcdev12/quizhost/go/internal/quizzes"
)

func TestSampleFixtureMatchesSampleQuiz(t *testing.T) {
	data, err := os.ReadFile("../../assets/sample_quiz.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	got, err := parseFixtures(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []quizzes.CreateQuizRequest{quizzes.SampleQuiz()}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fixture mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFixturesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing title", "- description: x\n"},
		{"duplicate order", "- title: Q\n  questions:\n    - {order: 1, text: a}\n    - {order: 1, text: b}\n"},
		{"negative order", "- title: Q\n  questions:\n    - {order: -1, text: a}\n"},
		{"not a list", "title: Q\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFixtures([]byte(tt.yaml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
