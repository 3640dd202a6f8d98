package sessions_test

import (
	"context"
	"encoding/json"
	"testing"
)

func TestBuildViewIncludesCurrentQuestionAndTeams(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t, 3)

	if _, err := f.app.NextQuestion(ctx, quiz.ID); err != nil {
		t.Fatalf("next: %v", err)
	}
	view, err := f.app.State(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("state: %v", err)
	}

	if view.CurrentQuestion == nil || view.CurrentQuestion.ID != quiz.Questions[1].ID {
		t.Fatalf("current question = %+v, want %s", view.CurrentQuestion, quiz.Questions[1].ID)
	}
	if view.Quiz == nil || len(view.Quiz.Questions) != 3 {
		t.Fatalf("view quiz = %+v", view.Quiz)
	}
	if len(view.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(view.Teams))
	}
}

func TestBuildViewWithoutQuestions(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t, 0)

	view, err := f.app.State(context.Background(), quiz.ID)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if view.CurrentQuestion != nil {
		t.Fatalf("expected no current question, got %+v", view.CurrentQuestion)
	}

	raw, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{
		"id", "quiz", "current_question_index", "is_active", "timer_mode",
		"timer_total_seconds", "timer_remaining", "timer_running", "started_at",
		"teams", "current_question", "created_at", "updated_at",
	} {
		if _, ok := fields[key]; !ok {
			t.Errorf("view JSON is missing %q", key)
		}
	}
	if string(fields["current_question"]) != "null" {
		t.Fatalf("current_question = %s, want null", fields["current_question"])
	}
}
