package sessions

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/quizhost/go/internal/db"
	"github.com/mcdev12/quizhost/go/internal/models"
)

type recordingQuerier struct {
	Querier
	updates []db.UpdateSessionParams
}

func (q *recordingQuerier) UpdateSession(ctx context.Context, arg db.UpdateSessionParams) (db.QuizSession, error) {
	q.updates = append(q.updates, arg)
	return db.QuizSession{
		ID:                    arg.ID,
		CurrentQuestionIndex:  arg.CurrentQuestionIndex,
		IsActive:              arg.IsActive,
		TimerRunning:          arg.TimerRunning,
		TimerTotalSeconds:     arg.TimerTotalSeconds,
		TimerRemainingSeconds: arg.TimerRemainingSeconds,
		TimerMode:             arg.TimerMode,
	}, nil
}

func TestUpdateSessionRejectsValuesOutsideInt32(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *models.Session)
	}{
		{"total", func(s *models.Session) { s.Timer.TotalSeconds = 3000000000 }},
		{"remaining", func(s *models.Session) { s.Timer.RemainingSeconds = 3000000000 }},
		{"index", func(s *models.Session) { s.CurrentQuestionIndex = -3000000000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &recordingQuerier{}
			repo := &Repository{queries: q}
			s := &models.Session{ID: uuid.New(), IsActive: true, Timer: models.DefaultTimerState()}
			tt.mutate(s)

			_, err := repo.UpdateSession(context.Background(), s)
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if len(q.updates) != 0 {
				t.Fatalf("out of range session written: %+v", q.updates)
			}
		})
	}
}

func TestUpdateSessionWritesTimerFields(t *testing.T) {
	q := &recordingQuerier{}
	repo := &Repository{queries: q}
	s := &models.Session{ID: uuid.New(), CurrentQuestionIndex: 2, IsActive: true, Timer: models.TimerState{
		TotalSeconds:     90,
		RemainingSeconds: 45,
		Mode:             models.TimerModeQuiz,
	}}

	got, err := repo.UpdateSession(context.Background(), s)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Timer.TotalSeconds != 90 || got.Timer.RemainingSeconds != 45 || got.CurrentQuestionIndex != 2 {
		t.Fatalf("unexpected session %+v", got)
	}
}
