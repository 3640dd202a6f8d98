package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/quizhost/go/internal/models"
)

// SessionView is the read projection returned to moderator clients.
type SessionView struct {
	ID                   uuid.UUID        `json:"id"`
	Quiz                 *models.Quiz     `json:"quiz"`
	CurrentQuestionIndex int              `json:"current_question_index"`
	IsActive             bool             `json:"is_active"`
	TimerMode            models.TimerMode `json:"timer_mode"`
	TimerTotalSeconds    int              `json:"timer_total_seconds"`
	TimerRemaining       int              `json:"timer_remaining"`
	TimerRunning         bool             `json:"timer_running"`
	StartedAt            *time.Time       `json:"started_at"`
	Teams                []models.Team    `json:"teams"`
	CurrentQuestion      *models.Question `json:"current_question"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// BuildView projects a session with its quiz, teams and live timer value.
// It reads only.
func (a *App) BuildView(ctx context.Context, session *models.Session) (*SessionView, error) {
	quiz, err := a.quizzes.GetQuiz(ctx, session.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz for view: %w", err)
	}
	teams, err := a.repo.ListTeams(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for view: %w", err)
	}

	var current *models.Question
	if i := session.CurrentQuestionIndex; i >= 0 && i < len(quiz.Questions) {
		q := quiz.Questions[i]
		current = &q
	}

	return &SessionView{
		ID:                   session.ID,
		Quiz:                 quiz,
		CurrentQuestionIndex: session.CurrentQuestionIndex,
		IsActive:             session.IsActive,
		TimerMode:            session.Timer.Mode,
		TimerTotalSeconds:    session.Timer.TotalSeconds,
		TimerRemaining:       a.timer.Remaining(session.Timer),
		TimerRunning:         session.Timer.Running,
		StartedAt:            session.StartedAt,
		Teams:                teams,
		CurrentQuestion:      current,
		CreatedAt:            session.CreatedAt,
		UpdatedAt:            session.UpdatedAt,
	}, nil
}
