package models

import (
	"time"

	"github.com/google/uuid"
)

// TimerMode tells clients whether the countdown covers one question or the whole quiz.
type TimerMode string

const (
	TimerModeQuestion TimerMode = "question"
	TimerModeQuiz     TimerMode = "quiz"
)

// TimerState is the persisted countdown of a session.
// RemainingSeconds is a snapshot; while Running the live value is derived
// from StartedAt.
type TimerState struct {
	Running          bool       `json:"timer_running"`
	TotalSeconds     int        `json:"timer_total_seconds"`
	RemainingSeconds int        `json:"timer_remaining_seconds"`
	StartedAt        *time.Time `json:"timer_started_at,omitempty"`
	Mode             TimerMode  `json:"timer_mode"`
}

// DefaultTimerState is the timer of a freshly created session.
func DefaultTimerState() TimerState {
	return TimerState{Mode: TimerModeQuestion}
}

// Session is one live run of a quiz.
type Session struct {
	ID                   uuid.UUID  `json:"id"`
	QuizID               uuid.UUID  `json:"quiz_id"`
	CurrentQuestionIndex int        `json:"current_question_index"`
	StartedAt            *time.Time `json:"started_at,omitempty"`
	IsActive             bool       `json:"is_active"`
	Timer                TimerState `json:"timer"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
