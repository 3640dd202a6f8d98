package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type Quiz struct {
	ID          uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
}

type Question struct {
	ID           uuid.UUID
	QuizID       uuid.UUID
	Position     int32
	Text         string
	Answer       string
	RevealAnswer bool
}

type QuizSession struct {
	ID                    uuid.UUID
	QuizID                uuid.UUID
	CurrentQuestionIndex  int32
	StartedAt             sql.NullTime
	IsActive              bool
	TimerRunning          bool
	TimerTotalSeconds     int32
	TimerRemainingSeconds int32
	TimerStartedAt        sql.NullTime
	TimerMode             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type Team struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Name      string
	Score     int32
}

type ScoreEvent struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	TeamID    uuid.UUID
	Delta     int32
	Reason    string
	CreatedAt time.Time
}

type QuizOutbox struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	EventType string
	Payload   json.RawMessage
	Metadata  pqtype.NullRawMessage
	CreatedAt time.Time
	SentAt    sql.NullTime
}
