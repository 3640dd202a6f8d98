package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const sessionColumns = `id, quiz_id, current_question_index, started_at, is_active,
    timer_running, timer_total_seconds, timer_remaining_seconds, timer_started_at, timer_mode,
    created_at, updated_at`

const getActiveSessionByQuiz = `
SELECT ` + sessionColumns + `
FROM quiz_sessions
WHERE quiz_id = $1 AND is_active
`

func (q *Queries) GetActiveSessionByQuiz(ctx context.Context, quizID uuid.UUID) (QuizSession, error) {
	row := q.db.QueryRowContext(ctx, getActiveSessionByQuiz, quizID)
	return scanSession(row)
}

const insertActiveSession = `
INSERT INTO quiz_sessions (id, quiz_id, started_at, is_active, timer_mode)
VALUES ($1, $2, $3, TRUE, $4)
ON CONFLICT (quiz_id) WHERE is_active DO NOTHING
RETURNING ` + sessionColumns + `
`

type InsertActiveSessionParams struct {
	ID        uuid.UUID
	QuizID    uuid.UUID
	StartedAt sql.NullTime
	TimerMode string
}

// InsertActiveSession returns sql.ErrNoRows when the quiz already has an active session.
func (q *Queries) InsertActiveSession(ctx context.Context, arg InsertActiveSessionParams) (QuizSession, error) {
	row := q.db.QueryRowContext(ctx, insertActiveSession,
		arg.ID,
		arg.QuizID,
		arg.StartedAt,
		arg.TimerMode,
	)
	return scanSession(row)
}

const updateSession = `
UPDATE quiz_sessions SET
    current_question_index = $2,
    started_at = $3,
    is_active = $4,
    timer_running = $5,
    timer_total_seconds = $6,
    timer_remaining_seconds = $7,
    timer_started_at = $8,
    timer_mode = $9,
    updated_at = now()
WHERE id = $1
RETURNING ` + sessionColumns + `
`

type UpdateSessionParams struct {
	ID                    uuid.UUID
	CurrentQuestionIndex  int32
	StartedAt             sql.NullTime
	IsActive              bool
	TimerRunning          bool
	TimerTotalSeconds     int32
	TimerRemainingSeconds int32
	TimerStartedAt        sql.NullTime
	TimerMode             string
}

func (q *Queries) UpdateSession(ctx context.Context, arg UpdateSessionParams) (QuizSession, error) {
	row := q.db.QueryRowContext(ctx, updateSession,
		arg.ID,
		arg.CurrentQuestionIndex,
		arg.StartedAt,
		arg.IsActive,
		arg.TimerRunning,
		arg.TimerTotalSeconds,
		arg.TimerRemainingSeconds,
		arg.TimerStartedAt,
		arg.TimerMode,
	)
	return scanSession(row)
}

func scanSession(row *sql.Row) (QuizSession, error) {
	var i QuizSession
	err := row.Scan(
		&i.ID,
		&i.QuizID,
		&i.CurrentQuestionIndex,
		&i.StartedAt,
		&i.IsActive,
		&i.TimerRunning,
		&i.TimerTotalSeconds,
		&i.TimerRemainingSeconds,
		&i.TimerStartedAt,
		&i.TimerMode,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
