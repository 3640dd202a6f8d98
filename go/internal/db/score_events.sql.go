package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const insertScoreEvent = `
INSERT INTO score_events (id, session_id, team_id, delta, reason)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, session_id, team_id, delta, reason, created_at
`

type InsertScoreEventParams struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	TeamID    uuid.UUID
	Delta     int32
	Reason    string
}

func (q *Queries) InsertScoreEvent(ctx context.Context, arg InsertScoreEventParams) (ScoreEvent, error) {
	row := q.db.QueryRowContext(ctx, insertScoreEvent,
		arg.ID,
		arg.SessionID,
		arg.TeamID,
		arg.Delta,
		arg.Reason,
	)
	var i ScoreEvent
	err := row.Scan(
		&i.ID,
		&i.SessionID,
		&i.TeamID,
		&i.Delta,
		&i.Reason,
		&i.CreatedAt,
	)
	return i, err
}

const listScoreEventsBySession = `
SELECT e.id, e.session_id, e.team_id, e.delta, e.reason, e.created_at,
       t.name AS team_name, t.score AS team_score
FROM score_events e
JOIN teams t ON t.id = e.team_id
WHERE e.session_id = $1
ORDER BY e.created_at DESC, e.id
`

type ListScoreEventsBySessionRow struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	TeamID    uuid.UUID
	Delta     int32
	Reason    string
	CreatedAt time.Time
	TeamName  string
	TeamScore int32
}

func (q *Queries) ListScoreEventsBySession(ctx context.Context, sessionID uuid.UUID) ([]ListScoreEventsBySessionRow, error) {
	rows, err := q.db.QueryContext(ctx, listScoreEventsBySession, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListScoreEventsBySessionRow
	for rows.Next() {
		var i ListScoreEventsBySessionRow
		if err := rows.Scan(
			&i.ID,
			&i.SessionID,
			&i.TeamID,
			&i.Delta,
			&i.Reason,
			&i.CreatedAt,
			&i.TeamName,
			&i.TeamScore,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
