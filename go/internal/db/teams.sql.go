package db

import (
	"context"

	"github.com/google/uuid"
)

const getTeamBySessionAndName = `
SELECT id, session_id, name, score FROM teams WHERE session_id = $1 AND name = $2
`

type GetTeamBySessionAndNameParams struct {
	SessionID uuid.UUID
	Name      string
}

func (q *Queries) GetTeamBySessionAndName(ctx context.Context, arg GetTeamBySessionAndNameParams) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamBySessionAndName, arg.SessionID, arg.Name)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.SessionID,
		&i.Name,
		&i.Score,
	)
	return i, err
}

const incrementTeamScore = `
UPDATE teams SET score = score + $2 WHERE id = $1
RETURNING id, session_id, name, score
`

type IncrementTeamScoreParams struct {
	ID    uuid.UUID
	Delta int32
}

func (q *Queries) IncrementTeamScore(ctx context.Context, arg IncrementTeamScoreParams) (Team, error) {
	row := q.db.QueryRowContext(ctx, incrementTeamScore, arg.ID, arg.Delta)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.SessionID,
		&i.Name,
		&i.Score,
	)
	return i, err
}

const insertTeamIfMissing = `
INSERT INTO teams (id, session_id, name, score)
VALUES ($1, $2, $3, 0)
ON CONFLICT (session_id, name) DO NOTHING
`

type InsertTeamIfMissingParams struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Name      string
}

func (q *Queries) InsertTeamIfMissing(ctx context.Context, arg InsertTeamIfMissingParams) error {
	_, err := q.db.ExecContext(ctx, insertTeamIfMissing, arg.ID, arg.SessionID, arg.Name)
	return err
}

const listTeamsBySession = `
SELECT id, session_id, name, score FROM teams WHERE session_id = $1 ORDER BY name
`

func (q *Queries) ListTeamsBySession(ctx context.Context, sessionID uuid.UUID) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeamsBySession, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(
			&i.ID,
			&i.SessionID,
			&i.Name,
			&i.Score,
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
