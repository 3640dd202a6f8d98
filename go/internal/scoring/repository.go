package scoring

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/mcdev12/quizhost/go/internal/db"
	"github.com/mcdev12/quizhost/go/internal/models"
	"github.com/mcdev12/quizhost/go/internal/outbox"
	"github.com/mcdev12/quizhost/go/internal/sessions"
	"github.com/mcdev12/quizhost/go/internal/sqlutil"
)

const outboxSource = "quizhost-api"

// Repository implements the scoring ledger on Postgres
type Repository struct {
	db      *sql.DB
	queries *db.Queries
}

// NewRepository creates a new scoring repository
func NewRepository(queries *db.Queries, database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: queries,
	}
}

// GetTeam finds a session team by name
func (r *Repository) GetTeam(ctx context.Context, sessionID uuid.UUID, name models.TeamName) (*models.Team, error) {
	dbTeam, err := r.queries.GetTeamBySessionAndName(ctx, db.GetTeamBySessionAndNameParams{
		SessionID: sessionID,
		Name:      string(name),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("team %q: %w", name, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	team := sessions.DBTeamToModel(dbTeam)
	return &team, nil
}

// ApplyDelta increments the team score, appends the audit event and the
// outbox row in a single transaction
func (r *Repository) ApplyDelta(ctx context.Context, change ScoreChange) (*models.Team, error) {
	var team models.Team
	err := sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		dbTeam, err := q.IncrementTeamScore(ctx, db.IncrementTeamScoreParams{
			ID:    change.TeamID,
			Delta: int32(change.Delta),
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("team %s: %w", change.TeamID, models.ErrNotFound)
			}
			return fmt.Errorf("failed to increment score: %w", err)
		}

		event, err := q.InsertScoreEvent(ctx, db.InsertScoreEventParams{
			ID:        uuid.New(),
			SessionID: change.SessionID,
			TeamID:    change.TeamID,
			Delta:     int32(change.Delta),
			Reason:    change.Reason,
		})
		if err != nil {
			return fmt.Errorf("failed to insert score event: %w", err)
		}

		team = sessions.DBTeamToModel(dbTeam)
		payload, err := json.Marshal(outbox.ScoreChangedPayload{
			QuizID:     change.QuizID.String(),
			SessionID:  change.SessionID.String(),
			TeamID:     team.ID.String(),
			TeamName:   string(team.Name),
			Delta:      change.Delta,
			Score:      team.Score,
			Reason:     change.Reason,
			ScoreEvent: event.ID.String(),
			OccurredAt: event.CreatedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal outbox payload: %w", err)
		}
		metadata, err := json.Marshal(outbox.Metadata{
			Source:    outboxSource,
			RequestID: middleware.GetReqID(ctx),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal outbox metadata: %w", err)
		}

		err = q.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
			ID:        uuid.New(),
			SessionID: change.SessionID,
			EventType: outbox.EventTypeScoreChanged,
			Payload:   payload,
			Metadata:  sqlutil.ToNullRawMessage(metadata),
		})
		if err != nil {
			return fmt.Errorf("failed to insert outbox event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// ListEvents returns the session's score events, newest first
func (r *Repository) ListEvents(ctx context.Context, sessionID uuid.UUID) ([]EventView, error) {
	rows, err := r.queries.ListScoreEventsBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list score events: %w", err)
	}

	events := make([]EventView, len(rows))
	for i, row := range rows {
		events[i] = EventView{
			ID: row.ID,
			Team: models.Team{
				ID:        row.TeamID,
				SessionID: row.SessionID,
				Name:      models.TeamName(row.TeamName),
				Score:     int(row.TeamScore),
			},
			Delta:     int(row.Delta),
			Reason:    row.Reason,
			CreatedAt: row.CreatedAt,
		}
	}
	return events, nil
}
