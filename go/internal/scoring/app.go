package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/mcdev12/quizhost/go/internal/models"
	"github.com/rs/zerolog/log"
)

// ScoreRepository defines what the app layer needs from the repository
type ScoreRepository interface {
	GetTeam(ctx context.Context, sessionID uuid.UUID, name models.TeamName) (*models.Team, error)
	ApplyDelta(ctx context.Context, change ScoreChange) (*models.Team, error)
	ListEvents(ctx context.Context, sessionID uuid.UUID) ([]EventView, error)
}

// SessionResolver returns the active session of a quiz with both teams present
type SessionResolver interface {
	GetOrCreateActiveSession(ctx context.Context, quizID uuid.UUID) (*models.Session, error)
}

// App is the scoring ledger
type App struct {
	repo     ScoreRepository
	sessions SessionResolver
}

// NewApp creates a new scoring App
func NewApp(repo ScoreRepository, sessions SessionResolver) *App {
	return &App{
		repo:     repo,
		sessions: sessions,
	}
}

// ScoreTeamA applies a delta to Team A
func (a *App) ScoreTeamA(ctx context.Context, quizID uuid.UUID, delta int, reason string) (*models.Team, error) {
	return a.ApplyDelta(ctx, quizID, models.TeamA, delta, reason)
}

// ScoreTeamB applies a delta to Team B
func (a *App) ScoreTeamB(ctx context.Context, quizID uuid.UUID, delta int, reason string) (*models.Team, error) {
	return a.ApplyDelta(ctx, quizID, models.TeamB, delta, reason)
}

// ApplyDelta adds delta to the named team's score and records a score
// event atomically. The delta may be negative and zero is recorded too.
func (a *App) ApplyDelta(ctx context.Context, quizID uuid.UUID, teamName models.TeamName, delta int, reason string) (*models.Team, error) {
	if err := validateChange(teamName, delta, reason); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	session, err := a.sessions.GetOrCreateActiveSession(ctx, quizID)
	if err != nil {
		return nil, err
	}

	team, err := a.repo.GetTeam(ctx, session.ID, teamName)
	if err != nil {
		return nil, err
	}

	updated, err := a.repo.ApplyDelta(ctx, ScoreChange{
		QuizID:    quizID,
		SessionID: session.ID,
		TeamID:    team.ID,
		TeamName:  teamName,
		Delta:     delta,
		Reason:    reason,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply score delta: %w", err)
	}

	log.Info().
		Str("quiz_id", quizID.String()).
		Str("session_id", session.ID.String()).
		Str("team", string(teamName)).
		Int("delta", delta).
		Int("score", updated.Score).
		Msg("score changed")
	return updated, nil
}

// ListEvents returns the active session's audit trail, newest first
func (a *App) ListEvents(ctx context.Context, quizID uuid.UUID) ([]EventView, error) {
	session, err := a.sessions.GetOrCreateActiveSession(ctx, quizID)
	if err != nil {
		return nil, err
	}
	events, err := a.repo.ListEvents(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list score events: %w", err)
	}
	return events, nil
}

func validateChange(teamName models.TeamName, delta int, reason string) error {
	if !teamName.Valid() {
		return fmt.Errorf("unknown team %q: %w", teamName, models.ErrNotFound)
	}
	if delta > math.MaxInt32 || delta < math.MinInt32 {
		return fmt.Errorf("delta %d out of range: %w", delta, models.ErrInvalidInput)
	}
	if len([]rune(reason)) > maxReasonLength {
		return fmt.Errorf("reason must be at most %d characters: %w", maxReasonLength, models.ErrInvalidInput)
	}
	return nil
}
