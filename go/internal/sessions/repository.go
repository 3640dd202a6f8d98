package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/quizhost/go/internal/db"
	"github.com/mcdev12/quizhost/go/internal/models"
	"github.com/mcdev12/quizhost/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetActiveSessionByQuiz(ctx context.Context, quizID uuid.UUID) (db.QuizSession, error)
	InsertActiveSession(ctx context.Context, arg db.InsertActiveSessionParams) (db.QuizSession, error)
	UpdateSession(ctx context.Context, arg db.UpdateSessionParams) (db.QuizSession, error)
	InsertTeamIfMissing(ctx context.Context, arg db.InsertTeamIfMissingParams) error
	ListTeamsBySession(ctx context.Context, sessionID uuid.UUID) ([]db.Team, error)
}

// Repository implements session persistence on Postgres
type Repository struct {
	db      *sql.DB
	queries Querier
}

// NewRepository creates a new sessions repository
func NewRepository(queries *db.Queries, database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: queries,
	}
}

// FindActiveSession returns the active session of a quiz or models.ErrNotFound
func (r *Repository) FindActiveSession(ctx context.Context, quizID uuid.UUID) (*models.Session, error) {
	dbSession, err := r.queries.GetActiveSessionByQuiz(ctx, quizID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active session for quiz %s: %w", quizID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	return dbSessionToModel(dbSession), nil
}

// CreateActiveSession inserts an active session for the quiz. When a
// concurrent request won the race the partial unique index rejects the
// insert and the winner's row is returned instead.
func (r *Repository) CreateActiveSession(ctx context.Context, quizID uuid.UUID, startedAt time.Time) (*models.Session, error) {
	dbSession, err := r.queries.InsertActiveSession(ctx, db.InsertActiveSessionParams{
		ID:        uuid.New(),
		QuizID:    quizID,
		StartedAt: sqlutil.ToSqlTime(&startedAt),
		TimerMode: string(models.TimerModeQuestion),
	})
	if errors.Is(err, sql.ErrNoRows) {
		dbSession, err = r.queries.GetActiveSessionByQuiz(ctx, quizID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return dbSessionToModel(dbSession), nil
}

// UpdateSession writes every mutable session field
func (r *Repository) UpdateSession(ctx context.Context, s *models.Session) (*models.Session, error) {
	for _, v := range []int{s.CurrentQuestionIndex, s.Timer.TotalSeconds, s.Timer.RemainingSeconds} {
		if v > math.MaxInt32 || v < math.MinInt32 {
			return nil, fmt.Errorf("session %s: value %d out of range: %w", s.ID, v, models.ErrInvalidInput)
		}
	}
	dbSession, err := r.queries.UpdateSession(ctx, db.UpdateSessionParams{
		ID:                    s.ID,
		CurrentQuestionIndex:  int32(s.CurrentQuestionIndex),
		StartedAt:             sqlutil.ToSqlTime(s.StartedAt),
		IsActive:              s.IsActive,
		TimerRunning:          s.Timer.Running,
		TimerTotalSeconds:     int32(s.Timer.TotalSeconds),
		TimerRemainingSeconds: int32(s.Timer.RemainingSeconds),
		TimerStartedAt:        sqlutil.ToSqlTime(s.Timer.StartedAt),
		TimerMode:             string(s.Timer.Mode),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", s.ID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return dbSessionToModel(dbSession), nil
}

// EnsureTeams creates any of the fixed teams the session is missing
func (r *Repository) EnsureTeams(ctx context.Context, sessionID uuid.UUID) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) *db.Queries { return db.New(tx) }, func(q *db.Queries) error {
		for _, name := range models.SessionTeams {
			err := q.InsertTeamIfMissing(ctx, db.InsertTeamIfMissingParams{
				ID:        uuid.New(),
				SessionID: sessionID,
				Name:      string(name),
			})
			if err != nil {
				return fmt.Errorf("failed to ensure team %q: %w", name, err)
			}
		}
		return nil
	})
}

// ListTeams returns the session's teams sorted by name
func (r *Repository) ListTeams(ctx context.Context, sessionID uuid.UUID) ([]models.Team, error) {
	dbTeams, err := r.queries.ListTeamsBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	teams := make([]models.Team, len(dbTeams))
	for i, t := range dbTeams {
		teams[i] = DBTeamToModel(t)
	}
	return teams, nil
}

// DBTeamToModel converts a database team row to the domain model
func DBTeamToModel(t db.Team) models.Team {
	return models.Team{
		ID:        t.ID,
		SessionID: t.SessionID,
		Name:      models.TeamName(t.Name),
		Score:     int(t.Score),
	}
}

func dbSessionToModel(s db.QuizSession) *models.Session {
	return &models.Session{
		ID:                   s.ID,
		QuizID:               s.QuizID,
		CurrentQuestionIndex: int(s.CurrentQuestionIndex),
		StartedAt:            sqlutil.FromSqlTime(s.StartedAt),
		IsActive:             s.IsActive,
		Timer: models.TimerState{
			Running:          s.TimerRunning,
			TotalSeconds:     int(s.TimerTotalSeconds),
			RemainingSeconds: int(s.TimerRemainingSeconds),
			StartedAt:        sqlutil.FromSqlTime(s.TimerStartedAt),
			Mode:             models.TimerMode(s.TimerMode),
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
