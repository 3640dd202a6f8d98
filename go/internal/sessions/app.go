package sessions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/quizhost/go/internal/models"
	"github.com/mcdev12/quizhost/go/internal/timer"
	"github.com/rs/zerolog/log"
)

// ErrNoCurrentQuestion is returned when reveal is requested but the session
// index points at no question
var ErrNoCurrentQuestion = errors.New("no current question")

// SessionRepository defines what the app layer needs from the repository
type SessionRepository interface {
	FindActiveSession(ctx context.Context, quizID uuid.UUID) (*models.Session, error)
	CreateActiveSession(ctx context.Context, quizID uuid.UUID, startedAt time.Time) (*models.Session, error)
	UpdateSession(ctx context.Context, s *models.Session) (*models.Session, error)
	EnsureTeams(ctx context.Context, sessionID uuid.UUID) error
	ListTeams(ctx context.Context, sessionID uuid.UUID) ([]models.Team, error)
}

// QuizCatalog is the slice of the quiz catalog the controller reads and writes
type QuizCatalog interface {
	GetQuiz(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	CountQuestions(ctx context.Context, quizID uuid.UUID) (int, error)
	QuestionAt(ctx context.Context, quizID uuid.UUID, index int) (*models.Question, error)
	SetReveal(ctx context.Context, questionID uuid.UUID, reveal bool) error
}

// App is the session controller
type App struct {
	repo    SessionRepository
	quizzes QuizCatalog
	timer   *timer.Engine
}

// NewApp creates a new sessions App
func NewApp(repo SessionRepository, quizzes QuizCatalog, engine *timer.Engine) *App {
	if engine == nil {
		engine = timer.NewEngine(nil)
	}
	return &App{
		repo:    repo,
		quizzes: quizzes,
		timer:   engine,
	}
}

// GetOrCreateActiveSession returns the quiz's active session, creating it
// on first touch. Both teams exist once this returns.
func (a *App) GetOrCreateActiveSession(ctx context.Context, quizID uuid.UUID) (*models.Session, error) {
	if _, err := a.quizzes.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}

	session, err := a.repo.FindActiveSession(ctx, quizID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("failed to find session: %w", err)
		}
		session, err = a.repo.CreateActiveSession(ctx, quizID, a.timer.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		log.Info().
			Str("quiz_id", quizID.String()).
			Str("session_id", session.ID.String()).
			Msg("session created")
	}

	if err := a.repo.EnsureTeams(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to ensure teams: %w", err)
	}
	return session, nil
}

// StartSession marks the session active and stamps its start time once
func (a *App) StartSession(ctx context.Context, quizID uuid.UUID) (*models.Session, error) {
	session, err := a.GetOrCreateActiveSession(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if session.IsActive && session.StartedAt != nil {
		return session, nil
	}

	session.IsActive = true
	if session.StartedAt == nil {
		now := a.timer.Now()
		session.StartedAt = &now
	}
	return a.save(ctx, session, "session started")
}

// NextQuestion advances to the next question
func (a *App) NextQuestion(ctx context.Context, quizID uuid.UUID) (*models.Session, error) {
	return a.MoveQuestion(ctx, quizID, 1)
}

// PrevQuestion steps back one question
func (a *App) PrevQuestion(ctx context.Context, quizID uuid.UUID) (*models.Session, error) {
	return a.MoveQuestion(ctx, quizID, -1)
}

// MoveQuestion shifts the current index by delta, clamped to the quiz's
// questions, and hides the answer of the question landed on. Quizzes
// without questions are left untouched.
func (a *App) MoveQuestion(ctx context.Context, quizID uuid.UUID, delta int) (*models.Session, error) {
	session, err := a.GetOrCreateActiveSession(ctx, quizID)
	if err != nil {
		return nil, err
	}

	total, err := a.quizzes.CountQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return session, nil
	}

	session.CurrentQuestionIndex = clamp(session.CurrentQuestionIndex+delta, 0, total-1)

	question, err := a.quizzes.QuestionAt(ctx, quizID, session.CurrentQuestionIndex)
	if err != nil {
		return nil, err
	}
	if err := a.quizzes.SetReveal(ctx, question.ID, false); err != nil {
		return nil, err
	}

	return a.save(ctx, session, "question moved")
}

// SetReveal shows or hides the answer of the current question and returns
// the stored flag.
func (a *App) SetReveal(ctx context.Context, quizID uuid.UUID, reveal bool) (bool, error) {
	session, err := a.GetOrCreateActiveSession(ctx, quizID)
	if err != nil {
		return false, err
	}

	question, err := a.quizzes.QuestionAt(ctx, quizID, session.CurrentQuestionIndex)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, ErrNoCurrentQuestion
		}
		return false, err
	}
	if err := a.quizzes.SetReveal(ctx, question.ID, reveal); err != nil {
		return false, err
	}

	log.Info().
		Str("quiz_id", quizID.String()).
		Str("question_id", question.ID.String()).
		Bool("reveal", reveal).
		Msg("answer reveal changed")
	return reveal, nil
}

// ConfigureTimer sets the countdown total and mode and stops it.
// An unknown mode fails with timer.ErrInvalidMode before anything changes.
// Totals must fit the stored int32 column.
func (a *App) ConfigureTimer(ctx context.Context, quizID uuid.UUID, totalSeconds int, mode string) (*models.Session, error) {
	timerMode, err := timer.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	if totalSeconds > math.MaxInt32 {
		return nil, fmt.Errorf("total_seconds %d out of range: %w", totalSeconds, models.ErrInvalidInput)
	}
	return a.updateTimer(ctx, quizID, "timer configured", func(t *models.TimerState) {
		a.timer.Configure(t, totalSeconds, timerMode)
	})
}

// StartTimer starts or resumes the countdown
func (a *App) StartTimer(ctx context.Context, quizID uuid.UUID) (*models.Session, error) {
	return a.updateTimer(ctx, quizID, "timer started", a.timer.Start)
}

// PauseTimer freezes the countdown
func (a *App) PauseTimer(ctx context.Context, quizID uuid.UUID) (*models.Session, error) {
	return a.updateTimer(ctx, quizID, "timer paused", a.timer.Pause)
}

// ResetTimer stops the countdown and restores the total
func (a *App) ResetTimer(ctx context.Context, quizID uuid.UUID) (*models.Session, error) {
	return a.updateTimer(ctx, quizID, "timer reset", a.timer.Reset)
}

// State returns the view of the quiz's active session
func (a *App) State(ctx context.Context, quizID uuid.UUID) (*SessionView, error) {
	session, err := a.GetOrCreateActiveSession(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return a.BuildView(ctx, session)
}

func (a *App) updateTimer(ctx context.Context, quizID uuid.UUID, msg string, apply func(*models.TimerState)) (*models.Session, error) {
	session, err := a.GetOrCreateActiveSession(ctx, quizID)
	if err != nil {
		return nil, err
	}
	apply(&session.Timer)
	return a.save(ctx, session, msg)
}

func (a *App) save(ctx context.Context, session *models.Session, msg string) (*models.Session, error) {
	updated, err := a.repo.UpdateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	log.Debug().
		Str("quiz_id", updated.QuizID.String()).
		Str("session_id", updated.ID.String()).
		Int("index", updated.CurrentQuestionIndex).
		Bool("timer_running", updated.Timer.Running).
		Int("timer_remaining", updated.Timer.RemainingSeconds).
		Msg(msg)
	return updated, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
