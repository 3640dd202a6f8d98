package quizzes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/quizhost/go/internal/models"
	"github.com/rs/zerolog/log"
)

// maxTitleLength matches the column width of quizzes.title
const maxTitleLength = 255

// QuizRepository defines what the app layer needs from the repository
type QuizRepository interface {
	CreateQuiz(ctx context.Context, req CreateQuizRequest) (*models.Quiz, error)
	GetQuiz(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	ListQuizzes(ctx context.Context) ([]models.Quiz, error)
	CountQuestions(ctx context.Context, quizID uuid.UUID) (int, error)
	GetQuestionAtIndex(ctx context.Context, quizID uuid.UUID, index int) (*models.Question, error)
	SetQuestionReveal(ctx context.Context, questionID uuid.UUID, reveal bool) error
	DeleteQuiz(ctx context.Context, id uuid.UUID) error
}

// App handles the quiz catalog
type App struct {
	repo QuizRepository
}

// NewApp creates a new quizzes App
func NewApp(repo QuizRepository) *App {
	return &App{repo: repo}
}

// CreateQuiz validates and stores a quiz together with its questions
func (a *App) CreateQuiz(ctx context.Context, req CreateQuizRequest) (*models.Quiz, error) {
	if err := validateCreateQuizRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quiz, err := a.repo.CreateQuiz(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	log.Info().
		Str("quiz_id", quiz.ID.String()).
		Str("title", quiz.Title).
		Int("questions", len(quiz.Questions)).
		Msg("created quiz")
	return quiz, nil
}

// GetQuiz retrieves a quiz with its ordered questions
func (a *App) GetQuiz(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	quiz, err := a.repo.GetQuiz(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	sortQuestions(quiz.Questions)
	return quiz, nil
}

// ListQuizzes retrieves all quizzes
func (a *App) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	quizzes, err := a.repo.ListQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	for i := range quizzes {
		sortQuestions(quizzes[i].Questions)
	}
	return quizzes, nil
}

// CountQuestions returns the number of questions in a quiz
func (a *App) CountQuestions(ctx context.Context, quizID uuid.UUID) (int, error) {
	count, err := a.repo.CountQuestions(ctx, quizID)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// QuestionAt returns the question at a 0-based index in quiz order.
// Out-of-range indexes yield models.ErrNotFound.
func (a *App) QuestionAt(ctx context.Context, quizID uuid.UUID, index int) (*models.Question, error) {
	question, err := a.repo.GetQuestionAtIndex(ctx, quizID, index)
	if err != nil {
		return nil, fmt.Errorf("failed to get question at %d: %w", index, err)
	}
	return question, nil
}

// SetReveal stores the reveal flag on a question
func (a *App) SetReveal(ctx context.Context, questionID uuid.UUID, reveal bool) error {
	if err := a.repo.SetQuestionReveal(ctx, questionID, reveal); err != nil {
		return fmt.Errorf("failed to set reveal: %w", err)
	}
	return nil
}

// DeleteQuiz removes a quiz along with everything it owns
func (a *App) DeleteQuiz(ctx context.Context, id uuid.UUID) error {
	if err := a.repo.DeleteQuiz(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	log.Info().Str("quiz_id", id.String()).Msg("deleted quiz")
	return nil
}

func validateCreateQuizRequest(req CreateQuizRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fmt.Errorf("title is required: %w", models.ErrInvalidInput)
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("title must be at most %d characters: %w", maxTitleLength, models.ErrInvalidInput)
	}

	seen := make(map[int]struct{}, len(req.Questions))
	for i, q := range req.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("question %d: text is required: %w", i, models.ErrInvalidInput)
		}
		if q.Order < 0 {
			return fmt.Errorf("question %d: order must not be negative: %w", i, models.ErrInvalidInput)
		}
		if _, dup := seen[q.Order]; dup {
			return fmt.Errorf("question %d: duplicate order %d: %w", i, q.Order, models.ErrInvalidInput)
		}
		seen[q.Order] = struct{}{}
	}
	return nil
}
