package quizzes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/quizhost/go/internal/db"
	"github.com/mcdev12/quizhost/go/internal/models"
	"github.com/mcdev12/quizhost/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateQuiz(ctx context.Context, arg db.CreateQuizParams) (db.Quiz, error)
	CreateQuestion(ctx context.Context, arg db.CreateQuestionParams) (db.Question, error)
	GetQuiz(ctx context.Context, id uuid.UUID) (db.Quiz, error)
	ListQuizzes(ctx context.Context) ([]db.Quiz, error)
	ListAllQuestions(ctx context.Context) ([]db.Question, error)
	ListQuestionsByQuiz(ctx context.Context, quizID uuid.UUID) ([]db.Question, error)
	CountQuestionsByQuiz(ctx context.Context, quizID uuid.UUID) (int64, error)
	GetQuestionAtIndex(ctx context.Context, arg db.GetQuestionAtIndexParams) (db.Question, error)
	SetQuestionReveal(ctx context.Context, arg db.SetQuestionRevealParams) error
	DeleteQuiz(ctx context.Context, id uuid.UUID) (int64, error)
}

// Repository implements quiz data access on Postgres
type Repository struct {
	db      *sql.DB
	queries Querier
}

// NewRepository creates a new quizzes repository
func NewRepository(queries Querier, database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: queries,
	}
}

// CreateQuiz inserts the quiz and its questions in one transaction
func (r *Repository) CreateQuiz(ctx context.Context, req CreateQuizRequest) (*models.Quiz, error) {
	var quiz *models.Quiz
	err := sqlutil.Run(ctx, r.db, txQueries, func(q *db.Queries) error {
		dbQuiz, err := q.CreateQuiz(ctx, db.CreateQuizParams{
			ID:          uuid.New(),
			Title:       req.Title,
			Description: req.Description,
		})
		if err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}

		questions := make([]db.Question, 0, len(req.Questions))
		for _, qr := range req.Questions {
			dbQuestion, err := q.CreateQuestion(ctx, db.CreateQuestionParams{
				ID:       uuid.New(),
				QuizID:   dbQuiz.ID,
				Position: int32(qr.Order),
				Text:     qr.Text,
				Answer:   qr.Answer,
			})
			if err != nil {
				return fmt.Errorf("failed to create question %d: %w", qr.Order, err)
			}
			questions = append(questions, dbQuestion)
		}

		quiz = dbQuizToModel(dbQuiz, questions)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortQuestions(quiz.Questions)
	return quiz, nil
}

// GetQuiz retrieves a quiz by ID with its ordered questions
func (r *Repository) GetQuiz(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	dbQuiz, err := r.queries.GetQuiz(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quiz %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	questions, err := r.queries.ListQuestionsByQuiz(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	return dbQuizToModel(dbQuiz, questions), nil
}

// ListQuizzes retrieves every quiz with its ordered questions
func (r *Repository) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	dbQuizzes, err := r.queries.ListQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	dbQuestions, err := r.queries.ListAllQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	byQuiz := make(map[uuid.UUID][]db.Question, len(dbQuizzes))
	for _, q := range dbQuestions {
		byQuiz[q.QuizID] = append(byQuiz[q.QuizID], q)
	}

	quizzes := make([]models.Quiz, len(dbQuizzes))
	for i, dbQuiz := range dbQuizzes {
		quizzes[i] = *dbQuizToModel(dbQuiz, byQuiz[dbQuiz.ID])
	}
	return quizzes, nil
}

// CountQuestions returns how many questions the quiz has.
// An unknown quiz is models.ErrNotFound rather than zero.
func (r *Repository) CountQuestions(ctx context.Context, quizID uuid.UUID) (int, error) {
	count, err := r.queries.CountQuestionsByQuiz(ctx, quizID)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	if count == 0 {
		if _, err := r.queries.GetQuiz(ctx, quizID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, fmt.Errorf("quiz %s: %w", quizID, models.ErrNotFound)
			}
			return 0, fmt.Errorf("failed to get quiz: %w", err)
		}
	}
	return int(count), nil
}

// GetQuestionAtIndex returns the question at a 0-based position in quiz order
func (r *Repository) GetQuestionAtIndex(ctx context.Context, quizID uuid.UUID, index int) (*models.Question, error) {
	if index < 0 {
		return nil, fmt.Errorf("question index %d: %w", index, models.ErrNotFound)
	}
	dbQuestion, err := r.queries.GetQuestionAtIndex(ctx, db.GetQuestionAtIndexParams{
		QuizID: quizID,
		Index:  int32(index),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("question index %d: %w", index, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	question := dbQuestionToModel(dbQuestion)
	return &question, nil
}

// SetQuestionReveal persists the reveal flag of a question
func (r *Repository) SetQuestionReveal(ctx context.Context, questionID uuid.UUID, reveal bool) error {
	err := r.queries.SetQuestionReveal(ctx, db.SetQuestionRevealParams{
		ID:           questionID,
		RevealAnswer: reveal,
	})
	if err != nil {
		return fmt.Errorf("failed to set question reveal: %w", err)
	}
	return nil
}

// DeleteQuiz removes a quiz; the schema cascades the delete to its
// questions and sessions
func (r *Repository) DeleteQuiz(ctx context.Context, id uuid.UUID) error {
	rows, err := r.queries.DeleteQuiz(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("quiz %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func txQueries(tx *sql.Tx) *db.Queries {
	return db.New(tx)
}

// dbQuizToModel converts a database quiz and its question rows to the domain model
func dbQuizToModel(dbQuiz db.Quiz, dbQuestions []db.Question) *models.Quiz {
	questions := make([]models.Question, len(dbQuestions))
	for i, q := range dbQuestions {
		questions[i] = dbQuestionToModel(q)
	}
	return &models.Quiz{
		ID:          dbQuiz.ID,
		Title:       dbQuiz.Title,
		Description: dbQuiz.Description,
		Questions:   questions,
		CreatedAt:   dbQuiz.CreatedAt,
	}
}

func dbQuestionToModel(q db.Question) models.Question {
	return models.Question{
		ID:           q.ID,
		QuizID:       q.QuizID,
		Order:        int(q.Position),
		Text:         q.Text,
		Answer:       q.Answer,
		RevealAnswer: q.RevealAnswer,
	}
}
