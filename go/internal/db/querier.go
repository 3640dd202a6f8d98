package db

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	CountQuestionsByQuiz(ctx context.Context, quizID uuid.UUID) (int64, error)
	CountUnsentOutbox(ctx context.Context) (int64, error)
	CreateQuestion(ctx context.Context, arg CreateQuestionParams) (Question, error)
	CreateQuiz(ctx context.Context, arg CreateQuizParams) (Quiz, error)
	DeleteQuiz(ctx context.Context, id uuid.UUID) (int64, error)
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (QuizOutbox, error)
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]QuizOutbox, error)
	GetActiveSessionByQuiz(ctx context.Context, quizID uuid.UUID) (QuizSession, error)
	GetQuestionAtIndex(ctx context.Context, arg GetQuestionAtIndexParams) (Question, error)
	GetQuiz(ctx context.Context, id uuid.UUID) (Quiz, error)
	GetTeamBySessionAndName(ctx context.Context, arg GetTeamBySessionAndNameParams) (Team, error)
	IncrementTeamScore(ctx context.Context, arg IncrementTeamScoreParams) (Team, error)
	InsertActiveSession(ctx context.Context, arg InsertActiveSessionParams) (QuizSession, error)
	InsertOutboxEvent(ctx context.Context, arg InsertOutboxEventParams) error
	InsertScoreEvent(ctx context.Context, arg InsertScoreEventParams) (ScoreEvent, error)
	InsertTeamIfMissing(ctx context.Context, arg InsertTeamIfMissingParams) error
	ListAllQuestions(ctx context.Context) ([]Question, error)
	ListQuestionsByQuiz(ctx context.Context, quizID uuid.UUID) ([]Question, error)
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	ListScoreEventsBySession(ctx context.Context, sessionID uuid.UUID) ([]ListScoreEventsBySessionRow, error)
	ListTeamsBySession(ctx context.Context, sessionID uuid.UUID) ([]Team, error)
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
	SetQuestionReveal(ctx context.Context, arg SetQuestionRevealParams) error
	UpdateSession(ctx context.Context, arg UpdateSessionParams) (QuizSession, error)
}

var _ Querier = (*Queries)(nil)
