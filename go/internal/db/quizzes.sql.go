package db

import (
	"context"

	"github.com/google/uuid"
)

const countQuestionsByQuiz = `
SELECT COUNT(*) FROM questions WHERE quiz_id = $1
`

func (q *Queries) CountQuestionsByQuiz(ctx context.Context, quizID uuid.UUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, countQuestionsByQuiz, quizID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createQuestion = `
INSERT INTO questions (id, quiz_id, position, text, answer)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, quiz_id, position, text, answer, reveal_answer
`

type CreateQuestionParams struct {
	ID       uuid.UUID
	QuizID   uuid.UUID
	Position int32
	Text     string
	Answer   string
}

func (q *Queries) CreateQuestion(ctx context.Context, arg CreateQuestionParams) (Question, error) {
	row := q.db.QueryRowContext(ctx, createQuestion,
		arg.ID,
		arg.QuizID,
		arg.Position,
		arg.Text,
		arg.Answer,
	)
	var i Question
	err := row.Scan(
		&i.ID,
		&i.QuizID,
		&i.Position,
		&i.Text,
		&i.Answer,
		&i.RevealAnswer,
	)
	return i, err
}

const createQuiz = `
INSERT INTO quizzes (id, title, description)
VALUES ($1, $2, $3)
RETURNING id, title, description, created_at
`

type CreateQuizParams struct {
	ID          uuid.UUID
	Title       string
	Description string
}

func (q *Queries) CreateQuiz(ctx context.Context, arg CreateQuizParams) (Quiz, error) {
	row := q.db.QueryRowContext(ctx, createQuiz, arg.ID, arg.Title, arg.Description)
	var i Quiz
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const deleteQuiz = `
DELETE FROM quizzes WHERE id = $1
`

// DeleteQuiz cascades to questions, sessions, teams and score events.
func (q *Queries) DeleteQuiz(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteQuiz, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getQuestionAtIndex = `
SELECT id, quiz_id, position, text, answer, reveal_answer
FROM questions
WHERE quiz_id = $1
ORDER BY position
LIMIT 1 OFFSET $2
`

type GetQuestionAtIndexParams struct {
	QuizID uuid.UUID
	Index  int32
}

func (q *Queries) GetQuestionAtIndex(ctx context.Context, arg GetQuestionAtIndexParams) (Question, error) {
	row := q.db.QueryRowContext(ctx, getQuestionAtIndex, arg.QuizID, arg.Index)
	var i Question
	err := row.Scan(
		&i.ID,
		&i.QuizID,
		&i.Position,
		&i.Text,
		&i.Answer,
		&i.RevealAnswer,
	)
	return i, err
}

const getQuiz = `
SELECT id, title, description, created_at FROM quizzes WHERE id = $1
`

func (q *Queries) GetQuiz(ctx context.Context, id uuid.UUID) (Quiz, error) {
	row := q.db.QueryRowContext(ctx, getQuiz, id)
	var i Quiz
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const listAllQuestions = `
SELECT id, quiz_id, position, text, answer, reveal_answer
FROM questions
ORDER BY quiz_id, position
`

func (q *Queries) ListAllQuestions(ctx context.Context) ([]Question, error) {
	rows, err := q.db.QueryContext(ctx, listAllQuestions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

const listQuestionsByQuiz = `
SELECT id, quiz_id, position, text, answer, reveal_answer
FROM questions
WHERE quiz_id = $1
ORDER BY position
`

func (q *Queries) ListQuestionsByQuiz(ctx context.Context, quizID uuid.UUID) ([]Question, error) {
	rows, err := q.db.QueryContext(ctx, listQuestionsByQuiz, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

func scanQuestions(rows rowScanner) ([]Question, error) {
	var items []Question
	for rows.Next() {
		var i Question
		if err := rows.Scan(
			&i.ID,
			&i.QuizID,
			&i.Position,
			&i.Text,
			&i.Answer,
			&i.RevealAnswer,
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

const listQuizzes = `
SELECT id, title, description, created_at FROM quizzes ORDER BY created_at, id
`

func (q *Queries) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	rows, err := q.db.QueryContext(ctx, listQuizzes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Quiz
	for rows.Next() {
		var i Quiz
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Description,
			&i.CreatedAt,
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

const setQuestionReveal = `
UPDATE questions SET reveal_answer = $2 WHERE id = $1
`

type SetQuestionRevealParams struct {
	ID           uuid.UUID
	RevealAnswer bool
}

func (q *Queries) SetQuestionReveal(ctx context.Context, arg SetQuestionRevealParams) error {
	_, err := q.db.ExecContext(ctx, setQuestionReveal, arg.ID, arg.RevealAnswer)
	return err
}
