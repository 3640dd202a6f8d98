package models

import (
	"time"

	"github.com/google/uuid"
)

// Quiz is an ordered collection of questions.
type Quiz struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"-"`
}

// Question belongs to a quiz. Order is unique within the quiz.
type Question struct {
	ID           uuid.UUID `json:"id"`
	QuizID       uuid.UUID `json:"-"`
	Order        int       `json:"order"`
	Text         string    `json:"text"`
	Answer       string    `json:"answer"`
	RevealAnswer bool      `json:"reveal_answer"`
}
