package quizzes

import (
	"sort"

	"github.com/mcdev12/quizhost/go/internal/models"
)

// CreateQuizRequest represents the data needed to create a quiz and its questions
type CreateQuizRequest struct {
	Title       string                  `json:"title" yaml:"title"`
	Description string                  `json:"description" yaml:"description"`
	Questions   []CreateQuestionRequest `json:"questions" yaml:"questions"`
}

// CreateQuestionRequest represents one question of a new quiz
type CreateQuestionRequest struct {
	Order  int    `json:"order" yaml:"order"`
	Text   string `json:"text" yaml:"text"`
	Answer string `json:"answer" yaml:"answer"`
}

// SampleQuiz is the demo quiz seeded into empty stores.
func SampleQuiz() CreateQuizRequest {
	return CreateQuizRequest{
		Title:       "Sample Quiz",
		Description: "Demo quiz",
		Questions: []CreateQuestionRequest{
			{Order: 0, Text: "What is 2 + 2?", Answer: "4"},
			{Order: 1, Text: "Capital of France?", Answer: "Paris"},
			{Order: 2, Text: "Primary color that mixed with blue makes green?", Answer: "Yellow"},
		},
	}
}

func sortQuestions(questions []models.Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})
}
