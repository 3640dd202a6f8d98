package scoring

import (
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/quizhost/go/internal/models"
)

// maxReasonLength matches score_events.reason
const maxReasonLength = 255

// ScoreChange is one delta to apply to a team, with its audit reason
type ScoreChange struct {
	QuizID    uuid.UUID
	SessionID uuid.UUID
	TeamID    uuid.UUID
	TeamName  models.TeamName
	Delta     int
	Reason    string
}

// EventView is a score event with the team it applied to
type EventView struct {
	ID        uuid.UUID   `json:"id"`
	Team      models.Team `json:"team"`
	Delta     int         `json:"delta"`
	Reason    string      `json:"reason"`
	CreatedAt time.Time   `json:"created_at"`
}
