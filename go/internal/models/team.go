package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamName identifies one of the two fixed teams of a session.
type TeamName string

const (
	TeamA TeamName = "Team A"
	TeamB TeamName = "Team B"
)

// SessionTeams lists the teams every session must have, in display order.
var SessionTeams = [2]TeamName{TeamA, TeamB}

// Valid reports whether n is one of the fixed session teams.
func (n TeamName) Valid() bool {
	return n == TeamA || n == TeamB
}

// Team is one side of a quiz session and its running score.
type Team struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"-"`
	Name      TeamName  `json:"name"`
	Score     int       `json:"score"`
}

// ScoreEvent is an immutable audit record of a score change.
type ScoreEvent struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"-"`
	TeamID    uuid.UUID `json:"-"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
