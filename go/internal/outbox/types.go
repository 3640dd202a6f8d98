package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types written to quiz_outbox
const (
	EventTypeScoreChanged = "ScoreChanged"
)

// Event is a pending row of quiz_outbox
type Event struct {
	ID        uuid.UUID       `json:"id"`
	SessionID uuid.UUID       `json:"session_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
}

// ScoreChangedPayload is the payload for a ScoreChanged event
type ScoreChangedPayload struct {
	QuizID     string    `json:"quiz_id"`
	SessionID  string    `json:"session_id"`
	TeamID     string    `json:"team_id"`
	TeamName   string    `json:"team_name"`
	Delta      int       `json:"delta"`
	Score      int       `json:"score"`
	Reason     string    `json:"reason"`
	ScoreEvent string    `json:"score_event_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Metadata describes where an outbox row came from
type Metadata struct {
	Source    string `json:"source"`
	RequestID string `json:"request_id,omitempty"`
}

// Envelope is the message body published for every event
type Envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	SessionID string          `json:"sessionId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewEnvelope wraps an event for publishing
func NewEnvelope(event Event, now time.Time) Envelope {
	return Envelope{
		EventID:   event.ID.String(),
		EventType: event.EventType,
		SessionID: event.SessionID.String(),
		Timestamp: now.UTC(),
		Payload:   event.Payload,
	}
}

// Subject builds the NATS subject an event type is published on
func Subject(prefix, eventType string) string {
	return fmt.Sprintf("%s.%s", prefix, eventType)
}
