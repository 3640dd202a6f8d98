// Package timer computes the server-authoritative session countdown.
//
// Nothing ticks in the background: the remaining time is derived on every
// read from the configured total and the instant the countdown was started,
// so the value can be computed any number of times without drift.
package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/quizhost/go/internal/models"
)

// ErrInvalidMode is returned when a timer mode is neither "question" nor "quiz"
var ErrInvalidMode = errors.New("invalid timer mode")

// Clock is the interface we use for time operations.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
}

// Engine applies timer transitions against a clock.
type Engine struct {
	clock Clock
}

// NewEngine creates a timer engine. A nil clock means the real clock.
func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{clock: clock}
}

// Now returns the engine's current time in UTC.
func (e *Engine) Now() time.Time {
	return e.clock.Now().UTC()
}

// Remaining returns the seconds left on the countdown, never negative.
// While stopped it is the stored snapshot. While running it counts down from
// the configured total, so resuming after a pause measures from the total
// again rather than from the paused value.
func (e *Engine) Remaining(t models.TimerState) int {
	if !t.Running || t.StartedAt == nil {
		return max(0, t.RemainingSeconds)
	}
	elapsed := int(e.clock.Now().Sub(*t.StartedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	return max(0, t.TotalSeconds-elapsed)
}

// Configure sets a new total, resets the snapshot to it and stops the countdown.
func (e *Engine) Configure(t *models.TimerState, totalSeconds int, mode models.TimerMode) {
	t.TotalSeconds = max(0, totalSeconds)
	t.RemainingSeconds = t.TotalSeconds
	t.Mode = mode
	t.Running = false
	t.StartedAt = nil
}

// Start runs the countdown from now. A countdown that already expired
// gets its snapshot refilled from the total. Starting a running countdown
// re-bases it to now.
func (e *Engine) Start(t *models.TimerState) {
	now := e.Now()
	t.Running = true
	t.StartedAt = &now
	if t.RemainingSeconds <= 0 && t.TotalSeconds > 0 {
		t.RemainingSeconds = t.TotalSeconds
	}
}

// Pause freezes the remaining time into the snapshot.
func (e *Engine) Pause(t *models.TimerState) {
	t.RemainingSeconds = e.Remaining(*t)
	t.Running = false
	t.StartedAt = nil
}

// Reset stops the countdown and restores the configured total.
func (e *Engine) Reset(t *models.TimerState) {
	t.Running = false
	t.RemainingSeconds = t.TotalSeconds
	t.StartedAt = nil
}

// ParseMode validates a client-supplied mode. Empty means per-question.
func ParseMode(s string) (models.TimerMode, error) {
	switch models.TimerMode(s) {
	case "", models.TimerModeQuestion:
		return models.TimerModeQuestion, nil
	case models.TimerModeQuiz:
		return models.TimerModeQuiz, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}
