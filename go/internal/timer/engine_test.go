package timer

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/quizhost/go/internal/models"
)

var epoch = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

func newTestEngine() (*Engine, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(epoch)
	return NewEngine(clock), clock
}

func TestConfigureThenRemainingReturnsTotal(t *testing.T) {
	for _, total := range []int{0, 1, 30, 600} {
		e, _ := newTestEngine()
		state := models.DefaultTimerState()
		e.Configure(&state, total, models.TimerModeQuiz)

		if got := e.Remaining(state); got != total {
			t.Fatalf("configure(%d): remaining = %d", total, got)
		}
		if state.Running || state.StartedAt != nil {
			t.Fatalf("configure(%d) left timer running: %+v", total, state)
		}
		if state.Mode != models.TimerModeQuiz {
			t.Fatalf("expected quiz mode, got %q", state.Mode)
		}
	}
}

func TestConfigureClampsNegativeTotal(t *testing.T) {
	e, _ := newTestEngine()
	state := models.DefaultTimerState()
	e.Configure(&state, -5, models.TimerModeQuestion)

	if state.TotalSeconds != 0 || state.RemainingSeconds != 0 {
		t.Fatalf("expected zeroed timer, got %+v", state)
	}
}

func TestConfigureStopsRunningCountdown(t *testing.T) {
	e, clock := newTestEngine()
	state := models.DefaultTimerState()
	e.Configure(&state, 30, models.TimerModeQuestion)
	e.Start(&state)
	clock.Advance(10 * time.Second)

	e.Configure(&state, 45, models.TimerModeQuestion)
	clock.Advance(10 * time.Second)

	if got := e.Remaining(state); got != 45 {
		t.Fatalf("expected stopped timer at 45, got %d", got)
	}
}

func TestStartThenImmediateRemainingReturnsSnapshot(t *testing.T) {
	e, _ := newTestEngine()
	state := models.DefaultTimerState()
	e.Configure(&state, 30, models.TimerModeQuestion)
	before := e.Remaining(state)

	e.Start(&state)
	if got := e.Remaining(state); got != before {
		t.Fatalf("expected pre-start snapshot %d, got %d", before, got)
	}
}

func TestResumeAfterPauseCountsFromTotal(t *testing.T) {
	e, clock := newTestEngine()
	state := models.DefaultTimerState()
	e.Configure(&state, 30, models.TimerModeQuestion)
	e.Start(&state)
	clock.Advance(10 * time.Second)
	e.Pause(&state)
	if state.RemainingSeconds != 20 {
		t.Fatalf("expected paused snapshot 20, got %d", state.RemainingSeconds)
	}

	e.Start(&state)
	clock.Advance(5 * time.Second)
	if got := e.Remaining(state); got != 25 {
		t.Fatalf("expected 25 after resume, got %d", got)
	}
	if state.TotalSeconds != 30 {
		t.Fatalf("resume changed total: %d", state.TotalSeconds)
	}
}

func TestRemainingIsMonotonicAndNeverNegative(t *testing.T) {
	e, clock := newTestEngine()
	state := models.DefaultTimerState()
	e.Configure(&state, 5, models.TimerModeQuestion)
	e.Start(&state)

	prev := e.Remaining(state)
	for i := 0; i < 20; i++ {
		clock.Advance(700 * time.Millisecond)
		got := e.Remaining(state)
		if got > prev {
			t.Fatalf("remaining increased from %d to %d", prev, got)
		}
		if got < 0 {
			t.Fatalf("remaining went negative: %d", got)
		}
		prev = got
	}
	if prev != 0 {
		t.Fatalf("expected expired timer, got %d", prev)
	}
}

func TestRemainingFloorsElapsedSeconds(t *testing.T) {
	e, clock := newTestEngine()
	state := models.DefaultTimerState()
	e.Configure(&state, 10, models.TimerModeQuestion)
	e.Start(&state)

	clock.Advance(1999 * time.Millisecond)
	if got := e.Remaining(state); got != 9 {
		t.Fatalf("expected 9 after 1.999s, got %d", got)
	}
}

func TestRemainingIsStableAcrossReads(t *testing.T) {
	e, clock := newTestEngine()
	state := models.DefaultTimerState()
	e.Configure(&state, 60, models.TimerModeQuestion)
	e.Start(&state)
	clock.Advance(7 * time.Second)

	for i := 0; i < 100; i++ {
		if got := e.Remaining(state); got != 53 {
			t.Fatalf("read %d: expected 53, got %d", i, got)
		}
	}
}

func TestPauseIsIdempotent(t *testing.T) {
	e, clock := newTestEngine()
	state := models.DefaultTimerState()
	e.Configure(&state, 30, models.TimerModeQuestion)
	e.Start(&state)
	clock.Advance(4 * time.Second)

	e.Pause(&state)
	first := state.RemainingSeconds
	clock.Advance(3 * time.Second)
	e.Pause(&state)

	if first != 26 || state.RemainingSeconds != first {
		t.Fatalf("expected 26 twice, got %d then %d", first, state.RemainingSeconds)
	}
	if state.Running || state.StartedAt != nil {
		t.Fatalf("pause left timer running: %+v", state)
	}
}

func TestStartAfterExpiryRestartsFromTotal(t *testing.T) {
	e, clock := newTestEngine()
	state := models.DefaultTimerState()
	e.Configure(&state, 5, models.TimerModeQuestion)
	e.Start(&state)
	clock.Advance(9 * time.Second)
	e.Pause(&state)
	if state.RemainingSeconds != 0 {
		t.Fatalf("expected expired snapshot, got %d", state.RemainingSeconds)
	}

	e.Start(&state)
	if got := e.Remaining(state); got != 5 {
		t.Fatalf("expected fresh run of 5, got %d", got)
	}
}

func TestStartWhileRunningRebasesClock(t *testing.T) {
	e, clock := newTestEngine()
	state := models.DefaultTimerState()
	e.Configure(&state, 30, models.TimerModeQuestion)
	e.Start(&state)
	clock.Advance(10 * time.Second)

	e.Start(&state)
	if got := e.Remaining(state); got != 30 {
		t.Fatalf("expected re-based countdown at 30, got %d", got)
	}
	if !state.StartedAt.Equal(clock.Now()) {
		t.Fatalf("expected started_at %v, got %v", clock.Now(), state.StartedAt)
	}
}

func TestStartWithoutTotalKeepsZero(t *testing.T) {
	e, _ := newTestEngine()
	state := models.DefaultTimerState()
	e.Start(&state)

	if !state.Running {
		t.Fatal("expected running timer")
	}
	if got := e.Remaining(state); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestResetRestoresTotal(t *testing.T) {
	e, clock := newTestEngine()
	state := models.DefaultTimerState()
	e.Configure(&state, 20, models.TimerModeQuestion)
	e.Start(&state)
	clock.Advance(15 * time.Second)

	e.Reset(&state)
	if state.Running || state.StartedAt != nil || state.RemainingSeconds != 20 {
		t.Fatalf("unexpected state after reset: %+v", state)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    models.TimerMode
		wantErr bool
	}{
		{in: "", want: models.TimerModeQuestion},
		{in: "question", want: models.TimerModeQuestion},
		{in: "quiz", want: models.TimerModeQuiz},
		{in: "round", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidMode) {
				t.Fatalf("ParseMode(%q): expected ErrInvalidMode, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}
