package outbox

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
)

func TestBuildMsg(t *testing.T) {
	now := time.Date(2025, 3, 1, 18, 30, 0, 0, time.FixedZone("CET", 3600))
	event := Event{
		ID:        uuid.New(),
		SessionID: uuid.New(),
		EventType: EventTypeScoreChanged,
		Payload:   json.RawMessage(`{"team_name":"Team A","delta":5}`),
	}

	msg, err := buildMsg("quiz.events", event, now)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if msg.Subject != "quiz.events.ScoreChanged" {
		t.Fatalf("subject = %q", msg.Subject)
	}
	if msg.Header.Get("Event-ID") != event.ID.String() || msg.Header.Get("Session-ID") != event.SessionID.String() {
		t.Fatalf("headers = %v", msg.Header)
	}

	var env Envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := Envelope{
		EventID:   event.ID.String(),
		EventType: EventTypeScoreChanged,
		SessionID: event.SessionID.String(),
		Timestamp: now.UTC(),
		Payload:   event.Payload,
	}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Fatalf("envelope mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamConfigCoversPrefix(t *testing.T) {
	cfg := DefaultJetStreamConfig()
	sc := streamConfig(cfg)

	if diff := cmp.Diff([]string{"quiz.events.>"}, sc.Subjects); diff != "" {
		t.Fatalf("subjects mismatch (-want +got):\n%s", diff)
	}
	if sc.Duplicates != cfg.DuplicateWindow || sc.Retention != jetstream.LimitsPolicy {
		t.Fatalf("unexpected stream config %+v", sc)
	}
	if !isStreamConfigEqual(sc, streamConfig(cfg)) {
		t.Fatal("identical configs compare unequal")
	}
	cfg.MaxAge = time.Hour
	if isStreamConfigEqual(sc, streamConfig(cfg)) {
		t.Fatal("changed max age compares equal")
	}
}

func TestLoadJetStreamConfigFromEnv(t *testing.T) {
	t.Setenv("NATS_URL", "nats://broker:4222")
	t.Setenv("FALLBACK_INTERVAL", "5s")

	js, err := LoadJetStreamConfig()
	if err != nil {
		t.Fatalf("load js: %v", err)
	}
	if js.URL != "nats://broker:4222" || js.StreamName != "QUIZ_EVENTS" {
		t.Fatalf("unexpected js config %+v", js)
	}

	lc, err := LoadListenerConfig("postgres://x")
	if err != nil {
		t.Fatalf("load listener: %v", err)
	}
	if lc.FallbackInterval != 5*time.Second || lc.DatabaseURL != "postgres://x" || lc.NotifyChannel != "quiz_outbox_events" {
		t.Fatalf("unexpected listener config %+v", lc)
	}
}
