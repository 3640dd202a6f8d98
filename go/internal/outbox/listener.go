package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mcdev12/quizhost/go/internal/config"
	"github.com/mcdev12/quizhost/go/internal/db"
	"github.com/mcdev12/quizhost/go/internal/sqlutil"
	"github.com/rs/zerolog/log"
)

// ListenerConfig controls how the relay picks up outbox rows
type ListenerConfig struct {
	DatabaseURL      string        // Postgres DSN for LISTEN/NOTIFY
	NotifyChannel    string        `env:"OUTBOX_NOTIFY_CHANNEL" envDefault:"quiz_outbox_events"`
	FallbackInterval time.Duration `env:"FALLBACK_INTERVAL"     envDefault:"30s"`
	MaxRetries       int           `env:"OUTBOX_MAX_RETRIES"    envDefault:"5"`
	RetryDelay       time.Duration `env:"OUTBOX_RETRY_DELAY"    envDefault:"200ms"`
	PingInterval     time.Duration `env:"OUTBOX_PING_INTERVAL"  envDefault:"90s"`
	BatchSize        int32         `env:"OUTBOX_BATCH_SIZE"     envDefault:"100"`
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		NotifyChannel:    "quiz_outbox_events",
		FallbackInterval: 30 * time.Second,
		MaxRetries:       5,
		RetryDelay:       200 * time.Millisecond,
		PingInterval:     90 * time.Second,
		BatchSize:        100,
	}
}

// LoadListenerConfig reads the listener settings from the environment
func LoadListenerConfig(databaseURL string) (ListenerConfig, error) {
	cfg := DefaultListenerConfig()
	if err := config.ParseEnv(&cfg); err != nil {
		return ListenerConfig{}, err
	}
	cfg.DatabaseURL = databaseURL
	return cfg, nil
}

// Publisher delivers one outbox event to the broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Querier is the part of the query layer the relay uses
type Querier interface {
	CountUnsentOutbox(ctx context.Context) (int64, error)
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (db.QuizOutbox, error)
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]db.QuizOutbox, error)
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
}

type Listener struct {
	queries   Querier
	listener  *pq.Listener
	publisher Publisher
	cfg       ListenerConfig
}

// NewListener subscribes to the notify channel and returns a relay that
// forwards every new outbox row to the publisher.
func NewListener(dbConn *sql.DB, publisher Publisher, cfg ListenerConfig) (*Listener, error) {
	l := pq.NewListener(
		cfg.DatabaseURL,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	if err := l.Listen(cfg.NotifyChannel); err != nil {
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	log.Info().
		Str("channel", cfg.NotifyChannel).
		Msg("listening for notifications")

	return newListener(db.New(dbConn), l, publisher, cfg), nil
}

func newListener(queries Querier, l *pq.Listener, publisher Publisher, cfg ListenerConfig) *Listener {
	return &Listener{
		queries:   queries,
		listener:  l,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Start relays events until ctx is cancelled. Rows written while the relay
// was down are drained first.
func (l *Listener) Start(ctx context.Context) error {
	log.Info().
		Str("channel", l.cfg.NotifyChannel).
		Dur("ping_interval", l.cfg.PingInterval).
		Dur("fallback_interval", l.cfg.FallbackInterval).
		Msg("listener started")

	if backlog, err := l.queries.CountUnsentOutbox(ctx); err != nil {
		log.Error().Err(err).Msg("failed to count unsent outbox events")
	} else if backlog > 0 {
		log.Info().Int64("backlog", backlog).Msg("draining unsent outbox events")
		if err := l.processUnsent(ctx); err != nil {
			log.Error().Err(err).Msg("failed to process unsent events")
		}
	}

	pingTicker := time.NewTicker(l.cfg.PingInterval)
	fallbackTicker := time.NewTicker(l.cfg.FallbackInterval)
	defer pingTicker.Stop()
	defer fallbackTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("listener shutting down")
			return l.Stop()
		case note := <-l.listener.Notify:
			if note == nil {
				// connection was lost; pq reconnects on its own and the
				// fallback ticker picks up anything missed meanwhile
				continue
			}
			if err := l.handleNotification(ctx, note.Extra); err != nil {
				log.Error().Err(err).Msg("failed to handle notification")
			}
		case <-fallbackTicker.C:
			if err := l.processUnsent(ctx); err != nil {
				log.Error().Err(err).Msg("failed to process unsent events")
			}
		case <-pingTicker.C:
			if err := l.listener.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}

func (l *Listener) Stop() error {
	if l.listener == nil {
		return nil
	}
	return l.listener.Close()
}

// handleNotification publishes the row named by the notification payload.
// Rows already sent by the fallback loop are skipped.
func (l *Listener) handleNotification(ctx context.Context, extra string) error {
	id, err := uuid.Parse(extra)
	if err != nil {
		return fmt.Errorf("invalid event ID in notification: %w", err)
	}

	row, err := l.queries.FetchOutboxByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch outbox event %s: %w", id, err)
	}

	return l.relay(ctx, rowToEvent(row))
}

// processUnsent publishes a batch of unsent rows. A failing row is logged
// and left for the next pass.
func (l *Listener) processUnsent(ctx context.Context) error {
	unsent, err := l.queries.FetchUnsentOutbox(ctx, l.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}

	for _, row := range unsent {
		if err := l.relay(ctx, rowToEvent(row)); err != nil {
			log.Error().Err(err).Str("event_id", row.ID.String()).Msg("failed to relay event")
		}
	}
	return nil
}

func (l *Listener) relay(ctx context.Context, event Event) error {
	if err := l.publishWithRetry(ctx, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if err := l.queries.MarkOutboxSent(ctx, event.ID); err != nil {
		return fmt.Errorf("failed to mark outbox event %s as sent: %w", event.ID, err)
	}
	log.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", event.EventType).
		Msg("published and marked event as sent")
	return nil
}

// publishWithRetry publishes with a linearly growing delay between attempts.
func (l *Listener) publishWithRetry(ctx context.Context, event Event) error {
	var lastErr error

	for attempt := 0; attempt <= l.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := l.cfg.RetryDelay * time.Duration(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := l.publisher.Publish(ctx, event); err != nil {
			lastErr = err
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("failed to publish, retrying")
			continue
		}

		if attempt > 0 {
			log.Info().
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("publish succeeded after retry")
		}
		return nil
	}

	return fmt.Errorf("publish failed after %d attempts: %w", l.cfg.MaxRetries+1, lastErr)
}

func rowToEvent(row db.QuizOutbox) Event {
	return Event{
		ID:        row.ID,
		SessionID: row.SessionID,
		EventType: row.EventType,
		Payload:   row.Payload,
		Metadata:  sqlutil.FromNullRawMessage(row.Metadata),
		CreatedAt: row.CreatedAt,
		SentAt:    sqlutil.FromSqlTime(row.SentAt),
	}
}
