package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/quizhost/go/internal/config"
	"github.com/mcdev12/quizhost/go/internal/db"
	"github.com/mcdev12/quizhost/go/internal/quizzes"
	"github.com/mcdev12/quizhost/go/internal/scoring"
	"github.com/mcdev12/quizhost/go/internal/sessions"
	"github.com/mcdev12/quizhost/go/internal/store/memory"
	"github.com/mcdev12/quizhost/go/internal/timer"
)

// Stores bundles the repositories of one store driver
type Stores struct {
	Quizzes  quizzes.QuizRepository
	Sessions sessions.SessionRepository
	Scoring  scoring.ScoreRepository
	Clock    clockwork.Clock

	database *sql.DB
}

// Close releases the database connection, if any
func (s *Stores) Close() error {
	if s.database == nil {
		return nil
	}
	return s.database.Close()
}

type Services struct {
	Quizzes  *quizzes.App
	Sessions *sessions.App
	Scoring  *scoring.App
}

func setupStores(ctx context.Context, cfg *Config) (*Stores, error) {
	clock := clockwork.NewRealClock()

	switch cfg.Server.StoreDriver {
	case config.StoreDriverMemory:
		store := memory.NewStore(clock)
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return &Stores{
			Quizzes:  store,
			Sessions: store,
			Scoring:  store,
			Clock:    clock,
		}, nil
	case config.StoreDriverPostgres:
		database, err := setupDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		queries := db.New(database)
		return &Stores{
			Quizzes:  quizzes.NewRepository(queries, database),
			Sessions: sessions.NewRepository(queries, database),
			Scoring:  scoring.NewRepository(queries, database),
			Clock:    clock,
			database: database,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Server.StoreDriver)
	}
}

func setupServices(stores *Stores) *Services {
	// Wire up dependency injection chain
	// Repository layer → App layer
	quizApp := quizzes.NewApp(stores.Quizzes)
	sessionApp := sessions.NewApp(stores.Sessions, quizApp, timer.NewEngine(stores.Clock))
	scoringApp := scoring.NewApp(stores.Scoring, sessionApp)

	return &Services{
		Quizzes:  quizApp,
		Sessions: sessionApp,
		Scoring:  scoringApp,
	}
}

// seedSampleQuiz creates the demo quiz when no quiz exists yet
func seedSampleQuiz(ctx context.Context, services *Services) error {
	existing, err := services.Quizzes.ListQuizzes(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info().Int("quizzes", len(existing)).Msg("store not empty, skipping sample quiz")
		return nil
	}
	quiz, err := services.Quizzes.CreateQuiz(ctx, quizzes.SampleQuiz())
	if err != nil {
		return err
	}
	log.Info().Str("quiz_id", quiz.ID.String()).Msg("seeded sample quiz")
	return nil
}
