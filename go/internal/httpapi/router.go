// Package httpapi exposes the quiz host over JSON HTTP.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mcdev12/quizhost/go/internal/quizzes"
	"github.com/mcdev12/quizhost/go/internal/scoring"
	"github.com/mcdev12/quizhost/go/internal/sessions"
)

// Handler serves the REST endpoints
type Handler struct {
	quizzes  *quizzes.App
	sessions *sessions.App
	scoring  *scoring.App
}

// NewHandler creates a new HTTP handler set
func NewHandler(quizApp *quizzes.App, sessionApp *sessions.App, scoringApp *scoring.App) *Handler {
	return &Handler{
		quizzes:  quizApp,
		sessions: sessionApp,
		scoring:  scoringApp,
	}
}

// NewRouter wires routes and middleware. CORS is applied by the caller
// around the returned handler.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/quizzes", h.ListQuizzes)

		r.Route("/quizzes/{quizId}", func(r chi.Router) {
			r.Get("/", h.GetQuiz)

			r.Route("/session", func(r chi.Router) {
				r.Post("/start", h.StartSession)
				r.Get("/state", h.SessionState)
				r.Post("/next", h.NextQuestion)
				r.Post("/prev", h.PrevQuestion)
				r.Post("/reveal", h.RevealAnswer)

				r.Route("/timer", func(r chi.Router) {
					r.Post("/configure", h.ConfigureTimer)
					r.Post("/start", h.StartTimer)
					r.Post("/pause", h.PauseTimer)
					r.Post("/reset", h.ResetTimer)
				})

				r.Route("/score", func(r chi.Router) {
					r.Post("/teamA", h.ScoreTeamA)
					r.Post("/teamB", h.ScoreTeamB)
					r.Get("/events", h.ScoreEvents)
				})
			})
		})
	})

	return r
}
