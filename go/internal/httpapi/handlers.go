package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/quizhost/go/internal/models"
	"github.com/mcdev12/quizhost/go/internal/scoring"
)

// Health reports that the API is serving
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Server is up!"})
}

// ListQuizzes returns all quizzes with their questions
func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	list, err := h.quizzes.ListQuizzes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetQuiz returns one quiz with its questions
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := quizIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	quiz, err := h.quizzes.GetQuiz(r.Context(), quizID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// StartSession starts or returns the active session
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, http.StatusCreated, h.sessions.StartSession)
}

// SessionState returns the active session view
func (h *Handler) SessionState(w http.ResponseWriter, r *http.Request) {
	quizID, err := quizIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := h.sessions.State(r.Context(), quizID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// NextQuestion advances the session one question, clamped at the last one
func (h *Handler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, http.StatusOK, h.sessions.NextQuestion)
}

// PrevQuestion moves the session back one question, clamped at the first one
func (h *Handler) PrevQuestion(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, http.StatusOK, h.sessions.PrevQuestion)
}

// RevealAnswer shows or hides the current answer. Body: {"reveal": bool},
// reveal defaults to true.
func (h *Handler) RevealAnswer(w http.ResponseWriter, r *http.Request) {
	quizID, err := quizIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req revealRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	reveal := true
	if req.Reveal != nil {
		reveal = *req.Reveal
	}

	got, err := h.sessions.SetReveal(r.Context(), quizID, reveal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reveal_answer": got})
}

// ConfigureTimer sets total seconds and mode. Body: {"total_seconds": 30, "mode": "question"}
func (h *Handler) ConfigureTimer(w http.ResponseWriter, r *http.Request) {
	var req configureTimerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	mode := string(models.TimerModeQuestion)
	if req.Mode != nil {
		mode = *req.Mode
	}
	h.sessionOp(w, r, http.StatusOK, func(ctx context.Context, quizID uuid.UUID) (*models.Session, error) {
		return h.sessions.ConfigureTimer(ctx, quizID, int(req.TotalSeconds), mode)
	})
}

// StartTimer runs the countdown from now
func (h *Handler) StartTimer(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, http.StatusOK, h.sessions.StartTimer)
}

// PauseTimer freezes the countdown
func (h *Handler) PauseTimer(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, http.StatusOK, h.sessions.PauseTimer)
}

// ResetTimer stops the countdown and restores the configured total
func (h *Handler) ResetTimer(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, http.StatusOK, h.sessions.ResetTimer)
}

// ScoreTeamA adjusts Team A. Body: {"delta": 1, "reason": "correct"}
func (h *Handler) ScoreTeamA(w http.ResponseWriter, r *http.Request) {
	h.score(w, r, models.TeamA)
}

// ScoreTeamB adjusts Team B. Body: {"delta": 1, "reason": "correct"}
func (h *Handler) ScoreTeamB(w http.ResponseWriter, r *http.Request) {
	h.score(w, r, models.TeamB)
}

// ScoreEvents lists the active session's score events, newest first
func (h *Handler) ScoreEvents(w http.ResponseWriter, r *http.Request) {
	quizID, err := quizIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	events, err := h.scoring.ListEvents(r.Context(), quizID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if events == nil {
		events = []scoring.EventView{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) score(w http.ResponseWriter, r *http.Request, team models.TeamName) {
	quizID, err := quizIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req scoreRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	delta := 1
	if req.Delta != nil {
		delta = int(*req.Delta)
	}
	reason := ""
	if req.Reason != nil {
		reason = *req.Reason
	}

	updated, err := h.scoring.ApplyDelta(r.Context(), quizID, team, delta, reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// sessionOp runs a session operation and responds with the fresh view
func (h *Handler) sessionOp(w http.ResponseWriter, r *http.Request, status int, op func(context.Context, uuid.UUID) (*models.Session, error)) {
	quizID, err := quizIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	session, err := op(r.Context(), quizID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := h.sessions.BuildView(r.Context(), session)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, view)
}
