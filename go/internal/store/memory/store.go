// Package memory is an in-process store used for local development and as
// the repository double in tests. One mutex guards every entity, which gives
// the same guarantees the Postgres store gets from its unique indexes and
// in-database increments.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/quizhost/go/internal/models"
	"github.com/mcdev12/quizhost/go/internal/quizzes"
	"github.com/mcdev12/quizhost/go/internal/scoring"
)

// Store keeps quizzes, sessions, teams and score events in memory
type Store struct {
	mu    sync.Mutex
	clock clockwork.Clock

	quizzes   map[uuid.UUID]*models.Quiz
	quizOrder []uuid.UUID
	sessions  map[uuid.UUID]*models.Session
	teams     map[uuid.UUID]*models.Team
	events    []models.ScoreEvent
}

// NewStore creates an empty store. A nil clock means the real clock.
func NewStore(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:    clock,
		quizzes:  make(map[uuid.UUID]*models.Quiz),
		sessions: make(map[uuid.UUID]*models.Session),
		teams:    make(map[uuid.UUID]*models.Team),
	}
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC()
}

// CreateQuiz stores a quiz and its questions
func (s *Store) CreateQuiz(ctx context.Context, req quizzes.CreateQuizRequest) (*models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quiz := &models.Quiz{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   s.now(),
	}
	seen := make(map[int]bool, len(req.Questions))
	for _, q := range req.Questions {
		if seen[q.Order] {
			return nil, fmt.Errorf("duplicate question order %d", q.Order)
		}
		seen[q.Order] = true
		quiz.Questions = append(quiz.Questions, models.Question{
			ID:     uuid.New(),
			QuizID: quiz.ID,
			Order:  q.Order,
			Text:   q.Text,
			Answer: q.Answer,
		})
	}
	sort.SliceStable(quiz.Questions, func(i, j int) bool {
		return quiz.Questions[i].Order < quiz.Questions[j].Order
	})

	s.quizzes[quiz.ID] = quiz
	s.quizOrder = append(s.quizOrder, quiz.ID)
	return copyQuiz(quiz), nil
}

// GetQuiz returns a quiz with its ordered questions
func (s *Store) GetQuiz(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, fmt.Errorf("quiz %s: %w", id, models.ErrNotFound)
	}
	return copyQuiz(quiz), nil
}

// ListQuizzes returns quizzes in creation order
func (s *Store) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Quiz, 0, len(s.quizOrder))
	for _, id := range s.quizOrder {
		out = append(out, *copyQuiz(s.quizzes[id]))
	}
	return out, nil
}

// CountQuestions returns how many questions a quiz has
func (s *Store) CountQuestions(ctx context.Context, quizID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quiz, ok := s.quizzes[quizID]
	if !ok {
		return 0, fmt.Errorf("quiz %s: %w", quizID, models.ErrNotFound)
	}
	return len(quiz.Questions), nil
}

// GetQuestionAtIndex returns the question at a 0-based position
func (s *Store) GetQuestionAtIndex(ctx context.Context, quizID uuid.UUID, index int) (*models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quiz, ok := s.quizzes[quizID]
	if !ok || index < 0 || index >= len(quiz.Questions) {
		return nil, fmt.Errorf("question index %d: %w", index, models.ErrNotFound)
	}
	q := quiz.Questions[index]
	return &q, nil
}

// SetQuestionReveal stores the reveal flag of a question
func (s *Store) SetQuestionReveal(ctx context.Context, questionID uuid.UUID, reveal bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, quiz := range s.quizzes {
		for i := range quiz.Questions {
			if quiz.Questions[i].ID == questionID {
				quiz.Questions[i].RevealAnswer = reveal
				return nil
			}
		}
	}
	return fmt.Errorf("question %s: %w", questionID, models.ErrNotFound)
}

// FindActiveSession returns the quiz's active session
func (s *Store) FindActiveSession(ctx context.Context, quizID uuid.UUID) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session := s.activeSessionLocked(quizID); session != nil {
		return copySession(session), nil
	}
	return nil, fmt.Errorf("active session for quiz %s: %w", quizID, models.ErrNotFound)
}

// CreateActiveSession creates the quiz's active session unless one exists,
// in which case the existing session is returned
func (s *Store) CreateActiveSession(ctx context.Context, quizID uuid.UUID, startedAt time.Time) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[quizID]; !ok {
		return nil, fmt.Errorf("quiz %s: %w", quizID, models.ErrNotFound)
	}
	if session := s.activeSessionLocked(quizID); session != nil {
		return copySession(session), nil
	}

	now := s.now()
	started := startedAt.UTC()
	session := &models.Session{
		ID:        uuid.New(),
		QuizID:    quizID,
		StartedAt: &started,
		IsActive:  true,
		Timer:     models.DefaultTimerState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[session.ID] = session
	return copySession(session), nil
}

// UpdateSession replaces every mutable field of a session
func (s *Store) UpdateSession(ctx context.Context, in *models.Session) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[in.ID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", in.ID, models.ErrNotFound)
	}
	if in.IsActive && !session.IsActive {
		if other := s.activeSessionLocked(session.QuizID); other != nil && other.ID != session.ID {
			return nil, fmt.Errorf("quiz %s already has an active session", session.QuizID)
		}
	}

	updated := copySession(in)
	updated.QuizID = session.QuizID
	updated.CreatedAt = session.CreatedAt
	updated.UpdatedAt = s.now()
	s.sessions[in.ID] = updated
	return copySession(updated), nil
}

// EnsureTeams creates the fixed teams a session is missing
func (s *Store) EnsureTeams(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}
	for _, name := range models.SessionTeams {
		if s.teamLocked(sessionID, name) != nil {
			continue
		}
		team := &models.Team{ID: uuid.New(), SessionID: sessionID, Name: name}
		s.teams[team.ID] = team
	}
	return nil
}

// ListTeams returns the session's teams sorted by name
func (s *Store) ListTeams(ctx context.Context, sessionID uuid.UUID) ([]models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Team
	for _, team := range s.teams {
		if team.SessionID == sessionID {
			out = append(out, *team)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetTeam finds a session team by name
func (s *Store) GetTeam(ctx context.Context, sessionID uuid.UUID, name models.TeamName) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team := s.teamLocked(sessionID, name)
	if team == nil {
		return nil, fmt.Errorf("team %q: %w", name, models.ErrNotFound)
	}
	out := *team
	return &out, nil
}

// ApplyDelta increments the team score and appends the score event under
// one lock
func (s *Store) ApplyDelta(ctx context.Context, change scoring.ScoreChange) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[change.TeamID]
	if !ok {
		return nil, fmt.Errorf("team %s: %w", change.TeamID, models.ErrNotFound)
	}
	team.Score += change.Delta
	s.events = append(s.events, models.ScoreEvent{
		ID:        uuid.New(),
		SessionID: change.SessionID,
		TeamID:    team.ID,
		Delta:     change.Delta,
		Reason:    change.Reason,
		CreatedAt: s.now(),
	})
	out := *team
	return &out, nil
}

// ListEvents returns a session's score events, newest first
func (s *Store) ListEvents(ctx context.Context, sessionID uuid.UUID) ([]scoring.EventView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []scoring.EventView
	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		if e.SessionID != sessionID {
			continue
		}
		var team models.Team
		if t, ok := s.teams[e.TeamID]; ok {
			team = *t
		}
		out = append(out, scoring.EventView{
			ID:        e.ID,
			Team:      team,
			Delta:     e.Delta,
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

// DeleteQuiz removes a quiz together with its sessions, teams and score events
func (s *Store) DeleteQuiz(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[id]; !ok {
		return fmt.Errorf("quiz %s: %w", id, models.ErrNotFound)
	}
	delete(s.quizzes, id)
	for i, qid := range s.quizOrder {
		if qid == id {
			s.quizOrder = append(s.quizOrder[:i], s.quizOrder[i+1:]...)
			break
		}
	}

	removed := make(map[uuid.UUID]bool)
	for sid, session := range s.sessions {
		if session.QuizID == id {
			removed[sid] = true
			delete(s.sessions, sid)
		}
	}
	for tid, team := range s.teams {
		if removed[team.SessionID] {
			delete(s.teams, tid)
		}
	}
	kept := s.events[:0]
	for _, e := range s.events {
		if !removed[e.SessionID] {
			kept = append(kept, e)
		}
	}
	s.events = kept
	return nil
}

func (s *Store) activeSessionLocked(quizID uuid.UUID) *models.Session {
	for _, session := range s.sessions {
		if session.QuizID == quizID && session.IsActive {
			return session
		}
	}
	return nil
}

func (s *Store) teamLocked(sessionID uuid.UUID, name models.TeamName) *models.Team {
	for _, team := range s.teams {
		if team.SessionID == sessionID && team.Name == name {
			return team
		}
	}
	return nil
}

func copyQuiz(q *models.Quiz) *models.Quiz {
	out := *q
	out.Questions = make([]models.Question, len(q.Questions))
	copy(out.Questions, q.Questions)
	return &out
}

func copySession(s *models.Session) *models.Session {
	out := *s
	if s.StartedAt != nil {
		t := *s.StartedAt
		out.StartedAt = &t
	}
	if s.Timer.StartedAt != nil {
		t := *s.Timer.StartedAt
		out.Timer.StartedAt = &t
	}
	return &out
}
