// Package session holds the per-user state around one pipeline run: the
// controller itself, the chat history and the current suggested
// questions. The pipeline core is single-writer by contract; Session is
// the layer that enforces that contract when the core is hosted behind a
// concurrent surface such as the HTTP API.
package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arthguru/finance-coach/internal/advisor"
	"github.com/arthguru/finance-coach/internal/domain"
	"github.com/arthguru/finance-coach/internal/pipeline"
)

// Session owns one pipeline run. All methods serialize through one mutex.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	controller *pipeline.Controller
	history    []domain.Turn
	questions  []string
	rng        *rand.Rand
	now        func() time.Time
}

// New creates a session over a ledger. The rng drives suggested-question
// sampling; passing nil seeds one from the clock.
func New(ledger domain.Ledger, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		controller: pipeline.New(ledger),
		rng:        rng,
		now:        time.Now,
	}
}

// Stage reports the pipeline stage.
func (s *Session) Stage() pipeline.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Stage()
}

// Start runs the analysis stage.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Start()
}

// Advance moves the pipeline one stage forward. Reaching advisor-ready
// seeds the first set of suggested questions.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.controller.Advance(); err != nil {
		return err
	}
	s.seedQuestions()
	return nil
}

// Run drives the pipeline from its current stage to advisor-ready.
func (s *Session) Run() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.controller.Run(); err != nil {
		return err
	}
	s.seedQuestions()
	return nil
}

// Reset returns the pipeline to idle over the same ledger and clears the
// conversation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.Reset()
	s.history = nil
	s.questions = nil
}

// LoadLedger replaces the session's data. The pipeline restarts from
// idle over the new ledger and the conversation is cleared.
func (s *Session) LoadLedger(ledger domain.Ledger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller = pipeline.New(ledger)
	s.history = nil
	s.questions = nil
}

// Ledger returns a copy of the session's transaction data.
func (s *Session) Ledger() domain.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(domain.Ledger, len(s.controller.Ledger()))
	copy(out, s.controller.Ledger())
	return out
}

// Metrics returns the cached analysis result.
func (s *Session) Metrics() (domain.Metrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Metrics()
}

// Plan returns the cached planning result.
func (s *Session) Plan() (domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Plan()
}

// Ask sends one question to the advisor, records the user and assistant
// turns and draws a fresh set of suggested questions.
func (s *Session) Ask(question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply, err := s.controller.Answer(question)
	if err != nil {
		return "", err
	}

	at := s.now()
	s.history = append(s.history,
		domain.Turn{Role: domain.RoleUser, Content: question, At: at},
		domain.Turn{Role: domain.RoleAssistant, Content: reply, At: at},
	)
	s.refreshQuestions()
	return reply, nil
}

// History returns a copy of the conversation so far.
func (s *Session) History() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Suggestions returns a copy of the current suggested questions. Empty
// until the pipeline reaches advisor-ready.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.questions))
	copy(out, s.questions)
	return out
}

// seedQuestions draws the first question set when the advisor comes
// online. Callers hold s.mu.
func (s *Session) seedQuestions() {
	if s.controller.Stage() == pipeline.StageAdvisorReady && s.questions == nil {
		s.refreshQuestions()
	}
}

// refreshQuestions redraws the suggestions from the cached metrics.
// Callers hold s.mu.
func (s *Session) refreshQuestions() {
	m, err := s.controller.Metrics()
	if err != nil {
		s.questions = nil
		return
	}
	s.questions = advisor.SuggestedQuestions(m, s.rng)
}
