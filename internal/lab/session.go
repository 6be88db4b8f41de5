package lab

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Observation records the outcome of testing one subject. Appended once
// per subject, never mutated afterwards.
type Observation struct {
	SubjectID   string    `json:"subject_id"`
	Outcome     Outcome   `json:"outcome"`
	Bubbles     bool      `json:"bubbles"`
	Heat        bool      `json:"heat"`
	Description string    `json:"description"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Session holds all transient per-student state for one lab run.
// Handlers and timer callbacks both touch it, so every access goes
// through the mutex. The epoch counter invalidates timers scheduled
// before a reset.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	LabID     string
	StartedAt time.Time

	mu              sync.Mutex
	step            Step
	epoch           uint64
	collected       map[string]bool
	readyNotified   bool
	actionsDone     map[string]bool
	currentSubject  string
	reactionPending bool
	observations    []Observation
	answers         map[int]string
	attempts        int
	revealed        bool
	result          *QuizResult
}

func NewSession(userID uuid.UUID, labID string) *Session {
	return &Session{
		ID:          uuid.New(),
		UserID:      userID,
		LabID:       labID,
		StartedAt:   time.Now(),
		step:        StepIntro,
		collected:   make(map[string]bool),
		actionsDone: make(map[string]bool),
		answers:     make(map[int]string),
	}
}

// State is a point-in-time snapshot safe to serialize for the client.
type State struct {
	SessionID       uuid.UUID      `json:"session_id"`
	LabID           string         `json:"lab_id"`
	Step            Step           `json:"step"`
	Collected       []string       `json:"collected_supplies"`
	SuppliesReady   bool           `json:"supplies_ready"`
	ActionsDone     []string       `json:"actions_done"`
	CurrentSubject  string         `json:"current_subject,omitempty"`
	ReactionPending bool           `json:"reaction_pending"`
	Observations    []Observation  `json:"observations"`
	Answers         map[int]string `json:"answers"`
	QuizAttempts    int            `json:"quiz_attempts"`
	QuizLocked      bool           `json:"quiz_locked"`
	Completed       bool           `json:"completed"`
	ElapsedSeconds  int            `json:"elapsed_seconds"`
}

func (s *Session) snapshotLocked(ready bool) State {
	collected := make([]string, 0, len(s.collected))
	for id := range s.collected {
		collected = append(collected, id)
	}
	done := make([]string, 0, len(s.actionsDone))
	for id := range s.actionsDone {
		done = append(done, id)
	}
	obs := make([]Observation, len(s.observations))
	copy(obs, s.observations)
	answers := make(map[int]string, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}

	return State{
		SessionID:       s.ID,
		LabID:           s.LabID,
		Step:            s.step,
		Collected:       collected,
		SuppliesReady:   ready,
		ActionsDone:     done,
		CurrentSubject:  s.currentSubject,
		ReactionPending: s.reactionPending,
		Observations:    obs,
		Answers:         answers,
		QuizAttempts:    s.attempts,
		QuizLocked:      s.revealed,
		Completed:       s.step == StepComplete,
		ElapsedSeconds:  int(time.Since(s.StartedAt).Seconds()),
	}
}

// Completed reports whether the session reached the terminal step.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step == StepComplete
}

// ElapsedSeconds is the wall time since the session started.
func (s *Session) ElapsedSeconds() int {
	return int(time.Since(s.StartedAt).Seconds())
}
