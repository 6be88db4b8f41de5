package lab

import (
	"fmt"
	"time"
)

// Outcome is the enumerated result of testing one subject.
// Values are lab-specific (splint tests, reactivity speeds, flame colors).
type Outcome string

const (
	OutcomePop        Outcome = "pop"
	OutcomeRelight    Outcome = "relight"
	OutcomeNothing    Outcome = "nothing"
	OutcomeExtinguish Outcome = "extinguish"

	OutcomeVeryFast   Outcome = "very-fast"
	OutcomeFast       Outcome = "fast"
	OutcomeSlow       Outcome = "slow"
	OutcomeNoReaction Outcome = "no-reaction"
)

type SupplyItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Subject is something the student can test during the observe step:
// a gas tube, a metal strip, a salt sample.
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ActionSpec declares a user action and its timed effect. Actions are
// only valid in their declared step; single-use actions (placing a
// bunsen burner) are rejected on repeat calls within the same step.
type ActionSpec struct {
	ID        string
	ValidStep Step
	// NextStep is entered when the timer fires; empty means stay put.
	NextStep Step
	// Delay is the simulated reaction time, 500ms-8s depending on pacing.
	Delay     time.Duration
	SingleUse bool
	// RecordsOutcome consumes the currently selected subject and appends
	// an observation with the outcome from the blueprint lookup table.
	RecordsOutcome bool
	// Narration emitted when the timed effect fires.
	Narration string
}

// Blueprint parametrizes the generic flow controller for one lab:
// ordered steps, supply manifest, action specs, subject outcome table,
// quiz and scoring. Blueprints are immutable data; all per-student
// state lives in Session.
type Blueprint struct {
	ID          string
	Title       string
	Emoji       string
	Description string

	Steps    []Step
	Supplies []SupplyItem
	Actions  []ActionSpec

	Subjects        []Subject
	Outcomes        map[string]Outcome // subject id -> deterministic outcome
	ObserveStep     Step
	MinObservations int

	Quiz    Quiz
	Scoring Scoring

	// Narration holds the teacher line spoken on entering each step.
	// ReadyNarration fires exactly once when the last required supply
	// is collected.
	Narration      map[Step]string
	ReadyNarration string
}

func (b *Blueprint) stepIndex(s Step) int {
	for i, st := range b.Steps {
		if st == s {
			return i
		}
	}
	return -1
}

// nextStep returns the step following s in the declared order.
func (b *Blueprint) nextStep(s Step) (Step, bool) {
	i := b.stepIndex(s)
	if i < 0 || i+1 >= len(b.Steps) {
		return "", false
	}
	return b.Steps[i+1], true
}

func (b *Blueprint) supply(id string) (SupplyItem, bool) {
	for _, s := range b.Supplies {
		if s.ID == id {
			return s, true
		}
	}
	return SupplyItem{}, false
}

func (b *Blueprint) requiredSupplyCount() int {
	n := 0
	for _, s := range b.Supplies {
		if s.Required {
			n++
		}
	}
	return n
}

func (b *Blueprint) action(id string) (ActionSpec, bool) {
	for _, a := range b.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return ActionSpec{}, false
}

func (b *Blueprint) subject(id string) (Subject, bool) {
	for _, s := range b.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// Validate catches malformed blueprints at startup rather than mid-session.
func (b *Blueprint) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("blueprint missing id")
	}
	if len(b.Steps) < 2 {
		return fmt.Errorf("blueprint %s: needs at least two steps", b.ID)
	}
	if b.Steps[0] != StepIntro {
		return fmt.Errorf("blueprint %s: first step must be %s", b.ID, StepIntro)
	}
	if b.Steps[len(b.Steps)-1] != StepComplete {
		return fmt.Errorf("blueprint %s: last step must be %s", b.ID, StepComplete)
	}
	seen := make(map[Step]bool)
	for _, s := range b.Steps {
		if seen[s] {
			return fmt.Errorf("blueprint %s: duplicate step %s", b.ID, s)
		}
		seen[s] = true
	}
	if !seen[StepQuiz] {
		return fmt.Errorf("blueprint %s: missing quiz step", b.ID)
	}
	for _, a := range b.Actions {
		if !seen[a.ValidStep] {
			return fmt.Errorf("blueprint %s: action %s valid in unknown step %s", b.ID, a.ID, a.ValidStep)
		}
		if a.NextStep != "" && !seen[a.NextStep] {
			return fmt.Errorf("blueprint %s: action %s targets unknown step %s", b.ID, a.ID, a.NextStep)
		}
		if a.Delay <= 0 {
			return fmt.Errorf("blueprint %s: action %s has no delay", b.ID, a.ID)
		}
	}
	for subjectID := range b.Outcomes {
		if _, ok := b.subject(subjectID); !ok {
			return fmt.Errorf("blueprint %s: outcome for unknown subject %s", b.ID, subjectID)
		}
	}
	for _, s := range b.Subjects {
		if _, ok := b.Outcomes[s.ID]; !ok {
			return fmt.Errorf("blueprint %s: subject %s has no outcome", b.ID, s.ID)
		}
	}
	if b.MinObservations > len(b.Subjects) {
		return fmt.Errorf("blueprint %s: min observations %d exceeds subject count %d", b.ID, b.MinObservations, len(b.Subjects))
	}
	if len(b.Quiz.Questions) == 0 {
		return fmt.Errorf("blueprint %s: quiz has no questions", b.ID)
	}
	for _, q := range b.Quiz.Questions {
		key, ok := b.Quiz.Key[q.Index]
		if !ok {
			return fmt.Errorf("blueprint %s: question %d has no key", b.ID, q.Index)
		}
		found := false
		for _, opt := range q.Options {
			if opt.ID == key {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("blueprint %s: question %d key %q is not an option", b.ID, q.Index, key)
		}
	}
	if len(b.Scoring.AttemptScores) == 0 {
		return fmt.Errorf("blueprint %s: no attempt scores", b.ID)
	}
	return nil
}
