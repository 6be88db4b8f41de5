package lab

import (
	"fmt"
)

// Sink receives the presentation side effects of the flow: teacher
// narration, toast-level notices and the completion celebration.
// Implementations are fire-and-forget; the controller never reads back.
type Sink interface {
	Narrate(text string)
	Notify(title, description, variant string)
	Celebrate()
}

// NopSink is used when no client is listening (tests, expired sockets).
type NopSink struct{}

func (NopSink) Narrate(string)                {}
func (NopSink) Notify(string, string, string) {}
func (NopSink) Celebrate()                    {}

// Controller drives one session through its blueprint's step sequence.
// All methods are safe for concurrent use; rejected calls leave the
// session untouched and return one of the sentinel errors from errors.go.
type Controller struct {
	bp    *Blueprint
	sess  *Session
	sink  Sink
	sched Scheduler
}

func NewController(bp *Blueprint, sess *Session, sink Sink, sched Scheduler) *Controller {
	if sink == nil {
		sink = NopSink{}
	}
	return &Controller{bp: bp, sess: sess, sink: sink, sched: sched}
}

// Start moves intro -> collect-supplies and narrates the supply stage.
func (c *Controller) Start() error {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()

	if c.sess.step != StepIntro {
		return ErrInvalidStep
	}
	next, ok := c.bp.nextStep(StepIntro)
	if !ok {
		return ErrInvalidStep
	}
	c.advanceLocked(next)
	return nil
}

// CollectSupply adds itemID to the collected set. Repeat calls are
// idempotent. When the last required item lands, the "ready to continue"
// notice fires exactly once; re-collecting the final item (which happens
// on client re-renders) must not re-fire it.
func (c *Controller) CollectSupply(itemID string) error {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()

	if c.sess.step != StepCollectSupplies {
		return ErrInvalidStep
	}
	item, ok := c.bp.supply(itemID)
	if !ok {
		return ErrUnknownSupply
	}
	if c.sess.collected[item.ID] {
		return nil
	}
	c.sess.collected[item.ID] = true

	if c.allRequiredCollectedLocked() && !c.sess.readyNotified {
		c.sess.readyNotified = true
		c.sink.Notify("Supplies ready", "You have everything you need. Continue when ready!", "success")
		if c.bp.ReadyNarration != "" {
			c.sink.Narrate(c.bp.ReadyNarration)
		}
	}
	return nil
}

// ContinueToSetup gates collect-supplies -> setup on a complete tray.
func (c *Controller) ContinueToSetup() error {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()

	if c.sess.step != StepCollectSupplies {
		return ErrInvalidStep
	}
	if !c.allRequiredCollectedLocked() {
		missing := c.bp.requiredSupplyCount() - c.requiredCollectedLocked()
		c.sink.Notify("Not so fast", fmt.Sprintf("Collect %d more item(s) first.", missing), "warning")
		return ErrSuppliesMissing
	}
	next, ok := c.bp.nextStep(StepCollectSupplies)
	if !ok {
		return ErrInvalidStep
	}
	c.advanceLocked(next)
	return nil
}

// SelectSubject picks the subject the next outcome action applies to
// (a gas tube, a metal strip). Already-tested subjects are rejected.
func (c *Controller) SelectSubject(subjectID string) error {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()

	if c.sess.step != c.bp.ObserveStep {
		return ErrInvalidStep
	}
	if c.sess.reactionPending {
		return ErrReactionPending
	}
	subject, ok := c.bp.subject(subjectID)
	if !ok {
		return ErrUnknownSubject
	}
	if c.testedLocked(subject.ID) {
		c.sink.Notify("Already tested", fmt.Sprintf("You already tested %s. Pick another one.", subject.Name), "info")
		return ErrSubjectTested
	}
	c.sess.currentSubject = subject.ID
	return nil
}

// PerformAction runs a declared action: validates the step, marks
// single-use actions done and schedules the timed effect. The scheduled
// closure captures the current epoch and step so a reset (or any step
// change) before it fires turns it into a no-op.
func (c *Controller) PerformAction(actionID string) error {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()

	spec, ok := c.bp.action(actionID)
	if !ok {
		return ErrUnknownAction
	}
	if c.sess.step != spec.ValidStep {
		return ErrInvalidStep
	}
	if spec.SingleUse && c.sess.actionsDone[spec.ID] {
		return ErrActionDone
	}
	if c.sess.reactionPending {
		return ErrReactionPending
	}

	subject := ""
	if spec.RecordsOutcome {
		if c.sess.currentSubject == "" {
			return ErrNoSubject
		}
		subject = c.sess.currentSubject
	}

	c.sess.actionsDone[spec.ID] = true
	c.sess.reactionPending = true

	epoch := c.sess.epoch
	from := c.sess.step
	c.sched.AfterFunc(spec.Delay, func() {
		c.fireAction(spec, epoch, from, subject)
	})
	return nil
}

// fireAction applies the deferred effect of a timed action. A timer
// scheduled under an older epoch, or under a step the session has left,
// is discarded: this is what prevents ghost transitions after Reset.
func (c *Controller) fireAction(spec ActionSpec, epoch uint64, from Step, subject string) {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()

	if c.sess.epoch != epoch || c.sess.step != from {
		return
	}
	c.sess.reactionPending = false

	if spec.RecordsOutcome && subject != "" {
		c.appendObservationLocked(subject)
		c.sess.currentSubject = ""
	}
	if spec.Narration != "" {
		c.sink.Narrate(spec.Narration)
	}
	if spec.NextStep != "" {
		c.advanceLocked(spec.NextStep)
	}
}

// RecordObservation appends an observation directly, for labs where the
// observation itself is the user action (no timed reaction).
func (c *Controller) RecordObservation(subjectID string) error {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()

	if c.sess.step != c.bp.ObserveStep {
		return ErrInvalidStep
	}
	if c.sess.reactionPending {
		return ErrReactionPending
	}
	subject, ok := c.bp.subject(subjectID)
	if !ok {
		return ErrUnknownSubject
	}
	if c.testedLocked(subject.ID) {
		c.sink.Notify("Already tested", fmt.Sprintf("You already tested %s.", subject.Name), "info")
		return ErrSubjectTested
	}
	c.appendObservationLocked(subject.ID)
	return nil
}

// AdvanceToQuiz gates progression on the minimum observation count.
// Rejected while a timed reaction is settling: the pending timer would
// be discarded by the step check and leave the reaction flag stuck.
func (c *Controller) AdvanceToQuiz() error {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()

	next, ok := c.bp.nextStep(c.sess.step)
	if !ok || next != StepQuiz {
		return ErrInvalidStep
	}
	if c.sess.reactionPending {
		return ErrReactionPending
	}
	if len(c.sess.observations) < c.bp.MinObservations {
		short := c.bp.MinObservations - len(c.sess.observations)
		c.sink.Notify("Keep testing", fmt.Sprintf("Test %d more before the quiz.", short), "warning")
		return ErrObservationsShort
	}
	c.advanceLocked(StepQuiz)
	return nil
}

// SetAnswer stages a quiz answer. Answers stay editable until a
// submission comes back fully correct or the quiz locks on reveal.
func (c *Controller) SetAnswer(questionIndex int, optionID string) error {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()

	if c.sess.step != StepQuiz {
		return ErrInvalidStep
	}
	if c.sess.revealed {
		return ErrQuizLocked
	}
	if c.sess.result != nil && c.sess.result.IsFullyCorrect {
		return ErrQuizLocked
	}
	question := (*Question)(nil)
	for i := range c.bp.Quiz.Questions {
		if c.bp.Quiz.Questions[i].Index == questionIndex {
			question = &c.bp.Quiz.Questions[i]
			break
		}
	}
	if question == nil {
		return ErrUnknownQuestion
	}
	valid := false
	for _, opt := range question.Options {
		if opt.ID == optionID {
			valid = true
			break
		}
	}
	if !valid {
		return ErrUnknownOption
	}
	c.sess.answers[questionIndex] = optionID
	return nil
}

// SubmitQuiz evaluates the staged answers. Once a submission is fully
// correct the result is frozen: later calls return the same result with
// no re-scoring (and the service layer awards XP only on the transition).
func (c *Controller) SubmitQuiz() (QuizResult, error) {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()

	if c.sess.result != nil && c.sess.result.IsFullyCorrect {
		return *c.sess.result, nil
	}
	if c.sess.step != StepQuiz {
		return QuizResult{}, ErrInvalidStep
	}
	if c.sess.revealed {
		return QuizResult{}, ErrQuizLocked
	}
	for _, q := range c.bp.Quiz.Questions {
		if _, ok := c.sess.answers[q.Index]; !ok {
			return QuizResult{}, ErrQuizIncomplete
		}
	}

	c.sess.attempts++
	res := Evaluate(c.bp.Quiz, c.sess.answers, c.sess.attempts, c.bp.Scoring)
	c.sess.result = &res

	switch res.Tier {
	case TierPassed:
		c.sink.Notify("Perfect!", fmt.Sprintf("All %d answers correct.", res.TotalQuestions), "success")
		c.sink.Celebrate()
		c.advanceLocked(StepComplete)
	case TierTryAgain:
		c.sink.Notify("Not quite", fmt.Sprintf("%d of %d correct. Adjust your answers and try again.", res.CorrectCount, res.TotalQuestions), "warning")
	case TierReveal:
		c.sess.revealed = true
		c.sink.Notify("Here are the answers", "Study the correct answers, then reset the quiz to try once more.", "info")
	}
	return res, nil
}

// ResetQuiz clears the quiz sub-state after a reveal, the way the labs
// let students click the feedback banner to start the quiz over.
func (c *Controller) ResetQuiz() error {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()

	if c.sess.step != StepQuiz {
		return ErrInvalidStep
	}
	if !c.sess.revealed {
		return ErrQuizLocked
	}
	c.sess.answers = make(map[int]string)
	c.sess.attempts = 0
	c.sess.revealed = false
	c.sess.result = nil
	return nil
}

// Reset forces the session back to intro and clears all transient state.
// The epoch bump makes every pending timer a no-op when it fires. The
// persisted completion record is untouched by design of the caller.
func (c *Controller) Reset() {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()

	c.sess.epoch++
	c.sess.step = StepIntro
	c.sess.collected = make(map[string]bool)
	c.sess.readyNotified = false
	c.sess.actionsDone = make(map[string]bool)
	c.sess.currentSubject = ""
	c.sess.reactionPending = false
	c.sess.observations = nil
	c.sess.answers = make(map[int]string)
	c.sess.attempts = 0
	c.sess.revealed = false
	c.sess.result = nil

	if text, ok := c.bp.Narration[StepIntro]; ok {
		c.sink.Narrate(text)
	}
}

// State returns a snapshot for the client.
func (c *Controller) State() State {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()
	return c.sess.snapshotLocked(c.allRequiredCollectedLocked())
}

// Result returns the frozen quiz result, if any.
func (c *Controller) Result() *QuizResult {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()
	if c.sess.result == nil {
		return nil
	}
	res := *c.sess.result
	return &res
}

// Observations returns a copy of the recorded sequence.
func (c *Controller) Observations() []Observation {
	c.sess.mu.Lock()
	defer c.sess.mu.Unlock()
	obs := make([]Observation, len(c.sess.observations))
	copy(obs, c.sess.observations)
	return obs
}

func (c *Controller) advanceLocked(to Step) {
	c.sess.step = to
	if text, ok := c.bp.Narration[to]; ok {
		c.sink.Narrate(text)
	}
}

func (c *Controller) appendObservationLocked(subjectID string) {
	if c.testedLocked(subjectID) {
		return
	}
	outcome := c.bp.Outcomes[subjectID]
	subject, _ := c.bp.subject(subjectID)
	bubbles, heat := reactionFlags(outcome)
	c.sess.observations = append(c.sess.observations, Observation{
		SubjectID:   subjectID,
		Outcome:     outcome,
		Bubbles:     bubbles,
		Heat:        heat,
		Description: fmt.Sprintf("%s: %s", subject.Name, outcome),
		RecordedAt:  nowFunc(),
	})
}

func (c *Controller) testedLocked(subjectID string) bool {
	for _, o := range c.sess.observations {
		if o.SubjectID == subjectID {
			return true
		}
	}
	return false
}

func (c *Controller) allRequiredCollectedLocked() bool {
	return c.requiredCollectedLocked() == c.bp.requiredSupplyCount()
}

func (c *Controller) requiredCollectedLocked() int {
	n := 0
	for _, s := range c.bp.Supplies {
		if s.Required && c.sess.collected[s.ID] {
			n++
		}
	}
	return n
}

// reactionFlags derives the bubbles/heat indicators shown in the
// observation table from the outcome speed.
func reactionFlags(o Outcome) (bubbles, heat bool) {
	switch o {
	case OutcomeVeryFast:
		return true, true
	case OutcomeFast:
		return true, true
	case OutcomeSlow:
		return true, false
	default:
		return false, false
	}
}
