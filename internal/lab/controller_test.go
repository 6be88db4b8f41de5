package lab

import (
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduler queues timers on a virtual clock so tests can fire them
// deterministically.
type fakeScheduler struct {
	now    time.Duration
	timers []fakeTimer
}

type fakeTimer struct {
	due time.Duration
	fn  func()
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) {
	s.timers = append(s.timers, fakeTimer{due: s.now + d, fn: fn})
}

// Advance moves the virtual clock and fires due timers in schedule order.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.now += d
	sort.SliceStable(s.timers, func(i, j int) bool { return s.timers[i].due < s.timers[j].due })
	remaining := s.timers[:0]
	for _, tm := range s.timers {
		if tm.due <= s.now {
			tm.fn()
		} else {
			remaining = append(remaining, tm)
		}
	}
	s.timers = remaining
}

// recordSink counts side effects so tests can assert one-shot guarantees.
type recordSink struct {
	narrations    []string
	notifications []string
	celebrations  int
}

func (r *recordSink) Narrate(text string) { r.narrations = append(r.narrations, text) }
func (r *recordSink) Notify(title, _, _ string) {
	r.notifications = append(r.notifications, title)
}
func (r *recordSink) Celebrate() { r.celebrations++ }

func (r *recordSink) notifyCount(title string) int {
	n := 0
	for _, t := range r.notifications {
		if t == title {
			n++
		}
	}
	return n
}

func practiceBlueprint() *Blueprint {
	return &Blueprint{
		ID:    "practice-lab",
		Title: "Practice Lab",
		Steps: []Step{StepIntro, StepCollectSupplies, StepSetup, StepObserve, StepQuiz, StepComplete},
		Supplies: []SupplyItem{
			{ID: "a", Name: "Beaker", Required: true},
			{ID: "b", Name: "Tongs", Required: true},
			{ID: "c", Name: "Goggles", Required: true},
			{ID: "d", Name: "Lab coat", Required: false},
		},
		Actions: []ActionSpec{
			{ID: "ignite", ValidStep: StepSetup, NextStep: StepObserve, Delay: time.Second, SingleUse: true, Narration: "lit"},
			{ID: "probe", ValidStep: StepObserve, Delay: 2 * time.Second, RecordsOutcome: true, Narration: "observed"},
		},
		Subjects: []Subject{
			{ID: "x", Name: "Tube X"},
			{ID: "y", Name: "Tube Y"},
			{ID: "z", Name: "Tube Z"},
		},
		Outcomes: map[string]Outcome{
			"x": OutcomePop,
			"y": OutcomeNothing,
			"z": OutcomeRelight,
		},
		ObserveStep:     StepObserve,
		MinObservations: 2,
		Quiz:            threeQuestionQuiz(),
		Scoring:         Scoring{AttemptScores: []int{100, 80, 60}},
		Narration: map[Step]string{
			StepIntro:           "welcome",
			StepCollectSupplies: "collect",
			StepObserve:         "observe",
			StepQuiz:            "quiz",
			StepComplete:        "done",
		},
		ReadyNarration: "all set",
	}
}

func newTestController() (*Controller, *recordSink, *fakeScheduler) {
	sink := &recordSink{}
	sched := &fakeScheduler{}
	sess := NewSession(uuid.New(), "practice-lab")
	return NewController(practiceBlueprint(), sess, sink, sched), sink, sched
}

func collectAll(t *testing.T, c *Controller) {
	t.Helper()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, c.CollectSupply(id))
	}
}

func toObserve(t *testing.T, c *Controller, sched *fakeScheduler) {
	t.Helper()
	require.NoError(t, c.Start())
	collectAll(t, c)
	require.NoError(t, c.ContinueToSetup())
	require.NoError(t, c.PerformAction("ignite"))
	sched.Advance(time.Second)
	require.Equal(t, StepObserve, c.State().Step)
}

func answerAllCorrect(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.SetAnswer(1, "base"))
	require.NoError(t, c.SetAnswer(2, "blue"))
	require.NoError(t, c.SetAnswer(3, "nh3"))
}

func TestStartOnlyFromIntro(t *testing.T) {
	c, _, _ := newTestController()

	assert.NoError(t, c.Start())
	assert.Equal(t, StepCollectSupplies, c.State().Step)
	assert.ErrorIs(t, c.Start(), ErrInvalidStep)
}

func TestCollectSupplyIdempotent(t *testing.T) {
	c, sink, _ := newTestController()
	require.NoError(t, c.Start())

	require.NoError(t, c.CollectSupply("a"))
	require.NoError(t, c.CollectSupply("b"))
	require.NoError(t, c.CollectSupply("a")) // duplicate
	require.NoError(t, c.CollectSupply("c"))

	state := c.State()
	assert.Len(t, state.Collected, 3)
	assert.True(t, state.SuppliesReady)
	assert.Equal(t, 1, sink.notifyCount("Supplies ready"))
}

func TestReadyNotificationFiresExactlyOnce(t *testing.T) {
	c, sink, _ := newTestController()
	require.NoError(t, c.Start())
	collectAll(t, c)

	// Re-renders re-invoke the collection callback; the notice must not re-fire.
	require.NoError(t, c.CollectSupply("c"))
	require.NoError(t, c.CollectSupply("c"))
	require.NoError(t, c.CollectSupply("d"))

	assert.Equal(t, 1, sink.notifyCount("Supplies ready"))
}

func TestCollectUnknownSupplyRejected(t *testing.T) {
	c, _, _ := newTestController()
	require.NoError(t, c.Start())

	assert.ErrorIs(t, c.CollectSupply("plutonium"), ErrUnknownSupply)
}

func TestContinueToSetupGatedOnSupplies(t *testing.T) {
	c, _, _ := newTestController()
	require.NoError(t, c.Start())
	require.NoError(t, c.CollectSupply("a"))

	assert.ErrorIs(t, c.ContinueToSetup(), ErrSuppliesMissing)
	assert.Equal(t, StepCollectSupplies, c.State().Step)

	require.NoError(t, c.CollectSupply("b"))
	require.NoError(t, c.CollectSupply("c"))
	assert.NoError(t, c.ContinueToSetup())
	assert.Equal(t, StepSetup, c.State().Step)
}

func TestPerformActionRejectedOutsideValidStep(t *testing.T) {
	c, _, _ := newTestController()
	require.NoError(t, c.Start())

	err := c.PerformAction("ignite") // setup action during collect-supplies
	assert.ErrorIs(t, err, ErrInvalidStep)
	assert.Equal(t, StepCollectSupplies, c.State().Step)
}

func TestSingleUseActionRejectedOnRepeat(t *testing.T) {
	c, _, sched := newTestController()
	require.NoError(t, c.Start())
	collectAll(t, c)
	require.NoError(t, c.ContinueToSetup())

	require.NoError(t, c.PerformAction("ignite"))
	sched.Advance(time.Second)

	// Back in setup it would be a repeat; here the step has moved on,
	// so the step check fires first. Both leave state untouched.
	assert.Error(t, c.PerformAction("ignite"))
	assert.Equal(t, StepObserve, c.State().Step)
}

func TestTimedActionAdvancesAndNarrates(t *testing.T) {
	c, sink, sched := newTestController()
	require.NoError(t, c.Start())
	collectAll(t, c)
	require.NoError(t, c.ContinueToSetup())

	require.NoError(t, c.PerformAction("ignite"))
	assert.Equal(t, StepSetup, c.State().Step) // nothing happens before the timer

	sched.Advance(time.Second)
	assert.Equal(t, StepObserve, c.State().Step)
	assert.Contains(t, sink.narrations, "lit")
	assert.Contains(t, sink.narrations, "observe")
}

func TestOutcomeLookupDeterministic(t *testing.T) {
	c, _, sched := newTestController()
	toObserve(t, c, sched)

	require.NoError(t, c.SelectSubject("x"))
	require.NoError(t, c.PerformAction("probe"))
	sched.Advance(2 * time.Second)

	obs := c.Observations()
	require.Len(t, obs, 1)
	assert.Equal(t, "x", obs[0].SubjectID)
	assert.Equal(t, OutcomePop, obs[0].Outcome)
}

func TestReactionReentrancyGuard(t *testing.T) {
	c, _, sched := newTestController()
	toObserve(t, c, sched)

	require.NoError(t, c.SelectSubject("x"))
	require.NoError(t, c.PerformAction("probe"))

	// A reaction is running; selecting or recording must be rejected.
	assert.ErrorIs(t, c.SelectSubject("y"), ErrReactionPending)
	assert.ErrorIs(t, c.RecordObservation("y"), ErrReactionPending)
	assert.ErrorIs(t, c.PerformAction("probe"), ErrReactionPending)

	sched.Advance(2 * time.Second)
	assert.NoError(t, c.SelectSubject("y"))
}

func TestDuplicateObservationRejected(t *testing.T) {
	c, _, sched := newTestController()
	toObserve(t, c, sched)

	require.NoError(t, c.RecordObservation("x"))
	before := c.Observations()

	assert.ErrorIs(t, c.RecordObservation("x"), ErrSubjectTested)
	assert.Equal(t, before, c.Observations())

	assert.ErrorIs(t, c.SelectSubject("x"), ErrSubjectTested)
}

func TestAdvanceToQuizGatedOnObservations(t *testing.T) {
	c, _, sched := newTestController()
	toObserve(t, c, sched)

	require.NoError(t, c.RecordObservation("x"))
	assert.ErrorIs(t, c.AdvanceToQuiz(), ErrObservationsShort)
	assert.Equal(t, StepObserve, c.State().Step)

	require.NoError(t, c.RecordObservation("y"))
	assert.NoError(t, c.AdvanceToQuiz())
	assert.Equal(t, StepQuiz, c.State().Step)
}

func TestAdvanceToQuizRejectedDuringPendingReaction(t *testing.T) {
	c, _, sched := newTestController()
	toObserve(t, c, sched)
	require.NoError(t, c.RecordObservation("x"))
	require.NoError(t, c.RecordObservation("y"))

	// A timed probe is still settling; leaving the step now would strand
	// the reaction flag because the stale timer only discards itself.
	require.NoError(t, c.SelectSubject("z"))
	require.NoError(t, c.PerformAction("probe"))
	assert.ErrorIs(t, c.AdvanceToQuiz(), ErrReactionPending)
	assert.Equal(t, StepObserve, c.State().Step)

	sched.Advance(2 * time.Second)
	state := c.State()
	assert.False(t, state.ReactionPending)
	require.Len(t, state.Observations, 3)
	assert.Equal(t, "z", state.Observations[2].SubjectID)

	require.NoError(t, c.AdvanceToQuiz())
	state = c.State()
	assert.Equal(t, StepQuiz, state.Step)
	assert.False(t, state.ReactionPending)
}

func TestQuizSubmitRequiresAllAnswers(t *testing.T) {
	c, _, sched := newTestController()
	toObserve(t, c, sched)
	require.NoError(t, c.RecordObservation("x"))
	require.NoError(t, c.RecordObservation("y"))
	require.NoError(t, c.AdvanceToQuiz())

	require.NoError(t, c.SetAnswer(1, "base"))
	_, err := c.SubmitQuiz()
	assert.ErrorIs(t, err, ErrQuizIncomplete)
}

func TestQuizPassIsIdempotentAndCelebratesOnce(t *testing.T) {
	c, sink, sched := newTestController()
	toObserve(t, c, sched)
	require.NoError(t, c.RecordObservation("x"))
	require.NoError(t, c.RecordObservation("y"))
	require.NoError(t, c.AdvanceToQuiz())
	answerAllCorrect(t, c)

	res, err := c.SubmitQuiz()
	require.NoError(t, err)
	assert.True(t, res.IsFullyCorrect)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, StepComplete, c.State().Step)

	// Second submission: same result back, no re-scoring, no second party.
	again, err := c.SubmitQuiz()
	require.NoError(t, err)
	assert.Equal(t, res, again)
	assert.Equal(t, 1, sink.celebrations)
}

func TestQuizRetryTiers(t *testing.T) {
	c, _, sched := newTestController()
	toObserve(t, c, sched)
	require.NoError(t, c.RecordObservation("x"))
	require.NoError(t, c.RecordObservation("y"))
	require.NoError(t, c.AdvanceToQuiz())

	require.NoError(t, c.SetAnswer(1, "acid"))
	require.NoError(t, c.SetAnswer(2, "blue"))
	require.NoError(t, c.SetAnswer(3, "nh3"))

	first, err := c.SubmitQuiz()
	require.NoError(t, err)
	assert.Equal(t, TierTryAgain, first.Tier)
	assert.Nil(t, first.CorrectAnswers)

	// Answers stay editable after try-again.
	require.NoError(t, c.SetAnswer(1, "base"))
	require.NoError(t, c.SetAnswer(2, "red"))

	second, err := c.SubmitQuiz()
	require.NoError(t, err)
	assert.Equal(t, TierReveal, second.Tier)
	assert.Equal(t, map[int]string{1: "base", 2: "blue", 3: "nh3"}, second.CorrectAnswers)

	// Locked until the quiz sub-state is reset.
	_, err = c.SubmitQuiz()
	assert.ErrorIs(t, err, ErrQuizLocked)
	assert.ErrorIs(t, c.SetAnswer(1, "base"), ErrQuizLocked)

	require.NoError(t, c.ResetQuiz())
	state := c.State()
	assert.Empty(t, state.Answers)
	assert.Zero(t, state.QuizAttempts)

	answerAllCorrect(t, c)
	third, err := c.SubmitQuiz()
	require.NoError(t, err)
	assert.True(t, third.IsFullyCorrect)
	assert.Equal(t, 1, third.AttemptNumber)
}

func TestResetSuppressesPendingTimer(t *testing.T) {
	c, _, sched := newTestController()
	require.NoError(t, c.Start())
	collectAll(t, c)
	require.NoError(t, c.ContinueToSetup())
	require.NoError(t, c.PerformAction("ignite"))

	c.Reset()
	sched.Advance(time.Second) // the ghost timer fires now

	state := c.State()
	assert.Equal(t, StepIntro, state.Step)
	assert.Empty(t, state.Collected)
	assert.Empty(t, state.Observations)
	assert.False(t, state.ReactionPending)
}

func TestResetDuringReactionDropsObservation(t *testing.T) {
	c, _, sched := newTestController()
	toObserve(t, c, sched)
	require.NoError(t, c.SelectSubject("x"))
	require.NoError(t, c.PerformAction("probe"))

	c.Reset()
	sched.Advance(2 * time.Second)

	assert.Equal(t, StepIntro, c.State().Step)
	assert.Empty(t, c.Observations())
}

func TestResetReenablesReadyNotification(t *testing.T) {
	c, sink, _ := newTestController()
	require.NoError(t, c.Start())
	collectAll(t, c)
	require.Equal(t, 1, sink.notifyCount("Supplies ready"))

	c.Reset()
	require.NoError(t, c.Start())
	collectAll(t, c)

	// A fresh session run gets its own one-shot notice.
	assert.Equal(t, 2, sink.notifyCount("Supplies ready"))
}
