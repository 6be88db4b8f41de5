package catalog

import (
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-lab-be/internal/lab"
)

type stubScheduler struct {
	timers []func()
}

func (s *stubScheduler) AfterFunc(_ time.Duration, fn func()) {
	s.timers = append(s.timers, fn)
}

func (s *stubScheduler) fireAll() {
	timers := s.timers
	s.timers = nil
	for _, fn := range timers {
		fn()
	}
}

func run(bp *lab.Blueprint) (*lab.Controller, *stubScheduler) {
	sched := &stubScheduler{}
	sess := lab.NewSession(uuid.New(), bp.ID)
	return lab.NewController(bp, sess, lab.NopSink{}, sched), sched
}

func collectRequired(t *testing.T, c *lab.Controller, bp *lab.Blueprint) {
	t.Helper()
	for _, s := range bp.Supplies {
		if s.Required {
			require.NoError(t, c.CollectSupply(s.ID))
		}
	}
}

func TestCatalogValidates(t *testing.T) {
	assert.NoError(t, Validate())
}

func TestCatalogIDsAndSteps(t *testing.T) {
	all := All()
	require.Len(t, all, 6)

	ids := make([]string, 0, len(all))
	for id, bp := range all {
		assert.Equal(t, id, bp.ID)
		assert.Equal(t, standardSteps(), bp.Steps)
		ids = append(ids, id)
	}
	sort.Strings(ids)
	assert.Equal(t, []string{
		"acid-base-indicators",
		"ammonia-test",
		"flame-test",
		"gas-identification",
		"metal-reactivity",
		"thermal-expansion",
	}, ids)
}

func TestGasIdentificationScenario(t *testing.T) {
	bp := GasIdentification()
	c, sched := run(bp)

	require.NoError(t, c.Start())
	collectRequired(t, c, bp)
	require.NoError(t, c.ContinueToSetup())

	require.NoError(t, c.PerformAction("arrange-tubes"))
	sched.fireAll()
	require.Equal(t, lab.StepObserve, c.State().Step)

	require.NoError(t, c.SelectSubject("hydrogen"))
	require.NoError(t, c.PerformAction("splint-test"))
	sched.fireAll()

	obs := c.Observations()
	require.Len(t, obs, 1)
	assert.Equal(t, "hydrogen", obs[0].SubjectID)
	assert.Equal(t, lab.OutcomePop, obs[0].Outcome)

	// Two more tubes to clear the quiz gate.
	for _, tube := range []string{"oxygen", "carbon-dioxide"} {
		require.NoError(t, c.SelectSubject(tube))
		require.NoError(t, c.PerformAction("splint-test"))
		sched.fireAll()
	}
	assert.NoError(t, c.AdvanceToQuiz())
}

func TestMetalReactivityFlatScore(t *testing.T) {
	bp := MetalReactivity()
	c, sched := run(bp)

	require.NoError(t, c.Start())
	collectRequired(t, c, bp)
	require.NoError(t, c.ContinueToSetup())
	require.NoError(t, c.PerformAction("pour-acid"))
	sched.fireAll()

	for _, metal := range []string{"magnesium", "zinc", "copper"} {
		require.NoError(t, c.SelectSubject(metal))
		require.NoError(t, c.PerformAction("drop-metal"))
		sched.fireAll()
	}
	require.NoError(t, c.AdvanceToQuiz())

	// Miss once, then pass on the second try. The score stays 100.
	require.NoError(t, c.SetAnswer(1, "iron"))
	require.NoError(t, c.SetAnswer(2, "copper"))
	require.NoError(t, c.SetAnswer(3, "hydrogen"))
	first, err := c.SubmitQuiz()
	require.NoError(t, err)
	assert.Equal(t, lab.TierTryAgain, first.Tier)

	require.NoError(t, c.SetAnswer(1, "magnesium"))
	second, err := c.SubmitQuiz()
	require.NoError(t, err)
	assert.True(t, second.IsFullyCorrect)
	assert.Equal(t, 100, second.Score)
	assert.Equal(t, 2, second.AttemptNumber)
}

func TestAmmoniaScenario(t *testing.T) {
	bp := AmmoniaTest()
	c, sched := run(bp)

	require.NoError(t, c.Start())
	collectRequired(t, c, bp)
	require.NoError(t, c.ContinueToSetup())
	require.NoError(t, c.PerformAction("warm-mixture"))
	sched.fireAll()

	require.NoError(t, c.SelectSubject("ammonia-gas"))
	require.NoError(t, c.PerformAction("hold-litmus"))
	sched.fireAll()

	obs := c.Observations()
	require.Len(t, obs, 1)
	assert.Equal(t, lab.Outcome("litmus-turns-blue"), obs[0].Outcome)

	require.NoError(t, c.AdvanceToQuiz())
	require.NoError(t, c.SetAnswer(1, "base"))
	require.NoError(t, c.SetAnswer(2, "blue"))
	require.NoError(t, c.SetAnswer(3, "nh3"))

	res, err := c.SubmitQuiz()
	require.NoError(t, err)
	assert.True(t, res.IsFullyCorrect)
	assert.Equal(t, 100, res.Score)
	assert.True(t, c.State().Completed)
}

func TestReactionFlagsForMetals(t *testing.T) {
	bp := MetalReactivity()
	c, sched := run(bp)

	require.NoError(t, c.Start())
	collectRequired(t, c, bp)
	require.NoError(t, c.ContinueToSetup())
	require.NoError(t, c.PerformAction("pour-acid"))
	sched.fireAll()

	require.NoError(t, c.SelectSubject("copper"))
	require.NoError(t, c.PerformAction("drop-metal"))
	sched.fireAll()
	require.NoError(t, c.SelectSubject("magnesium"))
	require.NoError(t, c.PerformAction("drop-metal"))
	sched.fireAll()

	obs := c.Observations()
	require.Len(t, obs, 2)
	assert.False(t, obs[0].Bubbles) // copper: no reaction
	assert.True(t, obs[1].Bubbles)  // magnesium: vigorous
	assert.True(t, obs[1].Heat)
}
