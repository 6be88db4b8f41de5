package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"virtual-lab-be/internal/dto"
	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/lab"
	"virtual-lab-be/internal/lab/catalog"
	"virtual-lab-be/internal/repository/memory"
	"virtual-lab-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSched collects scheduled closures so the test controls when the
// timed reactions land.
type stubSched struct {
	timers []func()
}

func (s *stubSched) AfterFunc(d time.Duration, fn func()) {
	s.timers = append(s.timers, fn)
}

func (s *stubSched) fire() {
	pending := s.timers
	s.timers = nil
	for _, fn := range pending {
		fn()
	}
}

type progressCall struct {
	userId uuid.UUID
	labId  string
	score  int
}

type fakeProgress struct {
	calls     []progressCall
	completed map[string]*entity.LabCompletion
}

func (p *fakeProgress) MarkLabCompleted(ctx context.Context, userId uuid.UUID, labId string, score, timeSpentSeconds int) (int, bool, error) {
	p.calls = append(p.calls, progressCall{userId: userId, labId: labId, score: score})
	return 150, true, nil
}

func (p *fakeProgress) Progress(ctx context.Context, userId uuid.UUID, totalLabs int) (*dto.ProgressResponse, error) {
	return &dto.ProgressResponse{TotalLabs: totalLabs}, nil
}

func (p *fakeProgress) CompletedLabs(ctx context.Context, userId uuid.UUID) (map[string]*entity.LabCompletion, error) {
	if p.completed == nil {
		return map[string]*entity.LabCompletion{}, nil
	}
	return p.completed, nil
}

type capturePublisher struct {
	payloads [][]byte
}

func (c *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	c.payloads = append(c.payloads, payload)
	return nil
}

func (c *capturePublisher) kinds(t *testing.T) []string {
	t.Helper()
	var out []string
	for _, raw := range c.payloads {
		var msg dto.ActivityMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		out = append(out, msg.Kind)
	}
	return out
}

type fakeEventPublisher struct {
	types []string
}

func (f *fakeEventPublisher) Publish(ctx context.Context, event events.Event) error {
	f.types = append(f.types, event.EventType())
	return nil
}

type sessionFixture struct {
	svc      ILabSessionService
	sched    *stubSched
	progress *fakeProgress
	activity *capturePublisher
	events   *fakeEventPublisher
	userId   uuid.UUID
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	sched := &stubSched{}
	progress := &fakeProgress{}
	activity := &capturePublisher{}
	eventPub := &fakeEventPublisher{}
	svc := NewLabSessionService(
		catalog.All(),
		memory.NewSessionRepository(time.Minute, time.Minute),
		sched,
		nil, // no socket attached, sessions run on the no-op sink
		progress,
		eventPub,
		activity,
		nopLogger{},
	)
	return &sessionFixture{
		svc:      svc,
		sched:    sched,
		progress: progress,
		activity: activity,
		events:   eventPub,
		userId:   uuid.New(),
	}
}

// runAmmoniaToQuiz drives the ammonia lab from intro to the quiz step.
func (f *sessionFixture) runAmmoniaToQuiz(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	labId := "ammonia-test"

	_, err := f.svc.Start(ctx, f.userId, labId)
	require.NoError(t, err)

	for _, item := range []string{"ammonium-salt", "alkali", "red-litmus", "bunsen-burner"} {
		_, err = f.svc.CollectSupply(ctx, f.userId, labId, item)
		require.NoError(t, err)
	}
	_, err = f.svc.ContinueToSetup(ctx, f.userId, labId)
	require.NoError(t, err)

	_, err = f.svc.PerformAction(ctx, f.userId, labId, "warm-mixture")
	require.NoError(t, err)
	f.sched.fire()

	_, err = f.svc.SelectSubject(ctx, f.userId, labId, "ammonia-gas")
	require.NoError(t, err)
	_, err = f.svc.PerformAction(ctx, f.userId, labId, "hold-litmus")
	require.NoError(t, err)
	f.sched.fire()

	_, err = f.svc.AdvanceToQuiz(ctx, f.userId, labId)
	require.NoError(t, err)
}

func (f *sessionFixture) answer(t *testing.T, answers map[int]string) {
	t.Helper()
	for idx, opt := range answers {
		_, err := f.svc.SetAnswer(context.Background(), f.userId, "ammonia-test", idx, opt)
		require.NoError(t, err)
	}
}

func TestStartUnknownLab(t *testing.T) {
	f := newSessionFixture(t)
	_, err := f.svc.Start(context.Background(), f.userId, "cold-fusion")
	assert.ErrorIs(t, err, ErrLabNotFound)
}

func TestSessionStatePersistsAcrossCalls(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, f.userId, "ammonia-test")
	require.NoError(t, err)
	_, err = f.svc.CollectSupply(ctx, f.userId, "ammonia-test", "alkali")
	require.NoError(t, err)

	state, err := f.svc.State(ctx, f.userId, "ammonia-test")
	require.NoError(t, err)
	assert.Equal(t, lab.StepCollectSupplies, state.Step)
	assert.Contains(t, state.Collected, "alkali")
}

func TestSubmitQuizAwardsXPExactlyOnce(t *testing.T) {
	f := newSessionFixture(t)
	f.runAmmoniaToQuiz(t)
	f.answer(t, map[int]string{1: "base", 2: "blue", 3: "nh3"})

	res, err := f.svc.SubmitQuiz(context.Background(), f.userId, "ammonia-test")
	require.NoError(t, err)
	assert.True(t, res.IsFullyCorrect)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, 150, res.XPEarned)
	require.Len(t, f.progress.calls, 1)
	assert.Equal(t, "ammonia-test", f.progress.calls[0].labId)

	// Submitting again returns the frozen result without a second award.
	res, err = f.svc.SubmitQuiz(context.Background(), f.userId, "ammonia-test")
	require.NoError(t, err)
	assert.True(t, res.IsFullyCorrect)
	assert.Zero(t, res.XPEarned)
	assert.Len(t, f.progress.calls, 1)
}

func TestSubmitQuizFailureRecordsNothing(t *testing.T) {
	f := newSessionFixture(t)
	f.runAmmoniaToQuiz(t)
	f.answer(t, map[int]string{1: "acid", 2: "blue", 3: "nh3"})

	res, err := f.svc.SubmitQuiz(context.Background(), f.userId, "ammonia-test")
	require.NoError(t, err)
	assert.False(t, res.IsFullyCorrect)
	assert.Zero(t, res.XPEarned)
	assert.Empty(t, f.progress.calls)
	assert.Empty(t, f.events.types)
}

func TestCompletionPublishesBrokerEvents(t *testing.T) {
	f := newSessionFixture(t)
	f.runAmmoniaToQuiz(t)
	f.answer(t, map[int]string{1: "base", 2: "blue", 3: "nh3"})

	_, err := f.svc.SubmitQuiz(context.Background(), f.userId, "ammonia-test")
	require.NoError(t, err)
	assert.Equal(t, []string{
		events.TypeQuizPassed,
		events.TypeLabCompleted,
		events.TypeXPAwarded,
	}, f.events.types)

	// The frozen result of a resubmission emits nothing further.
	_, err = f.svc.SubmitQuiz(context.Background(), f.userId, "ammonia-test")
	require.NoError(t, err)
	assert.Len(t, f.events.types, 3)
}

func TestActivityTimelineEvents(t *testing.T) {
	f := newSessionFixture(t)
	f.runAmmoniaToQuiz(t)
	f.answer(t, map[int]string{1: "base", 2: "blue", 3: "nh3"})

	_, err := f.svc.SubmitQuiz(context.Background(), f.userId, "ammonia-test")
	require.NoError(t, err)
	_, err = f.svc.Reset(context.Background(), f.userId, "ammonia-test")
	require.NoError(t, err)

	kinds := f.activity.kinds(t)
	assert.Equal(t, []string{
		string(entity.ActivityLabStarted),
		string(entity.ActivityLabCompleted),
		string(entity.ActivityLabReset),
	}, kinds)
}

func TestDetailDoesNotExposeAnswers(t *testing.T) {
	f := newSessionFixture(t)

	detail, err := f.svc.Detail("ammonia-test")
	require.NoError(t, err)
	require.Len(t, detail.Quiz, 3)
	for _, q := range detail.Quiz {
		assert.NotEmpty(t, q.Prompt)
		assert.NotEmpty(t, q.Options)
	}

	_, err = f.svc.Detail("cold-fusion")
	assert.ErrorIs(t, err, ErrLabNotFound)
}

func TestCatalogMarksCompletedLabs(t *testing.T) {
	f := newSessionFixture(t)
	f.progress.completed = map[string]*entity.LabCompletion{
		"ammonia-test": {LabId: "ammonia-test", BestScore: 100},
	}

	summaries, err := f.svc.Catalog(context.Background(), f.userId)
	require.NoError(t, err)
	require.Len(t, summaries, 6)

	var done int
	for _, s := range summaries {
		if s.Completed {
			done++
			assert.Equal(t, "ammonia-test", s.Id)
			assert.Equal(t, 100, s.BestScore)
		}
	}
	assert.Equal(t, 1, done)
}
