package service

import (
	"context"
	"testing"

	"virtual-lab-be/internal/config"
	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/repository/contract"
	"virtual-lab-be/internal/repository/specification"
	"virtual-lab-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeCompletionRepo keeps completions in memory and interprets the
// ownership specs by type switch instead of building SQL.
type fakeCompletionRepo struct {
	completions []*entity.LabCompletion
}

func matchCompletion(c *entity.LabCompletion, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.OwnedBy:
			if c.UserId != sp.UserID {
				return false
			}
		case specification.ByLabID:
			if c.LabId != sp.LabID {
				return false
			}
		case specification.CompletedOnly:
			if !c.Completed() {
				return false
			}
		}
	}
	return true
}

func (r *fakeCompletionRepo) Create(ctx context.Context, completion *entity.LabCompletion) error {
	r.completions = append(r.completions, completion)
	return nil
}

func (r *fakeCompletionRepo) Update(ctx context.Context, completion *entity.LabCompletion) error {
	for i, c := range r.completions {
		if c.Id == completion.Id {
			r.completions[i] = completion
			return nil
		}
	}
	r.completions = append(r.completions, completion)
	return nil
}

func (r *fakeCompletionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LabCompletion, error) {
	for _, c := range r.completions {
		if matchCompletion(c, specs) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCompletionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LabCompletion, error) {
	var out []*entity.LabCompletion
	for _, c := range r.completions {
		if matchCompletion(c, specs) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompletionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeCompletionRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	var kept []*entity.LabCompletion
	for _, c := range r.completions {
		if c.UserId != userId {
			kept = append(kept, c)
		}
	}
	r.completions = kept
	return nil
}

type fakeUnitOfWork struct {
	completions *fakeCompletionRepo
	commits     int
	rollbacks   int
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { u.commits++; return nil }
func (u *fakeUnitOfWork) Rollback() error                 { u.rollbacks++; return nil }

func (u *fakeUnitOfWork) LabCompletionRepository() contract.LabCompletionRepository {
	return u.completions
}
func (u *fakeUnitOfWork) LabNoteRepository() contract.LabNoteRepository { return nil }
func (u *fakeUnitOfWork) ActivityRepository() contract.ActivityRepository {
	return nil
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func testProgressConfig() config.ProgressConfig {
	return config.ProgressConfig{
		FullScoreXP:        100,
		PartialScoreXP:     80,
		ReducedScoreXP:     60,
		FirstCompletionXP:  50,
		RepeatCompletionXP: false,
	}
}

func newTestProgressService(cfg config.ProgressConfig) (IProgressService, *fakeCompletionRepo) {
	repo := &fakeCompletionRepo{}
	factory := &fakeFactory{uow: &fakeUnitOfWork{completions: repo}}
	return NewProgressService(factory, cfg, nopLogger{}), repo
}

func TestMarkLabCompletedFirstTimeAwardsTierPlusBonus(t *testing.T) {
	svc, repo := newTestProgressService(testProgressConfig())
	userId := uuid.New()

	xp, first, err := svc.MarkLabCompleted(context.Background(), userId, "flame-test", 100, 90)
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, 150, xp)

	require.Len(t, repo.completions, 1)
	c := repo.completions[0]
	assert.Equal(t, 1, c.Attempts)
	assert.Equal(t, 100, c.BestScore)
	assert.Equal(t, 150, c.XPAwarded)
	assert.Equal(t, 90, c.TimeSpentSeconds)
	require.NotNil(t, c.FirstCompletedAt)
}

func TestMarkLabCompletedXPTiers(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		expected int
	}{
		{"full score", 100, 150},
		{"partial score", 80, 130},
		{"reduced score", 60, 110},
		{"low score still reduced tier", 10, 110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestProgressService(testProgressConfig())
			xp, first, err := svc.MarkLabCompleted(context.Background(), uuid.New(), "gas-identification", tt.score, 90)
			require.NoError(t, err)
			assert.True(t, first)
			assert.Equal(t, tt.expected, xp)
		})
	}
}

func TestMarkLabCompletedRepeatAwardsNothingByDefault(t *testing.T) {
	svc, repo := newTestProgressService(testProgressConfig())
	userId := uuid.New()

	_, _, err := svc.MarkLabCompleted(context.Background(), userId, "flame-test", 80, 90)
	require.NoError(t, err)

	xp, first, err := svc.MarkLabCompleted(context.Background(), userId, "flame-test", 100, 90)
	require.NoError(t, err)
	assert.False(t, first)
	assert.Zero(t, xp)

	c := repo.completions[0]
	assert.Equal(t, 2, c.Attempts)
	assert.Equal(t, 100, c.BestScore)
	assert.Equal(t, 100, c.LastScore)
	assert.Equal(t, 130, c.XPAwarded)
}

func TestMarkLabCompletedRepeatPolicyEnabled(t *testing.T) {
	cfg := testProgressConfig()
	cfg.RepeatCompletionXP = true
	svc, _ := newTestProgressService(cfg)
	userId := uuid.New()

	_, _, err := svc.MarkLabCompleted(context.Background(), userId, "flame-test", 100, 90)
	require.NoError(t, err)

	// Repeats earn the tier XP but never the first completion bonus.
	xp, first, err := svc.MarkLabCompleted(context.Background(), userId, "flame-test", 100, 90)
	require.NoError(t, err)
	assert.False(t, first)
	assert.Equal(t, 100, xp)
}

func TestMarkLabCompletedFirstCompletedAtIsImmutable(t *testing.T) {
	svc, repo := newTestProgressService(testProgressConfig())
	userId := uuid.New()

	_, _, err := svc.MarkLabCompleted(context.Background(), userId, "ammonia-test", 100, 90)
	require.NoError(t, err)
	firstAt := repo.completions[0].FirstCompletedAt
	require.NotNil(t, firstAt)

	_, _, err = svc.MarkLabCompleted(context.Background(), userId, "ammonia-test", 100, 90)
	require.NoError(t, err)
	assert.Equal(t, firstAt, repo.completions[0].FirstCompletedAt)
	assert.NotEqual(t, firstAt, repo.completions[0].LastCompletedAt)
}

func TestMarkLabCompletedBestScoreNeverDrops(t *testing.T) {
	svc, repo := newTestProgressService(testProgressConfig())
	userId := uuid.New()

	_, _, err := svc.MarkLabCompleted(context.Background(), userId, "flame-test", 100, 90)
	require.NoError(t, err)
	_, _, err = svc.MarkLabCompleted(context.Background(), userId, "flame-test", 60, 90)
	require.NoError(t, err)

	c := repo.completions[0]
	assert.Equal(t, 100, c.BestScore)
	assert.Equal(t, 60, c.LastScore)
}

func TestProgressAggregatesCompletions(t *testing.T) {
	svc, _ := newTestProgressService(testProgressConfig())
	userId := uuid.New()

	_, _, err := svc.MarkLabCompleted(context.Background(), userId, "flame-test", 100, 90)
	require.NoError(t, err)
	_, _, err = svc.MarkLabCompleted(context.Background(), userId, "ammonia-test", 80, 90)
	require.NoError(t, err)

	res, err := svc.Progress(context.Background(), userId, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, res.TotalLabs)
	assert.Equal(t, 2, res.CompletedLabs)
	assert.Equal(t, 280, res.TotalXP)
	require.Len(t, res.Completions, 2)
}

func TestProgressIsolatedPerUser(t *testing.T) {
	svc, _ := newTestProgressService(testProgressConfig())
	userA := uuid.New()
	userB := uuid.New()

	_, _, err := svc.MarkLabCompleted(context.Background(), userA, "flame-test", 100, 90)
	require.NoError(t, err)

	res, err := svc.Progress(context.Background(), userB, 6)
	require.NoError(t, err)
	assert.Zero(t, res.CompletedLabs)
	assert.Zero(t, res.TotalXP)
	assert.Empty(t, res.Completions)
}

func TestCompletedLabsKeyedByLab(t *testing.T) {
	svc, _ := newTestProgressService(testProgressConfig())
	userId := uuid.New()

	_, _, err := svc.MarkLabCompleted(context.Background(), userId, "flame-test", 100, 90)
	require.NoError(t, err)
	_, _, err = svc.MarkLabCompleted(context.Background(), userId, "gas-identification", 60, 90)
	require.NoError(t, err)

	labs, err := svc.CompletedLabs(context.Background(), userId)
	require.NoError(t, err)
	require.Len(t, labs, 2)
	assert.Contains(t, labs, "flame-test")
	assert.Contains(t, labs, "gas-identification")
}
