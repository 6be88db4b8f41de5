package service

import (
	"context"
	"time"

	"virtual-lab-be/internal/config"
	"virtual-lab-be/internal/dto"
	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/pkg/logger"
	"virtual-lab-be/internal/repository/specification"
	"virtual-lab-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IProgressService owns the XP ledger and completion records.
type IProgressService interface {
	// MarkLabCompleted upserts the completion record for a passed quiz
	// and returns the XP earned by this completion (zero on repeats
	// unless repeat XP is enabled).
	MarkLabCompleted(ctx context.Context, userId uuid.UUID, labId string, score, timeSpentSeconds int) (xpEarned int, firstCompletion bool, err error)
	Progress(ctx context.Context, userId uuid.UUID, totalLabs int) (*dto.ProgressResponse, error)
	CompletedLabs(ctx context.Context, userId uuid.UUID) (map[string]*entity.LabCompletion, error)
}

type progressService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        config.ProgressConfig
	logger     logger.ILogger
}

func NewProgressService(uowFactory unitofwork.RepositoryFactory, cfg config.ProgressConfig, log logger.ILogger) IProgressService {
	return &progressService{
		uowFactory: uowFactory,
		cfg:        cfg,
		logger:     log,
	}
}

// xpForScore maps the quiz score onto the configured XP tiers.
func (s *progressService) xpForScore(score int) int {
	switch {
	case score >= 100:
		return s.cfg.FullScoreXP
	case score >= 80:
		return s.cfg.PartialScoreXP
	default:
		return s.cfg.ReducedScoreXP
	}
}

func (s *progressService) MarkLabCompleted(ctx context.Context, userId uuid.UUID, labId string, score, timeSpentSeconds int) (int, bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, false, err
	}
	defer uow.Rollback()

	repo := uow.LabCompletionRepository()
	completion, err := repo.FindOne(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByLabID{LabID: labId},
	)
	if err != nil {
		return 0, false, err
	}

	now := time.Now()
	first := completion == nil || !completion.Completed()

	xp := 0
	if first {
		xp = s.xpForScore(score) + s.cfg.FirstCompletionXP
	} else if s.cfg.RepeatCompletionXP {
		xp = s.xpForScore(score)
	}

	if completion == nil {
		completion = &entity.LabCompletion{
			Id:        uuid.New(),
			UserId:    userId,
			LabId:     labId,
			CreatedAt: now,
		}
		if err := repo.Create(ctx, completion); err != nil {
			return 0, false, err
		}
	}

	completion.Attempts++
	completion.LastScore = score
	if score > completion.BestScore {
		completion.BestScore = score
	}
	completion.XPAwarded += xp
	completion.TimeSpentSeconds = timeSpentSeconds
	completion.LastCompletedAt = &now
	if completion.FirstCompletedAt == nil {
		completion.FirstCompletedAt = &now
	}

	if err := repo.Update(ctx, completion); err != nil {
		return 0, false, err
	}
	if err := uow.Commit(); err != nil {
		return 0, false, err
	}

	s.logger.Info("ProgressService", "Lab completion recorded", map[string]interface{}{
		"user_id": userId, "lab_id": labId, "score": score, "xp": xp, "first": first,
		"time_spent_seconds": timeSpentSeconds,
	})
	return xp, first, nil
}

func (s *progressService) Progress(ctx context.Context, userId uuid.UUID, totalLabs int) (*dto.ProgressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	completions, err := uow.LabCompletionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "first_completed_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ProgressResponse{
		TotalLabs:   totalLabs,
		Completions: make([]*dto.LabCompletionResponse, 0, len(completions)),
	}
	for _, c := range completions {
		res.TotalXP += c.XPAwarded
		if c.Completed() {
			res.CompletedLabs++
		}
		res.Completions = append(res.Completions, &dto.LabCompletionResponse{
			LabId:            c.LabId,
			BestScore:        c.BestScore,
			LastScore:        c.LastScore,
			Attempts:         c.Attempts,
			XPAwarded:        c.XPAwarded,
			TimeSpentSeconds: c.TimeSpentSeconds,
			FirstCompletedAt: c.FirstCompletedAt,
			LastCompletedAt:  c.LastCompletedAt,
		})
	}
	return res, nil
}

func (s *progressService) CompletedLabs(ctx context.Context, userId uuid.UUID) (map[string]*entity.LabCompletion, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	completions, err := uow.LabCompletionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.CompletedOnly{},
	)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*entity.LabCompletion, len(completions))
	for _, c := range completions {
		out[c.LabId] = c
	}
	return out, nil
}
