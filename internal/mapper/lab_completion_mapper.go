package mapper

import (
	"time"

	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/model"
)

type LabCompletionMapper struct{}

func NewLabCompletionMapper() *LabCompletionMapper {
	return &LabCompletionMapper{}
}

func (m *LabCompletionMapper) ToEntity(c *model.LabCompletion) *entity.LabCompletion {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.LabCompletion{
		Id:               c.Id,
		UserId:           c.UserId,
		LabId:            c.LabId,
		BestScore:        c.BestScore,
		LastScore:        c.LastScore,
		Attempts:         c.Attempts,
		XPAwarded:        c.XPAwarded,
		TimeSpentSeconds: c.TimeSpentSeconds,
		FirstCompletedAt: c.FirstCompletedAt,
		LastCompletedAt:  c.LastCompletedAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *LabCompletionMapper) ToModel(c *entity.LabCompletion) *model.LabCompletion {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.LabCompletion{
		Id:               c.Id,
		UserId:           c.UserId,
		LabId:            c.LabId,
		BestScore:        c.BestScore,
		LastScore:        c.LastScore,
		Attempts:         c.Attempts,
		XPAwarded:        c.XPAwarded,
		TimeSpentSeconds: c.TimeSpentSeconds,
		FirstCompletedAt: c.FirstCompletedAt,
		LastCompletedAt:  c.LastCompletedAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *LabCompletionMapper) ToEntities(completions []*model.LabCompletion) []*entity.LabCompletion {
	entities := make([]*entity.LabCompletion, len(completions))
	for i, c := range completions {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
