package mapper

import (
	"time"

	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/model"

	"gorm.io/gorm"
)

type LabNoteMapper struct{}

func NewLabNoteMapper() *LabNoteMapper {
	return &LabNoteMapper{}
}

func (m *LabNoteMapper) ToEntity(n *model.LabNote) *entity.LabNote {
	if n == nil {
		return nil
	}

	var deletedAt *time.Time
	if n.DeletedAt.Valid {
		t := n.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.LabNote{
		Id:        n.Id,
		UserId:    n.UserId,
		LabId:     n.LabId,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: n.DeletedAt.Valid,
	}
}

func (m *LabNoteMapper) ToModel(n *entity.LabNote) *model.LabNote {
	if n == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if n.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *n.DeletedAt, Valid: true}
	} else if n.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.LabNote{
		Id:        n.Id,
		UserId:    n.UserId,
		LabId:     n.LabId,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *LabNoteMapper) ToEntities(notes []*model.LabNote) []*entity.LabNote {
	entities := make([]*entity.LabNote, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
