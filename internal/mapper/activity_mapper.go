package mapper

import (
	"encoding/json"

	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/model"

	"gorm.io/datatypes"
)

type ActivityMapper struct{}

func NewActivityMapper() *ActivityMapper {
	return &ActivityMapper{}
}

func (m *ActivityMapper) ToEntity(a *model.ActivityEntry) *entity.ActivityEntry {
	if a == nil {
		return nil
	}

	var meta map[string]interface{}
	if len(a.Metadata) > 0 {
		_ = json.Unmarshal(a.Metadata, &meta)
	}

	return &entity.ActivityEntry{
		Id:         a.Id,
		UserId:     a.UserId,
		LabId:      a.LabId,
		Kind:       entity.ActivityKind(a.Kind),
		Detail:     a.Detail,
		Metadata:   meta,
		OccurredAt: a.OccurredAt,
	}
}

func (m *ActivityMapper) ToModel(a *entity.ActivityEntry) *model.ActivityEntry {
	if a == nil {
		return nil
	}

	var meta datatypes.JSON
	if a.Metadata != nil {
		raw, err := json.Marshal(a.Metadata)
		if err == nil {
			meta = datatypes.JSON(raw)
		}
	}

	return &model.ActivityEntry{
		Id:         a.Id,
		UserId:     a.UserId,
		LabId:      a.LabId,
		Kind:       string(a.Kind),
		Detail:     a.Detail,
		Metadata:   meta,
		OccurredAt: a.OccurredAt,
	}
}

func (m *ActivityMapper) ToEntities(entries []*model.ActivityEntry) []*entity.ActivityEntry {
	entities := make([]*entity.ActivityEntry, len(entries))
	for i, a := range entries {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
