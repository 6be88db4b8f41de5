package implementation

import (
	"context"
	"errors"

	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/mapper"
	"virtual-lab-be/internal/model"
	"virtual-lab-be/internal/repository/contract"
	"virtual-lab-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabNoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LabNoteMapper
}

func NewLabNoteRepository(db *gorm.DB) contract.LabNoteRepository {
	return &LabNoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewLabNoteMapper(),
	}
}

func (r *LabNoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LabNoteRepositoryImpl) Create(ctx context.Context, note *entity.LabNote) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *LabNoteRepositoryImpl) Update(ctx context.Context, note *entity.LabNote) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *LabNoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.LabNote{}, id).Error
}

func (r *LabNoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LabNote, error) {
	var m model.LabNote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LabNoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LabNote, error) {
	var models []*model.LabNote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LabNoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LabNote{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
