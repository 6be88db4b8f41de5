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

type LabCompletionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LabCompletionMapper
}

func NewLabCompletionRepository(db *gorm.DB) contract.LabCompletionRepository {
	return &LabCompletionRepositoryImpl{
		db:     db,
		mapper: mapper.NewLabCompletionMapper(),
	}
}

func (r *LabCompletionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LabCompletionRepositoryImpl) Create(ctx context.Context, completion *entity.LabCompletion) error {
	m := r.mapper.ToModel(completion)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*completion = *r.mapper.ToEntity(m)
	return nil
}

func (r *LabCompletionRepositoryImpl) Update(ctx context.Context, completion *entity.LabCompletion) error {
	m := r.mapper.ToModel(completion)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*completion = *r.mapper.ToEntity(m)
	return nil
}

func (r *LabCompletionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LabCompletion, error) {
	var m model.LabCompletion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LabCompletionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LabCompletion, error) {
	var models []*model.LabCompletion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LabCompletionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LabCompletion{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *LabCompletionRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.LabCompletion{}).Error
}
