package contract

import (
	"context"

	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LabCompletionRepository interface {
	Create(ctx context.Context, completion *entity.LabCompletion) error
	Update(ctx context.Context, completion *entity.LabCompletion) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LabCompletion, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LabCompletion, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
}
