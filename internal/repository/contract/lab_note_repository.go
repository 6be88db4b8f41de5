package contract

import (
	"context"

	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LabNoteRepository interface {
	Create(ctx context.Context, note *entity.LabNote) error
	Update(ctx context.Context, note *entity.LabNote) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LabNote, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LabNote, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
