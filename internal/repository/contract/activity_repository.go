package contract

import (
	"context"

	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/repository/specification"
)

type ActivityRepository interface {
	Create(ctx context.Context, entry *entity.ActivityEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
