package unitofwork

import (
	"context"

	"virtual-lab-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	LabCompletionRepository() contract.LabCompletionRepository
	LabNoteRepository() contract.LabNoteRepository
	ActivityRepository() contract.ActivityRepository
}
