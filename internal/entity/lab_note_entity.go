package entity

import (
	"time"

	"github.com/google/uuid"
)

// LabNote is the student's free-form notebook entry for one lab. One
// note per user per lab, upserted in place.
type LabNote struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	LabId     string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
