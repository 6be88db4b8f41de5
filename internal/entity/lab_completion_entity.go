package entity

import (
	"time"

	"github.com/google/uuid"
)

// LabCompletion is one user's persistent record for one lab. It survives
// session resets; FirstCompletedAt never moves once set.
type LabCompletion struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	LabId            string
	BestScore        int
	LastScore        int
	Attempts         int
	XPAwarded        int
	TimeSpentSeconds int
	FirstCompletedAt *time.Time
	LastCompletedAt  *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// Completed reports whether this lab has ever been finished.
func (c *LabCompletion) Completed() bool {
	return c.FirstCompletedAt != nil
}

// UserProgress is the derived aggregate shown on the dashboard. It is
// computed from completions, never stored.
type UserProgress struct {
	UserId        uuid.UUID
	TotalXP       int
	CompletedLabs int
	Completions   []*LabCompletion
}
