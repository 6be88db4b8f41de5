package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy scopes a query to one user's rows.
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByLabID filters by the blueprint id.
type ByLabID struct {
	LabID string
}

func (s ByLabID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lab_id = ?", s.LabID)
}

// CompletedOnly keeps completion rows that have actually been finished
// at least once.
type CompletedOnly struct{}

func (s CompletedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("first_completed_at IS NOT NULL")
}

// ByActivityKind filters timeline rows by event kind.
type ByActivityKind struct {
	Kind string
}

func (s ByActivityKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}
