package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActivityEntry struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index:idx_activity_user_time,priority:1"`
	LabId      string         `gorm:"type:varchar(64);index"`
	Kind       string         `gorm:"type:varchar(32);not null;index"`
	Detail     string         `gorm:"type:text"`
	Metadata   datatypes.JSON `gorm:"type:jsonb"`
	OccurredAt time.Time      `gorm:"not null;index:idx_activity_user_time,priority:2"`
}

func (ActivityEntry) TableName() string {
	return "activity_entries"
}
