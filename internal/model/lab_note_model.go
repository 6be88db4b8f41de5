package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabNote struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_note_user_lab,priority:1"`
	LabId     string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_note_user_lab,priority:2"`
	Content   string         `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LabNote) TableName() string {
	return "lab_notes"
}
