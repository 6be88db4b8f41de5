package model

import (
	"time"

	"github.com/google/uuid"
)

type LabCompletion struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_completion_user_lab,priority:1"`
	LabId            string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_completion_user_lab,priority:2"`
	BestScore        int        `gorm:"not null;default:0"`
	LastScore        int        `gorm:"not null;default:0"`
	Attempts         int        `gorm:"not null;default:0"`
	XPAwarded        int        `gorm:"not null;default:0"`
	TimeSpentSeconds int        `gorm:"not null;default:0"`
	FirstCompletedAt *time.Time `gorm:"index"`
	LastCompletedAt  *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (LabCompletion) TableName() string {
	return "lab_completions"
}
