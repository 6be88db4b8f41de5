package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveLabNoteRequest struct {
	Content string `json:"content" validate:"required"`
}

type LabNoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	LabId     string     `json:"lab_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
