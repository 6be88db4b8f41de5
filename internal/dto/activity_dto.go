package dto

import (
	"time"

	"github.com/google/uuid"
)

// ActivityMessage is the payload published to the in-process activity
// topic and consumed asynchronously into the timeline table.
type ActivityMessage struct {
	UserId     uuid.UUID              `json:"user_id"`
	LabId      string                 `json:"lab_id,omitempty"`
	Kind       string                 `json:"kind"`
	Detail     string                 `json:"detail"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type ActivityEntryResponse struct {
	Id         uuid.UUID              `json:"id"`
	LabId      string                 `json:"lab_id,omitempty"`
	Kind       string                 `json:"kind"`
	Detail     string                 `json:"detail"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type ActivityFeedResponse struct {
	Entries []*ActivityEntryResponse `json:"entries"`
	Total   int64                    `json:"total"`
}
