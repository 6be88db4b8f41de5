package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityKind enumerates the events shown on the activity timeline.
type ActivityKind string

const (
	ActivityLabStarted   ActivityKind = "lab_started"
	ActivityLabCompleted ActivityKind = "lab_completed"
	ActivityLabReset     ActivityKind = "lab_reset"
	ActivityQuizPassed   ActivityKind = "quiz_passed"
	ActivityNoteSaved    ActivityKind = "note_saved"
)

// ActivityEntry is one row of the timeline, written asynchronously by
// the activity consumer.
type ActivityEntry struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	LabId      string
	Kind       ActivityKind
	Detail     string
	Metadata   map[string]interface{}
	OccurredAt time.Time
}
