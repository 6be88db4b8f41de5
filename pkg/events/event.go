package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "LAB_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the concrete implementation every producer uses.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event codes produced by the lab backend.
const (
	TypeLabCompleted = "LAB_COMPLETED"
	TypeQuizPassed   = "QUIZ_PASSED"
	TypeXPAwarded    = "XP_AWARDED"
)

// NewLabCompleted builds the event published when a student finishes a
// lab. user_id is the convention the notification service resolves
// recipients by.
func NewLabCompleted(userID, labID, labTitle string, score, xp int) Event {
	return BaseEvent{
		Type: TypeLabCompleted,
		Data: map[string]interface{}{
			"user_id":   userID,
			"lab_id":    labID,
			"lab_title": labTitle,
			"score":     score,
			"xp":        xp,
		},
		OccurredAt: time.Now(),
	}
}

func NewQuizPassed(userID, labID, labTitle string, attempt int) Event {
	return BaseEvent{
		Type: TypeQuizPassed,
		Data: map[string]interface{}{
			"user_id":   userID,
			"lab_id":    labID,
			"lab_title": labTitle,
			"attempt":   attempt,
		},
		OccurredAt: time.Now(),
	}
}

func NewXPAwarded(userID, labID string, xp, totalXP int) Event {
	return BaseEvent{
		Type: TypeXPAwarded,
		Data: map[string]interface{}{
			"user_id":  userID,
			"lab_id":   labID,
			"xp":       xp,
			"total_xp": totalXP,
		},
		OccurredAt: time.Now(),
	}
}
