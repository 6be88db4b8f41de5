package websocket

import (
	"virtual-lab-be/internal/lab"

	"github.com/google/uuid"
)

// SessionSink routes one session's side effects to the owning user's
// sockets. It satisfies the lab.Sink interface.
type SessionSink struct {
	hub    *Hub
	userID uuid.UUID
	labID  string
}

func (s *SessionSink) Narrate(text string) {
	s.hub.Push(s.userID, FrameNarration, map[string]interface{}{
		"lab_id": s.labID,
		"text":   text,
	})
}

func (s *SessionSink) Notify(title, description, variant string) {
	s.hub.Push(s.userID, FrameNotice, map[string]interface{}{
		"lab_id":      s.labID,
		"title":       title,
		"description": description,
		"variant":     variant,
	})
}

func (s *SessionSink) Celebrate() {
	s.hub.Push(s.userID, FrameCelebration, map[string]interface{}{
		"lab_id": s.labID,
	})
}

// SinkProvider builds sinks for the session service.
type SinkProvider struct {
	hub *Hub
}

func NewSinkProvider(hub *Hub) *SinkProvider {
	return &SinkProvider{hub: hub}
}

func (p *SinkProvider) SinkFor(userID uuid.UUID, labID string) lab.Sink {
	return &SessionSink{hub: p.hub, userID: userID, labID: labID}
}
