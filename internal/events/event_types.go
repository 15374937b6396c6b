package events

import (
	"time"

	"github.com/spec-kit/incident-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIncidentCreated       EventType = "incident_created"
	EventIncidentStatusChanged EventType = "incident_status_changed"
	EventIncidentAssigned      EventType = "incident_assigned"
	EventIncidentCommentAdded  EventType = "incident_comment_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	IncidentID string      `json:"incident_id"`
	ActorID    string      `json:"actor_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// IncidentCreatedPayload payload.
type IncidentCreatedPayload struct {
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	RequesterID  string  `json:"requester_id"`
	TechnicianID *string `json:"technician_id,omitempty"`
}

// IncidentStatusChangedPayload payload.
type IncidentStatusChangedPayload struct {
	PreviousStatus *domain.IncidentStatus `json:"previous_status,omitempty"`
	NewStatus      domain.IncidentStatus  `json:"new_status"`
}

// IncidentAssignedPayload payload.
type IncidentAssignedPayload struct {
	TechnicianID *string `json:"technician_id,omitempty"`
}

// IncidentCommentAddedPayload payload.
type IncidentCommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	AuthorID    string `json:"author_id"`
	BodyPreview string `json:"body_preview"`
}
