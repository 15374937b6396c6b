package dto

import (
	"time"

	"github.com/spec-kit/incident-service/internal/domain"
)

// CreateIncidentRequest payload.
type CreateIncidentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdateIncidentRequest payload. Requester and creation time are not
// accepted; the service ignores any attempt to change them.
type UpdateIncidentRequest struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Category     string                `json:"category"`
	Status       domain.IncidentStatus `json:"status"`
	TechnicianID *string               `json:"technician_id"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// IncidentResponse serializes an incident.
type IncidentResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Category     string                `json:"category"`
	Status       domain.IncidentStatus `json:"status"`
	RequesterID  string                `json:"requester_id"`
	TechnicianID *string               `json:"technician_id,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// CommentResponse serializes a discussion entry.
type CommentResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusChangeResponse serializes an audit-trail record.
type StatusChangeResponse struct {
	ID             string                 `json:"id"`
	PreviousStatus *domain.IncidentStatus `json:"previous_status,omitempty"`
	NewStatus      domain.IncidentStatus  `json:"new_status"`
	ChangedByID    string                 `json:"changed_by_id"`
	ChangedAt      time.Time              `json:"changed_at"`
}

// IncidentDetailResponse bundles an incident with its thread and trail.
type IncidentDetailResponse struct {
	Incident IncidentResponse       `json:"incident"`
	Comments []CommentResponse      `json:"comments"`
	History  []StatusChangeResponse `json:"history"`
}

// FromIncident maps a domain incident to its response form.
func FromIncident(incident *domain.Incident) IncidentResponse {
	return IncidentResponse{
		ID:           incident.ID,
		Title:        incident.Title,
		Description:  incident.Description,
		Category:     incident.Category,
		Status:       incident.Status,
		RequesterID:  incident.RequesterID,
		TechnicianID: incident.TechnicianID,
		CreatedAt:    incident.CreatedAt,
		UpdatedAt:    incident.UpdatedAt,
	}
}

// FromIncidents maps a slice of incidents.
func FromIncidents(incidents []domain.Incident) []IncidentResponse {
	result := make([]IncidentResponse, 0, len(incidents))
	for i := range incidents {
		result = append(result, FromIncident(&incidents[i]))
	}
	return result
}

// FromComments maps a slice of comments.
func FromComments(comments []domain.Comment) []CommentResponse {
	result := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		result = append(result, CommentResponse{
			ID:        comment.ID,
			AuthorID:  comment.AuthorID,
			Body:      comment.Body,
			CreatedAt: comment.CreatedAt,
		})
	}
	return result
}

// FromStatusChanges maps a slice of audit records.
func FromStatusChanges(changes []domain.StatusChange) []StatusChangeResponse {
	result := make([]StatusChangeResponse, 0, len(changes))
	for _, change := range changes {
		result = append(result, StatusChangeResponse{
			ID:             change.ID,
			PreviousStatus: change.PreviousStatus,
			NewStatus:      change.NewStatus,
			ChangedByID:    change.ChangedByID,
			ChangedAt:      change.ChangedAt,
		})
	}
	return result
}
