package domain

import "time"

// Comment is a discussion entry attached to an incident.
type Comment struct {
	ID         string
	IncidentID string
	AuthorID   string
	Body       string
	CreatedAt  time.Time
}
