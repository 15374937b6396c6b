package domain

import "time"

// StatusChange is one append-only audit record of an incident status
// transition. PreviousStatus is nil for the record written at creation.
type StatusChange struct {
	ID             string
	IncidentID     string
	PreviousStatus *IncidentStatus
	NewStatus      IncidentStatus
	ChangedByID    string
	ChangedAt      time.Time
}
