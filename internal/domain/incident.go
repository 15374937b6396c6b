package domain

import "time"

// IncidentStatus enumerates the lifecycle states of an incident.
type IncidentStatus string

const (
	IncidentStatusOpen             IncidentStatus = "OPEN"
	IncidentStatusInProgress       IncidentStatus = "IN_PROGRESS"
	IncidentStatusPendingRequester IncidentStatus = "PENDING_REQUESTER"
	IncidentStatusClosed           IncidentStatus = "CLOSED"
)

// KnownStatuses lists every lifecycle state in display order. Aggregations
// iterate this to zero-fill buckets.
var KnownStatuses = []IncidentStatus{
	IncidentStatusOpen,
	IncidentStatusInProgress,
	IncidentStatusPendingRequester,
	IncidentStatusClosed,
}

// Valid reports whether the status is one of the known lifecycle states.
func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentStatusOpen, IncidentStatusInProgress, IncidentStatusPendingRequester, IncidentStatusClosed:
		return true
	}
	return false
}

// Open reports whether the status counts as unresolved work.
func (s IncidentStatus) Open() bool {
	return s != IncidentStatusClosed
}

// Incident is a reported support issue. TechnicianID is nil while the
// incident is unassigned.
type Incident struct {
	ID           string
	Title        string
	Description  string
	Category     string
	Status       IncidentStatus
	RequesterID  string
	TechnicianID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
