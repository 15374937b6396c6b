package service

import (
	"context"

	"github.com/spec-kit/incident-service/internal/domain"
	"github.com/spec-kit/incident-service/internal/repository"
)

// AssignmentPolicy picks the technician with the fewest incidents that are
// not yet closed. It reads current load and decides without locking, so two
// concurrent creations can both pick the same technician; callers accept
// that as approximate balancing.
type AssignmentPolicy struct {
	users     repository.UserRepository
	incidents repository.IncidentRepository
}

// NewAssignmentPolicy constructs the policy.
func NewAssignmentPolicy(users repository.UserRepository, incidents repository.IncidentRepository) *AssignmentPolicy {
	return &AssignmentPolicy{users: users, incidents: incidents}
}

// AssignTechnician returns the least-loaded technician, or nil when no
// technicians exist. Ties go to the technician enumerated first.
func (p *AssignmentPolicy) AssignTechnician(ctx context.Context) (*domain.User, error) {
	technicians, err := p.users.ListTechnicians(ctx)
	if err != nil {
		return nil, err
	}
	if len(technicians) == 0 {
		return nil, nil
	}

	var selected *domain.User
	bestLoad := 0
	for i := range technicians {
		load, err := p.openIncidentCount(ctx, technicians[i].ID)
		if err != nil {
			return nil, err
		}
		if selected == nil || load < bestLoad {
			selected = &technicians[i]
			bestLoad = load
		}
	}
	return selected, nil
}

func (p *AssignmentPolicy) openIncidentCount(ctx context.Context, technicianID string) (int, error) {
	assigned, err := p.incidents.ListByTechnician(ctx, technicianID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, incident := range assigned {
		if incident.Status != domain.IncidentStatusClosed {
			count++
		}
	}
	return count, nil
}
