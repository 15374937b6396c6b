package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/incident-service/internal/domain"
)

func TestAssignTechnicianPicksFewestOpen(t *testing.T) {
	users, _, tech1, tech2, requester := testUsers()
	incidents := newFakeIncidentRepo()
	policy := NewAssignmentPolicy(users, incidents)

	incidents.add(&domain.Incident{Status: domain.IncidentStatusOpen, RequesterID: requester.ID, TechnicianID: &tech1.ID})
	incidents.add(&domain.Incident{Status: domain.IncidentStatusInProgress, RequesterID: requester.ID, TechnicianID: &tech1.ID})
	incidents.add(&domain.Incident{Status: domain.IncidentStatusPendingRequester, RequesterID: requester.ID, TechnicianID: &tech2.ID})

	selected, err := policy.AssignTechnician(context.Background())
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, tech2.ID, selected.ID)
}

func TestAssignTechnicianTieGoesToFirstEnumerated(t *testing.T) {
	users, _, tech1, tech2, requester := testUsers()
	incidents := newFakeIncidentRepo()
	policy := NewAssignmentPolicy(users, incidents)

	incidents.add(&domain.Incident{Status: domain.IncidentStatusOpen, RequesterID: requester.ID, TechnicianID: &tech1.ID})
	incidents.add(&domain.Incident{Status: domain.IncidentStatusOpen, RequesterID: requester.ID, TechnicianID: &tech2.ID})

	selected, err := policy.AssignTechnician(context.Background())
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, tech1.ID, selected.ID)
}

func TestAssignTechnicianNoTechnicians(t *testing.T) {
	users := newFakeUserRepo()
	users.add(&domain.User{ID: "00000003A", Role: domain.RoleRequester}, "secret")
	policy := NewAssignmentPolicy(users, newFakeIncidentRepo())

	selected, err := policy.AssignTechnician(context.Background())
	require.NoError(t, err)
	assert.Nil(t, selected)
}

func TestAssignTechnicianIgnoresClosedLoad(t *testing.T) {
	users, _, tech1, tech2, requester := testUsers()
	incidents := newFakeIncidentRepo()
	policy := NewAssignmentPolicy(users, incidents)

	incidents.add(&domain.Incident{Status: domain.IncidentStatusClosed, RequesterID: requester.ID, TechnicianID: &tech1.ID})
	incidents.add(&domain.Incident{Status: domain.IncidentStatusClosed, RequesterID: requester.ID, TechnicianID: &tech1.ID})
	incidents.add(&domain.Incident{Status: domain.IncidentStatusOpen, RequesterID: requester.ID, TechnicianID: &tech2.ID})

	selected, err := policy.AssignTechnician(context.Background())
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, tech1.ID, selected.ID)
}
