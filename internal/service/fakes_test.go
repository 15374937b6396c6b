package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/incident-service/internal/domain"
	"github.com/spec-kit/incident-service/internal/repository"
)

// In-memory repository fakes. They mimic the ordering and sentinel-error
// behavior of the pgx implementations: lists come back newest-first for
// incidents and oldest-first for comments and status changes, and a missing
// row is pgx.ErrNoRows.

type fakeUserRepo struct {
	users   []*domain.User
	secrets map[string]string
	lookups int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{secrets: map[string]string{}}
}

func (r *fakeUserRepo) add(user *domain.User, secret string) {
	r.users = append(r.users, user)
	r.secrets[user.ID] = secret
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.ID == user.ID {
			return fmt.Errorf("duplicate key %s", user.ID)
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	for i, existing := range r.users {
		if existing.ID == user.ID {
			r.users[i] = user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByIDAndSecret(ctx context.Context, id, secret string) (*domain.User, error) {
	r.lookups++
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.secrets[id] != secret {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) ListTechnicians(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		if user.Role == domain.RoleTechnician {
			result = append(result, *user)
		}
	}
	return result, nil
}

type fakeIncidentRepo struct {
	incidents []*domain.Incident
	nextID    int
	now       time.Time
}

func newFakeIncidentRepo() *fakeIncidentRepo {
	return &fakeIncidentRepo{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (r *fakeIncidentRepo) add(incident *domain.Incident) {
	if incident.ID == "" {
		r.nextID++
		incident.ID = fmt.Sprintf("INC-%d", r.nextID)
	}
	r.incidents = append(r.incidents, incident)
}

func (r *fakeIncidentRepo) Create(_ context.Context, incident *domain.Incident) error {
	r.nextID++
	incident.ID = fmt.Sprintf("INC-%d", r.nextID)
	r.now = r.now.Add(time.Minute)
	incident.CreatedAt = r.now
	incident.UpdatedAt = r.now
	stored := *incident
	r.incidents = append(r.incidents, &stored)
	return nil
}

func (r *fakeIncidentRepo) Update(_ context.Context, incident *domain.Incident) error {
	for i, existing := range r.incidents {
		if existing.ID == incident.ID {
			stored := *incident
			stored.CreatedAt = existing.CreatedAt
			r.incidents[i] = &stored
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeIncidentRepo) GetByID(_ context.Context, id string) (*domain.Incident, error) {
	for _, incident := range r.incidents {
		if incident.ID == id {
			copied := *incident
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeIncidentRepo) List(ctx context.Context) ([]domain.Incident, error) {
	return r.ListWithFilter(ctx, repository.IncidentFilter{})
}

func (r *fakeIncidentRepo) ListByRequester(ctx context.Context, requesterID string) ([]domain.Incident, error) {
	return r.ListWithFilter(ctx, repository.IncidentFilter{RequesterID: &requesterID})
}

func (r *fakeIncidentRepo) ListByTechnician(ctx context.Context, technicianID string) ([]domain.Incident, error) {
	return r.ListWithFilter(ctx, repository.IncidentFilter{TechnicianID: &technicianID})
}

func (r *fakeIncidentRepo) ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]domain.Incident, error) {
	return r.ListWithFilter(ctx, repository.IncidentFilter{Status: &status})
}

func (r *fakeIncidentRepo) ListWithFilter(_ context.Context, filter repository.IncidentFilter) ([]domain.Incident, error) {
	var result []domain.Incident
	for _, incident := range r.incidents {
		if filter.RequesterID != nil && incident.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.TechnicianID != nil && (incident.TechnicianID == nil || *incident.TechnicianID != *filter.TechnicianID) {
			continue
		}
		if filter.Status != nil && incident.Status != *filter.Status {
			continue
		}
		result = append(result, *incident)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type fakeCommentRepo struct {
	comments []*domain.Comment
	nextID   int
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.nextID++
	comment.ID = fmt.Sprintf("CMT-%d", r.nextID)
	comment.CreatedAt = time.Now()
	stored := *comment
	r.comments = append(r.comments, &stored)
	return nil
}

func (r *fakeCommentRepo) ListByIncident(_ context.Context, incidentID string) ([]domain.Comment, error) {
	var result []domain.Comment
	for _, comment := range r.comments {
		if comment.IncidentID == incidentID {
			result = append(result, *comment)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

type fakeStatusChangeRepo struct {
	changes []*domain.StatusChange
	nextID  int
	now     time.Time
}

func newFakeStatusChangeRepo() *fakeStatusChangeRepo {
	return &fakeStatusChangeRepo{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (r *fakeStatusChangeRepo) add(change *domain.StatusChange) {
	if change.ID == "" {
		r.nextID++
		change.ID = fmt.Sprintf("CHG-%d", r.nextID)
	}
	r.changes = append(r.changes, change)
}

func (r *fakeStatusChangeRepo) Create(_ context.Context, change *domain.StatusChange) error {
	r.nextID++
	change.ID = fmt.Sprintf("CHG-%d", r.nextID)
	r.now = r.now.Add(time.Second)
	change.ChangedAt = r.now
	stored := *change
	r.changes = append(r.changes, &stored)
	return nil
}

func (r *fakeStatusChangeRepo) ListByIncident(_ context.Context, incidentID string) ([]domain.StatusChange, error) {
	var result []domain.StatusChange
	for _, change := range r.changes {
		if change.IncidentID == incidentID {
			result = append(result, *change)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ChangedAt.Before(result[j].ChangedAt)
	})
	return result, nil
}

func strPtr(s string) *string {
	return &s
}
