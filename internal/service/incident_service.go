package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/incident-service/internal/auth"
	"github.com/spec-kit/incident-service/internal/domain"
	"github.com/spec-kit/incident-service/internal/events"
	"github.com/spec-kit/incident-service/internal/repository"
	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

// IncidentService coordinates the incident lifecycle: creation with
// automatic assignment, updates that keep the audit trail in step with the
// stored status, role-scoped reads, the discussion thread, and the
// credential check.
type IncidentService struct {
	incidents  repository.IncidentRepository
	users      repository.UserRepository
	comments   repository.CommentRepository
	changes    repository.StatusChangeRepository
	policy     *AssignmentPolicy
	dispatcher events.Dispatcher
}

// IncidentDependencies bundles collaborators for the incident service.
type IncidentDependencies struct {
	IncidentRepo     repository.IncidentRepository
	UserRepo         repository.UserRepository
	CommentRepo      repository.CommentRepository
	StatusChangeRepo repository.StatusChangeRepository
	Policy           *AssignmentPolicy
	Dispatcher       events.Dispatcher
}

// IncidentDraft describes incident creation input.
type IncidentDraft struct {
	Title       string
	Description string
	Category    string
}

// NewIncidentService constructs the service.
func NewIncidentService(deps IncidentDependencies) *IncidentService {
	return &IncidentService{
		incidents:  deps.IncidentRepo,
		users:      deps.UserRepo,
		comments:   deps.CommentRepo,
		changes:    deps.StatusChangeRepo,
		policy:     deps.Policy,
		dispatcher: deps.Dispatcher,
	}
}

// CreateIncident opens a new incident for the requester. The incident always
// starts OPEN, a technician is picked by the assignment policy when one
// exists, and the initial audit record (previous status nil) is appended
// right after the incident row lands. The two writes are not transactional;
// a crash between them leaves an incident without history.
func (s *IncidentService) CreateIncident(ctx context.Context, draft IncidentDraft, requester *domain.User) (*domain.Incident, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}

	incident := &domain.Incident{
		Title:       title,
		Description: strings.TrimSpace(draft.Description),
		Category:    strings.TrimSpace(draft.Category),
		Status:      domain.IncidentStatusOpen,
		RequesterID: requester.ID,
	}

	technician, err := s.policy.AssignTechnician(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if technician != nil {
		incident.TechnicianID = &technician.ID
	}

	if err := s.incidents.Create(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.changes.Create(ctx, &domain.StatusChange{
		IncidentID:  incident.ID,
		NewStatus:   domain.IncidentStatusOpen,
		ChangedByID: requester.ID,
	}); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:       events.EventIncidentCreated,
		IncidentID: incident.ID,
		ActorID:    requester.ID,
		Payload: events.IncidentCreatedPayload{
			Title:        incident.Title,
			Category:     incident.Category,
			RequesterID:  incident.RequesterID,
			TechnicianID: incident.TechnicianID,
		},
	})
	if incident.TechnicianID != nil {
		s.publish(ctx, events.Event{
			Type:       events.EventIncidentAssigned,
			IncidentID: incident.ID,
			ActorID:    requester.ID,
			Payload:    events.IncidentAssignedPayload{TechnicianID: incident.TechnicianID},
		})
	}
	return incident, nil
}

// UpdateIncident persists caller-changed fields (title, description,
// category, status, technician). Requester, id and creation time always come
// from the stored row. When the status differs from the stored one, the
// audit record is appended before the incident row changes, so any reader
// that observes the new status also observes its history entry. Transitions
// are not validated; any status may follow any other.
func (s *IncidentService) UpdateIncident(ctx context.Context, updated *domain.Incident, actor *domain.User) error {
	stored, err := s.incidents.GetByID(ctx, updated.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("incident", map[string]any{"incident_id": updated.ID})
		}
		return apperrors.MapError(err)
	}

	updated.RequesterID = stored.RequesterID
	updated.CreatedAt = stored.CreatedAt

	statusChanged := stored.Status != updated.Status
	if statusChanged {
		previous := stored.Status
		if err := s.changes.Create(ctx, &domain.StatusChange{
			IncidentID:     stored.ID,
			PreviousStatus: &previous,
			NewStatus:      updated.Status,
			ChangedByID:    actor.ID,
		}); err != nil {
			return apperrors.MapError(err)
		}
	}

	if err := s.incidents.Update(ctx, updated); err != nil {
		return apperrors.MapError(err)
	}

	if statusChanged {
		previous := stored.Status
		s.publish(ctx, events.Event{
			Type:       events.EventIncidentStatusChanged,
			IncidentID: stored.ID,
			ActorID:    actor.ID,
			Payload: events.IncidentStatusChangedPayload{
				PreviousStatus: &previous,
				NewStatus:      updated.Status,
			},
		})
	}
	if !equalTechnician(stored.TechnicianID, updated.TechnicianID) {
		s.publish(ctx, events.Event{
			Type:       events.EventIncidentAssigned,
			IncidentID: stored.ID,
			ActorID:    actor.ID,
			Payload:    events.IncidentAssignedPayload{TechnicianID: updated.TechnicianID},
		})
	}
	return nil
}

// ListIncidentsForUser returns the incidents visible to the user, most
// recent first. Admins see everything, technicians their assignments,
// requesters their own submissions. A role outside the known set yields an
// intentionally empty result; the closed Role type makes that unreachable
// through normal construction.
func (s *IncidentService) ListIncidentsForUser(ctx context.Context, user *domain.User) ([]domain.Incident, error) {
	var (
		result []domain.Incident
		err    error
	)
	switch user.Role {
	case domain.RoleAdmin:
		result, err = s.incidents.List(ctx)
	case domain.RoleTechnician:
		result, err = s.incidents.ListByTechnician(ctx, user.ID)
	case domain.RoleRequester:
		result, err = s.incidents.ListByRequester(ctx, user.ID)
	default:
		return []domain.Incident{}, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if result == nil {
		result = []domain.Incident{}
	}
	return result, nil
}

// ListIncidentsWithFilter is the administrative listing with optional
// technician and status filters.
func (s *IncidentService) ListIncidentsWithFilter(ctx context.Context, filter repository.IncidentFilter) ([]domain.Incident, error) {
	result, err := s.incidents.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if result == nil {
		result = []domain.Incident{}
	}
	return result, nil
}

// GetIncidentForUser loads a single incident, enforcing the same visibility
// rules as the listing.
func (s *IncidentService) GetIncidentForUser(ctx context.Context, user *domain.User, incidentID string) (*domain.Incident, error) {
	incident, err := s.getIncident(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	if !userCanAccessIncident(user, incident) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return incident, nil
}

// AddComment appends a discussion entry to the incident. Whitespace-only
// text is silently ignored, matching the source behavior of dropping empty
// submissions without complaint.
func (s *IncidentService) AddComment(ctx context.Context, incidentID, text string, author *domain.User) error {
	body := strings.TrimSpace(text)
	if body == "" {
		return nil
	}

	if _, err := s.getIncident(ctx, incidentID); err != nil {
		return err
	}

	comment := &domain.Comment{
		IncidentID: incidentID,
		AuthorID:   author.ID,
		Body:       body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:       events.EventIncidentCommentAdded,
		IncidentID: incidentID,
		ActorID:    author.ID,
		Payload: events.IncidentCommentAddedPayload{
			CommentID:   comment.ID,
			AuthorID:    author.ID,
			BodyPreview: bodyPreview(comment.Body, 120),
		},
	})
	return nil
}

// ListComments returns the incident's discussion thread, oldest first.
func (s *IncidentService) ListComments(ctx context.Context, incidentID string) ([]domain.Comment, error) {
	result, err := s.comments.ListByIncident(ctx, incidentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if result == nil {
		result = []domain.Comment{}
	}
	return result, nil
}

// ListHistory returns the incident's audit trail in ascending change time.
func (s *IncidentService) ListHistory(ctx context.Context, incidentID string) ([]domain.StatusChange, error) {
	result, err := s.changes.ListByIncident(ctx, incidentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if result == nil {
		result = []domain.StatusChange{}
	}
	return result, nil
}

// ListTechnicians enumerates users eligible for assignment.
func (s *IncidentService) ListTechnicians(ctx context.Context) ([]domain.User, error) {
	result, err := s.users.ListTechnicians(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Authenticate validates the identifier format, then resolves the combined
// identifier+secret lookup. A malformed identifier fails before any
// repository call; wrong credentials surface as AUTHENTICATION_FAILED, a
// negative result rather than a caller mistake.
func (s *IncidentService) Authenticate(ctx context.Context, identifier, secret string) (*domain.User, error) {
	if !auth.ValidIdentifier(identifier) {
		return nil, apperrors.NewValidationError("malformed identifier", map[string]any{"identifier": identifier})
	}
	user, err := s.users.GetByIDAndSecret(ctx, identifier, secret)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAuthenticationFailed("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *IncidentService) getIncident(ctx context.Context, incidentID string) (*domain.Incident, error) {
	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("incident", map[string]any{"incident_id": incidentID})
		}
		return nil, apperrors.MapError(err)
	}
	return incident, nil
}

func userCanAccessIncident(user *domain.User, incident *domain.Incident) bool {
	switch user.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleTechnician:
		return incident.TechnicianID != nil && *incident.TechnicianID == user.ID
	case domain.RoleRequester:
		return incident.RequesterID == user.ID
	}
	return false
}

func equalTechnician(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func bodyPreview(body string, max int) string {
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}

func (s *IncidentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
