package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/incident-service/internal/auth"
	"github.com/spec-kit/incident-service/internal/domain"
	"github.com/spec-kit/incident-service/internal/repository"
	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

// UserService covers administrative account management: provisioning
// accounts with a generated one-time password and listing them.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// UserDraft describes account provisioning input.
type UserDraft struct {
	ID        string
	GivenName string
	Surname   string
	Role      domain.Role
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// CreateUser provisions an account and returns it together with the
// generated plaintext password, which is shown once and stored only as a
// bcrypt hash. Only technician and requester accounts can be created this
// way; administrators are provisioned out of band.
func (s *UserService) CreateUser(ctx context.Context, draft UserDraft) (*domain.User, string, error) {
	if !auth.ValidIdentifier(draft.ID) {
		return nil, "", apperrors.NewValidationError("malformed identifier", map[string]any{"identifier": draft.ID})
	}
	if strings.TrimSpace(draft.GivenName) == "" || strings.TrimSpace(draft.Surname) == "" {
		return nil, "", apperrors.NewValidationError("name is required", nil)
	}
	if draft.Role != domain.RoleTechnician && draft.Role != domain.RoleRequester {
		return nil, "", apperrors.NewValidationError("role must be TECHNICIAN or REQUESTER", nil)
	}

	if _, err := s.users.GetByID(ctx, draft.ID); err == nil {
		return nil, "", apperrors.NewConflict("identifier already registered", map[string]any{"identifier": draft.ID})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", apperrors.MapError(err)
	}

	password := generatePassword()
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}

	user := &domain.User{
		ID:           draft.ID,
		GivenName:    strings.TrimSpace(draft.GivenName),
		Surname:      strings.TrimSpace(draft.Surname),
		PasswordHash: hash,
		Role:         draft.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", apperrors.MapError(err)
	}
	return user, password, nil
}

// GetUser loads an account by identifier.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"identifier": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers returns every account.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	result, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if result == nil {
		result = []domain.User{}
	}
	return result, nil
}

func generatePassword() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
