package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/incident-service/internal/domain"
	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

func TestCreateUserGeneratesOneTimePassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, bcrypt.MinCost)

	user, password, err := svc.CreateUser(context.Background(), UserDraft{
		ID:        "00000004G",
		GivenName: " Irene ",
		Surname:   "Salas",
		Role:      domain.RoleTechnician,
	})
	require.NoError(t, err)

	assert.Equal(t, "00000004G", user.ID)
	assert.Equal(t, "Irene", user.GivenName)
	assert.Equal(t, domain.RoleTechnician, user.Role)
	require.NotEmpty(t, password)
	assert.Len(t, password, 12)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))

	stored, err := users.GetByID(context.Background(), "00000004G")
	require.NoError(t, err)
	assert.NotEqual(t, password, stored.PasswordHash)
}

func TestCreateUserDuplicateIdentifier(t *testing.T) {
	users, _, _, _, _ := testUsers()
	svc := NewUserService(users, bcrypt.MinCost)

	_, _, err := svc.CreateUser(context.Background(), UserDraft{
		ID:        "00000003A",
		GivenName: "Pablo",
		Surname:   "Mena",
		Role:      domain.RoleRequester,
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestCreateUserMalformedIdentifier(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)

	_, _, err := svc.CreateUser(context.Background(), UserDraft{
		ID:        "12345678A",
		GivenName: "Irene",
		Surname:   "Salas",
		Role:      domain.RoleRequester,
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestCreateUserRejectsAdminRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)

	_, _, err := svc.CreateUser(context.Background(), UserDraft{
		ID:        "00000004G",
		GivenName: "Irene",
		Surname:   "Salas",
		Role:      domain.RoleAdmin,
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestCreateUserRequiresName(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)

	_, _, err := svc.CreateUser(context.Background(), UserDraft{
		ID:        "00000004G",
		GivenName: "   ",
		Surname:   "Salas",
		Role:      domain.RoleRequester,
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestGetUserNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)

	_, err := svc.GetUser(context.Background(), "00000004G")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestListUsersEmptyIsNotNil(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)

	result, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result)
}
