package dto

import (
	"time"

	"github.com/spec-kit/incident-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// CreateUserRequest payload for admin provisioning.
type CreateUserRequest struct {
	ID        string      `json:"id"`
	GivenName string      `json:"given_name"`
	Surname   string      `json:"surname"`
	Role      domain.Role `json:"role"`
}

// CreateUserResponse carries the account and its one-time password.
type CreateUserResponse struct {
	User     UserResponse `json:"user"`
	Password string       `json:"password"`
}

// UserResponse serializes an account without its credential.
type UserResponse struct {
	ID        string      `json:"id"`
	GivenName string      `json:"given_name"`
	Surname   string      `json:"surname"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// FromUser maps a domain user to its response form.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		GivenName: user.GivenName,
		Surname:   user.Surname,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// FromUsers maps a slice of users.
func FromUsers(users []domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, FromUser(&users[i]))
	}
	return result
}
