package domain

import "time"

// Role enumerates the fixed set of user roles.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleTechnician Role = "TECHNICIAN"
	RoleRequester  Role = "REQUESTER"
)

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleRequester:
		return true
	}
	return false
}

// User is an account identified by a 9-character national identifier.
// PasswordHash is the bcrypt hash of the credential secret and must never
// leave the service boundary.
type User struct {
	ID           string
	GivenName    string
	Surname      string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
