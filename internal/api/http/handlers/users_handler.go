package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-service/internal/api/dto"
	"github.com/spec-kit/incident-service/internal/service"
	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

// UsersHandler exposes administrative account management.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler returns a new handler instance.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Create provisions an account and returns its one-time password.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	user, password, err := h.users.CreateUser(c.UserContext(), service.UserDraft{
		ID:        req.ID,
		GivenName: req.GivenName,
		Surname:   req.Surname,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateUserResponse{
		User:     dto.FromUser(user),
		Password: password,
	})
}

// List returns all accounts.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromUsers(users))
}

// Get returns a single account.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromUser(user))
}
