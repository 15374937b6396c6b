package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-service/internal/api/dto"
	"github.com/spec-kit/incident-service/internal/auth"
	"github.com/spec-kit/incident-service/internal/service"
	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	incidents *service.IncidentService
	tokens    *auth.TokenManager
}

// NewAuthHandler returns a new handler instance.
func NewAuthHandler(incidents *service.IncidentService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{incidents: incidents, tokens: tokens}
}

// Login authenticates by identifier and secret and issues a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	user, err := h.incidents.Authenticate(c.UserContext(), req.Identifier, req.Secret)
	if err != nil {
		return err
	}

	token, expiresAt, err := h.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.FromUser(user),
	})
}
