package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-service/internal/api/dto"
	"github.com/spec-kit/incident-service/internal/auth"
	"github.com/spec-kit/incident-service/internal/domain"
	"github.com/spec-kit/incident-service/internal/repository"
	"github.com/spec-kit/incident-service/internal/service"
	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

// IncidentsHandler exposes the incident lifecycle endpoints.
type IncidentsHandler struct {
	incidents *service.IncidentService
}

// NewIncidentsHandler returns a new handler instance.
func NewIncidentsHandler(incidents *service.IncidentService) *IncidentsHandler {
	return &IncidentsHandler{incidents: incidents}
}

// List returns the incidents visible to the caller.
func (h *IncidentsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	incidents, err := h.incidents.ListIncidentsForUser(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromIncidents(incidents))
}

// ListFiltered is the admin listing with technician/status filters.
func (h *IncidentsHandler) ListFiltered(c *fiber.Ctx) error {
	filter := repository.IncidentFilter{}
	if technicianID := c.Query("technician_id"); technicianID != "" {
		filter.TechnicianID = &technicianID
	}
	if statusParam := c.Query("status"); statusParam != "" {
		status := domain.IncidentStatus(statusParam)
		filter.Status = &status
	}

	incidents, err := h.incidents.ListIncidentsWithFilter(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromIncidents(incidents))
}

// Create opens a new incident for the caller.
func (h *IncidentsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	incident, err := h.incidents.CreateIncident(c.UserContext(), service.IncidentDraft{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}, principal.User)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromIncident(incident))
}

// Get returns an incident with its discussion thread and audit trail.
func (h *IncidentsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	incident, err := h.incidents.GetIncidentForUser(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	comments, err := h.incidents.ListComments(c.UserContext(), incident.ID)
	if err != nil {
		return err
	}
	history, err := h.incidents.ListHistory(c.UserContext(), incident.ID)
	if err != nil {
		return err
	}

	return c.JSON(dto.IncidentDetailResponse{
		Incident: dto.FromIncident(incident),
		Comments: dto.FromComments(comments),
		History:  dto.FromStatusChanges(history),
	})
}

// Update changes the mutable incident fields and records status transitions.
func (h *IncidentsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	updated := &domain.Incident{
		ID:           c.Params("id"),
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Status:       req.Status,
		TechnicianID: req.TechnicianID,
	}
	if err := h.incidents.UpdateIncident(c.UserContext(), updated, principal.User); err != nil {
		return err
	}
	return c.JSON(dto.FromIncident(updated))
}

// AddComment appends a discussion entry.
func (h *IncidentsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	if err := h.incidents.AddComment(c.UserContext(), c.Params("id"), req.Text, principal.User); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTechnicians returns users eligible for assignment.
func (h *IncidentsHandler) ListTechnicians(c *fiber.Ctx) error {
	technicians, err := h.incidents.ListTechnicians(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromUsers(technicians))
}
