package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-service/internal/api/dto"
	"github.com/spec-kit/incident-service/internal/service"
)

// StatsHandler exposes the operational report.
type StatsHandler struct {
	stats *service.StatisticsAggregator
}

// NewStatsHandler returns a new handler instance.
func NewStatsHandler(stats *service.StatisticsAggregator) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Overview aggregates every report in one response.
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	ctx := c.UserContext()

	byStatus, err := h.stats.CountsByStatus(ctx)
	if err != nil {
		return err
	}
	byCategory, err := h.stats.CountsByCategory(ctx)
	if err != nil {
		return err
	}
	meanHours, err := h.stats.MeanResolutionHours(ctx)
	if err != nil {
		return err
	}
	oldest, err := h.stats.OldestOpenIncident(ctx)
	if err != nil {
		return err
	}

	response := fiber.Map{
		"counts_by_status":      byStatus,
		"counts_by_category":    byCategory,
		"mean_resolution_hours": meanHours,
	}
	if oldest != nil {
		response["oldest_open_incident"] = dto.FromIncident(oldest)
	}
	return c.JSON(response)
}
