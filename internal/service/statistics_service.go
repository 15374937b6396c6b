package service

import (
	"context"
	"time"

	"github.com/spec-kit/incident-service/internal/domain"
	"github.com/spec-kit/incident-service/internal/repository"
	apperrors "github.com/spec-kit/incident-service/pkg/util"
)

// StatisticsAggregator computes read-only operational reports over the same
// repositories the incident service writes through.
type StatisticsAggregator struct {
	incidents repository.IncidentRepository
	changes   repository.StatusChangeRepository
}

// NewStatisticsAggregator constructs the aggregator.
func NewStatisticsAggregator(incidents repository.IncidentRepository, changes repository.StatusChangeRepository) *StatisticsAggregator {
	return &StatisticsAggregator{incidents: incidents, changes: changes}
}

// CountsByStatus returns incident counts keyed by status. Every known status
// is present even at zero; an unexpected status string found in storage gets
// its own bucket instead of being dropped.
func (a *StatisticsAggregator) CountsByStatus(ctx context.Context) (map[domain.IncidentStatus]int, error) {
	counts := make(map[domain.IncidentStatus]int, len(domain.KnownStatuses))
	for _, status := range domain.KnownStatuses {
		counts[status] = 0
	}

	incidents, err := a.incidents.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for _, incident := range incidents {
		counts[incident.Status]++
	}
	return counts, nil
}

// CountsByCategory returns incident counts keyed by category. Categories are
// open-ended, so only observed values appear.
func (a *StatisticsAggregator) CountsByCategory(ctx context.Context) (map[string]int, error) {
	incidents, err := a.incidents.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	counts := make(map[string]int)
	for _, incident := range incidents {
		counts[incident.Category]++
	}
	return counts, nil
}

// MeanResolutionHours averages, over all currently closed incidents, the
// whole hours between creation and the first audit record that closed the
// incident. Incidents without such a record are skipped; zero closed
// incidents (or zero with a matching record) yields 0.
func (a *StatisticsAggregator) MeanResolutionHours(ctx context.Context) (float64, error) {
	closed, err := a.incidents.ListByStatus(ctx, domain.IncidentStatusClosed)
	if err != nil {
		return 0, apperrors.MapError(err)
	}

	totalHours := 0
	resolved := 0
	for _, incident := range closed {
		trail, err := a.changes.ListByIncident(ctx, incident.ID)
		if err != nil {
			return 0, apperrors.MapError(err)
		}
		for _, change := range trail {
			if change.NewStatus == domain.IncidentStatusClosed {
				totalHours += int(change.ChangedAt.Sub(incident.CreatedAt) / time.Hour)
				resolved++
				break
			}
		}
	}
	if resolved == 0 {
		return 0, nil
	}
	return float64(totalHours) / float64(resolved), nil
}

// OldestOpenIncident returns the earliest-created incident that is not
// closed, or nil when everything is closed.
func (a *StatisticsAggregator) OldestOpenIncident(ctx context.Context) (*domain.Incident, error) {
	incidents, err := a.incidents.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	var oldest *domain.Incident
	for i := range incidents {
		if incidents[i].Status == domain.IncidentStatusClosed {
			continue
		}
		if oldest == nil || incidents[i].CreatedAt.Before(oldest.CreatedAt) {
			oldest = &incidents[i]
		}
	}
	return oldest, nil
}
