package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/incident-service/internal/domain"
)

// StatusChangeRepository stores the append-only audit trail.
type StatusChangeRepository interface {
	Create(ctx context.Context, change *domain.StatusChange) error
	ListByIncident(ctx context.Context, incidentID string) ([]domain.StatusChange, error)
}

type statusChangeRepository struct {
	pool *pgxpool.Pool
}

// NewStatusChangeRepository builds the repository.
func NewStatusChangeRepository(pool *pgxpool.Pool) StatusChangeRepository {
	return &statusChangeRepository{pool: pool}
}

func (r *statusChangeRepository) Create(ctx context.Context, change *domain.StatusChange) error {
	const query = `
        INSERT INTO status_changes (incident_id, previous_status, new_status, changed_by_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, changed_at`
	return r.pool.QueryRow(ctx, query,
		change.IncidentID,
		change.PreviousStatus,
		change.NewStatus,
		change.ChangedByID,
	).Scan(&change.ID, &change.ChangedAt)
}

// ListByIncident returns the trail in ascending change time, the order the
// chain invariant is defined over.
func (r *statusChangeRepository) ListByIncident(ctx context.Context, incidentID string) ([]domain.StatusChange, error) {
	const query = `
        SELECT id, incident_id, previous_status, new_status, changed_by_id, changed_at
        FROM status_changes WHERE incident_id=$1 ORDER BY changed_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, incidentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StatusChange
	for rows.Next() {
		var change domain.StatusChange
		if err := rows.Scan(
			&change.ID,
			&change.IncidentID,
			&change.PreviousStatus,
			&change.NewStatus,
			&change.ChangedByID,
			&change.ChangedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, change)
	}
	return result, rows.Err()
}
