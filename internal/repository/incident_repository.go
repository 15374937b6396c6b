package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/incident-service/internal/domain"
)

// IncidentFilter captures the administrative search parameters.
type IncidentFilter struct {
	RequesterID  *string
	TechnicianID *string
	Status       *domain.IncidentStatus
}

// IncidentRepository encapsulates incident persistence.
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Update(ctx context.Context, incident *domain.Incident) error
	GetByID(ctx context.Context, id string) (*domain.Incident, error)
	List(ctx context.Context) ([]domain.Incident, error)
	ListByRequester(ctx context.Context, requesterID string) ([]domain.Incident, error)
	ListByTechnician(ctx context.Context, technicianID string) ([]domain.Incident, error)
	ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]domain.Incident, error)
	ListWithFilter(ctx context.Context, filter IncidentFilter) ([]domain.Incident, error)
}

type incidentRepository struct {
	pool *pgxpool.Pool
}

// NewIncidentRepository instantiates the repository.
func NewIncidentRepository(pool *pgxpool.Pool) IncidentRepository {
	return &incidentRepository{pool: pool}
}

const incidentColumns = `id, title, description, category, status, requester_id, technician_id, created_at, updated_at`

func (r *incidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	const query = `
        INSERT INTO incidents (title, description, category, status, requester_id, technician_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		incident.Title,
		incident.Description,
		incident.Category,
		incident.Status,
		incident.RequesterID,
		incident.TechnicianID,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
}

// Update persists the mutable incident fields. Requester and creation time
// are deliberately absent from the statement.
func (r *incidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	const query = `
        UPDATE incidents SET title=$1, description=$2, category=$3, status=$4,
            technician_id=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		incident.Title,
		incident.Description,
		incident.Category,
		incident.Status,
		incident.TechnicianID,
		incident.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *incidentRepository) GetByID(ctx context.Context, id string) (*domain.Incident, error) {
	query := fmt.Sprintf(`SELECT %s FROM incidents WHERE id=$1`, incidentColumns)
	var incident domain.Incident
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&incident.ID,
		&incident.Title,
		&incident.Description,
		&incident.Category,
		&incident.Status,
		&incident.RequesterID,
		&incident.TechnicianID,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &incident, nil
}

func (r *incidentRepository) List(ctx context.Context) ([]domain.Incident, error) {
	return r.ListWithFilter(ctx, IncidentFilter{})
}

func (r *incidentRepository) ListByRequester(ctx context.Context, requesterID string) ([]domain.Incident, error) {
	return r.ListWithFilter(ctx, IncidentFilter{RequesterID: &requesterID})
}

func (r *incidentRepository) ListByTechnician(ctx context.Context, technicianID string) ([]domain.Incident, error) {
	return r.ListWithFilter(ctx, IncidentFilter{TechnicianID: &technicianID})
}

func (r *incidentRepository) ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]domain.Incident, error) {
	return r.ListWithFilter(ctx, IncidentFilter{Status: &status})
}

func (r *incidentRepository) ListWithFilter(ctx context.Context, filter IncidentFilter) ([]domain.Incident, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		clauses = append(clauses, fmt.Sprintf("requester_id=$%d", len(args)))
	}
	if filter.TechnicianID != nil {
		args = append(args, *filter.TechnicianID)
		clauses = append(clauses, fmt.Sprintf("technician_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM incidents WHERE %s ORDER BY created_at DESC`,
		incidentColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIncidents(rows)
}

func scanIncidents(rows pgx.Rows) ([]domain.Incident, error) {
	var result []domain.Incident
	for rows.Next() {
		var incident domain.Incident
		if err := rows.Scan(
			&incident.ID,
			&incident.Title,
			&incident.Description,
			&incident.Category,
			&incident.Status,
			&incident.RequesterID,
			&incident.TechnicianID,
			&incident.CreatedAt,
			&incident.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, incident)
	}
	return result, rows.Err()
}
