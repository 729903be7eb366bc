package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
)

type serviceRepository struct {
	BaseRepository
}

func NewServiceRepository(db BaseRepository) repository.ServiceRepository {
	return &serviceRepository{db}
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, business_id, name, estimated_duration_minutes, base_price,
			   min_technicians, max_technicians, required_skills,
			   available_days, available_start, available_end,
			   min_lead_time_hours, max_advance_days, is_bookable,
			   created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var svc model.Service
	err := r.db.GetContext(ctx, &svc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}
