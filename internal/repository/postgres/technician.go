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

type technicianRepository struct {
	BaseRepository
}

func NewTechnicianRepository(db BaseRepository) repository.TechnicianRepository {
	return &technicianRepository{db}
}

func (r *technicianRepository) ListBookable(ctx context.Context, businessID uuid.UUID) ([]*model.Technician, error) {
	query := `
		SELECT id, business_id, first_name, last_name, is_active, can_be_booked,
			   skills, service_areas, default_buffer_minutes, created_at, updated_at
		FROM technicians
		WHERE business_id = $1
		AND is_active = true
		AND can_be_booked = true
		ORDER BY first_name ASC
	`
	var technicians []*model.Technician
	err := r.db.SelectContext(ctx, &technicians, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list technicians: %w", err)
	}
	return technicians, nil
}

func (r *technicianRepository) Get(ctx context.Context, id uuid.UUID) (*model.Technician, error) {
	query := `
		SELECT id, business_id, first_name, last_name, is_active, can_be_booked,
			   skills, service_areas, default_buffer_minutes, created_at, updated_at
		FROM technicians
		WHERE id = $1
	`
	var technician model.Technician
	err := r.db.GetContext(ctx, &technician, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get technician: %w", err)
	}
	return &technician, nil
}
