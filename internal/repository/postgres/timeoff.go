package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
)

type timeOffRepository struct {
	BaseRepository
}

func NewTimeOffRepository(db BaseRepository) repository.TimeOffRepository {
	return &timeOffRepository{db}
}

func (r *timeOffRepository) ListApprovedInRange(ctx context.Context, businessID uuid.UUID, start, end time.Time) ([]*model.TimeOff, error) {
	query := `
		SELECT t.id, t.technician_id, t.start_at, t.end_at, t.status, t.reason
		FROM time_off t
		JOIN technicians tech ON tech.id = t.technician_id
		WHERE tech.business_id = $1
		AND t.status = $2
		AND t.start_at < $4
		AND t.end_at > $3
		ORDER BY t.start_at ASC
	`
	var records []*model.TimeOff
	err := r.db.SelectContext(ctx, &records, query, businessID, model.TimeOffStatusApproved, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list time off: %w", err)
	}
	return records, nil
}
