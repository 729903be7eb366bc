package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
)

type businessHoursRepository struct {
	BaseRepository
}

func NewBusinessHoursRepository(db BaseRepository) repository.BusinessHoursRepository {
	return &businessHoursRepository{db}
}

func (r *businessHoursRepository) ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*model.BusinessHours, error) {
	query := `
		SELECT id, business_id, day_of_week, open_time, close_time,
			   lunch_start, lunch_end
		FROM business_hours
		WHERE business_id = $1
		ORDER BY day_of_week ASC
	`
	var hours []*model.BusinessHours
	err := r.db.SelectContext(ctx, &hours, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list business hours: %w", err)
	}
	return hours, nil
}
