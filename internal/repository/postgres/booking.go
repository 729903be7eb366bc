package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
)

const bookingColumns = `
	id, business_id, service_id, customer_id, service_name,
	estimated_duration_minutes, quoted_price, requested_at, scheduled_at,
	primary_technician_id, status, address, notes, idempotency_key,
	cancellation_reason, cancelled_by, cancelled_at, cancellation_fee,
	created_at, updated_at
`

type bookingRepository struct {
	BaseRepository
}

func NewBookingRepository(db BaseRepository) repository.BookingRepository {
	return &bookingRepository{db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
				$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.BusinessID,
		booking.ServiceID,
		booking.CustomerID,
		booking.ServiceName,
		booking.DurationMinutes,
		booking.QuotedPrice,
		booking.RequestedAt,
		booking.ScheduledAt,
		booking.PrimaryTechnicianID,
		booking.Status,
		booking.Address,
		booking.Notes,
		booking.IdempotencyKey,
		booking.CancellationReason,
		booking.CancelledBy,
		booking.CancelledAt,
		booking.CancellationFee,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) GetByIdempotencyKey(ctx context.Context, businessID uuid.UUID, key string) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE business_id = $1 AND idempotency_key = $2`

	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, businessID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking by idempotency key: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, businessID uuid.UUID, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE business_id = $1`
	args := []interface{}{businessID}
	argCount := 2

	if filters != nil {
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if !filters.StartDate.IsZero() {
			query += fmt.Sprintf(" AND scheduled_at >= $%d", argCount)
			args = append(args, filters.StartDate)
			argCount++
		}
		if !filters.EndDate.IsZero() {
			query += fmt.Sprintf(" AND scheduled_at < $%d", argCount)
			args = append(args, filters.EndDate)
			argCount++
		}
	}

	query += " ORDER BY requested_at DESC"

	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListActiveInRange(ctx context.Context, businessID uuid.UUID, start, end time.Time) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE business_id = $1
		AND status IN ($2, $3)
		AND scheduled_at IS NOT NULL
		AND scheduled_at < $5
		AND scheduled_at + (estimated_duration_minutes * interval '1 minute') > $4
		ORDER BY scheduled_at ASC
	`
	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query,
		businessID, model.BookingStatusConfirmed, model.BookingStatusInProgress, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list active bookings: %w", err)
	}
	return bookings, nil
}

// UpdateIfStatus is the single enforcement point for optimistic
// concurrency on bookings: the row must still carry the expected status
// or the write is rejected with ErrStaleRow.
func (r *bookingRepository) UpdateIfStatus(ctx context.Context, booking *model.Booking, expected model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET scheduled_at = $1, primary_technician_id = $2, status = $3,
			cancellation_reason = $4, cancelled_by = $5, cancelled_at = $6,
			cancellation_fee = $7, updated_at = $8
		WHERE id = $9 AND status = $10
	`
	booking.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		booking.ScheduledAt,
		booking.PrimaryTechnicianID,
		booking.Status,
		booking.CancellationReason,
		booking.CancelledBy,
		booking.CancelledAt,
		booking.CancellationFee,
		booking.UpdatedAt,
		booking.ID,
		expected,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrStaleRow
	}
	return nil
}
