package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
)

type bookingEventRepository struct {
	BaseRepository
}

func NewBookingEventRepository(db BaseRepository) repository.BookingEventRepository {
	return &bookingEventRepository{db}
}

// Append writes the audit row and its outbox companion in the same
// transaction so the event stream never diverges from the audit log.
func (r *bookingEventRepository) Append(ctx context.Context, event *model.BookingEvent) error {
	event.ID = uuid.New()
	event.CreatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO booking_events (
				id, booking_id, event_type, old_status, new_status,
				triggered_by, notes, old_values, new_values, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		_, err := tx.ExecContext(ctx, query,
			event.ID,
			event.BookingID,
			event.EventType,
			event.OldStatus,
			event.NewStatus,
			event.TriggeredBy,
			event.Notes,
			event.OldValues,
			event.NewValues,
			event.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to append booking event: %w", err)
		}

		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event payload: %w", err)
		}

		outboxQuery := `
			INSERT INTO outbox_events (
				id, event_type, payload, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err = tx.ExecContext(ctx, outboxQuery,
			uuid.New(),
			"booking."+string(event.EventType),
			payload,
			model.OutboxStatusPending,
			event.CreatedAt,
			event.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to enqueue outbox event: %w", err)
		}
		return nil
	})
}

func (r *bookingEventRepository) ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*model.BookingEvent, error) {
	query := `
		SELECT id, booking_id, event_type, old_status, new_status,
			   triggered_by, notes, old_values, new_values, created_at
		FROM booking_events
		WHERE booking_id = $1
		ORDER BY created_at ASC
	`
	var events []*model.BookingEvent
	err := r.db.SelectContext(ctx, &events, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking events: %w", err)
	}
	return events, nil
}
