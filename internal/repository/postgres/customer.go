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

type customerRepository struct {
	BaseRepository
}

func NewCustomerRepository(db BaseRepository) repository.CustomerRepository {
	return &customerRepository{db}
}

func (r *customerRepository) FindByContact(ctx context.Context, businessID uuid.UUID, email, phone string) (*model.CustomerContact, error) {
	query := `
		SELECT id, business_id, name, email, phone, sms_consent,
			   total_bookings, created_at, updated_at
		FROM customer_contacts
		WHERE business_id = $1
		AND (($2 != '' AND email = $2) OR ($3 != '' AND phone = $3))
		LIMIT 1
	`
	var customer model.CustomerContact
	err := r.db.GetContext(ctx, &customer, query, businessID, email, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *model.CustomerContact) error {
	query := `
		INSERT INTO customer_contacts (
			id, business_id, name, email, phone, sms_consent,
			total_bookings, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.BusinessID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.SMSConsent,
		customer.TotalBookings,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// RecordBooking bumps total_bookings; consent only ever widens, a
// booking without consent never revokes one previously granted.
func (r *customerRepository) RecordBooking(ctx context.Context, id uuid.UUID, smsConsent bool) error {
	query := `
		UPDATE customer_contacts
		SET total_bookings = total_bookings + 1,
			sms_consent = sms_consent OR $1,
			updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, smsConsent, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to record booking for customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
