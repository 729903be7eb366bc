package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrStaleRow is returned by conditional writes when the row no longer
// matches the expected prior state. Callers surface this as a conflict,
// never as a silent overwrite.
var ErrStaleRow = errors.New("row changed concurrently")

// All repository interfaces in one file
type (
	ServiceRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	}

	TechnicianRepository interface {
		// ListBookable returns active, bookable technicians for a business.
		ListBookable(ctx context.Context, businessID uuid.UUID) ([]*model.Technician, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Technician, error)
	}

	BusinessHoursRepository interface {
		ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*model.BusinessHours, error)
	}

	TimeOffRepository interface {
		// ListApprovedInRange returns approved time-off overlapping
		// [start, end) for any technician of the business.
		ListApprovedInRange(ctx context.Context, businessID uuid.UUID, start, end time.Time) ([]*model.TimeOff, error)
	}

	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		// GetByIdempotencyKey returns ErrNotFound when no booking carries
		// the key within the business.
		GetByIdempotencyKey(ctx context.Context, businessID uuid.UUID, key string) (*model.Booking, error)
		List(ctx context.Context, businessID uuid.UUID, filters *model.BookingFilters) ([]*model.Booking, error)
		// ListActiveInRange returns confirmed/in-progress bookings whose
		// scheduled interval overlaps [start, end).
		ListActiveInRange(ctx context.Context, businessID uuid.UUID, start, end time.Time) ([]*model.Booking, error)
		// UpdateIfStatus persists booking as a single conditional write:
		// the row must still hold expected, otherwise ErrStaleRow.
		UpdateIfStatus(ctx context.Context, booking *model.Booking, expected model.BookingStatus) error
	}

	CustomerRepository interface {
		// FindByContact matches by email or phone within a business;
		// ErrNotFound when neither matches.
		FindByContact(ctx context.Context, businessID uuid.UUID, email, phone string) (*model.CustomerContact, error)
		Create(ctx context.Context, customer *model.CustomerContact) error
		// RecordBooking increments total_bookings and widens consent.
		RecordBooking(ctx context.Context, id uuid.UUID, smsConsent bool) error
	}

	BookingEventRepository interface {
		// Append writes the audit row and its outbox companion in one
		// transaction. Audit rows are never mutated or deleted.
		Append(ctx context.Context, event *model.BookingEvent) error
		ListForBooking(ctx context.Context, bookingID uuid.UUID) ([]*model.BookingEvent, error)
	}

	OutboxRepository interface {
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
