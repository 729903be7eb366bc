package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Booking is the one mutable record this core owns. It is never hard
// deleted; cancellation is a status transition.
type Booking struct {
	Base
	BusinessID          uuid.UUID     `db:"business_id" json:"business_id"`
	ServiceID           uuid.UUID     `db:"service_id" json:"service_id"`
	CustomerID          uuid.UUID     `db:"customer_id" json:"customer_id"`
	ServiceName         string        `db:"service_name" json:"service_name"`
	DurationMinutes     int           `db:"estimated_duration_minutes" json:"estimated_duration_minutes"`
	QuotedPrice         float64       `db:"quoted_price" json:"quoted_price"`
	RequestedAt         time.Time     `db:"requested_at" json:"requested_at"`
	ScheduledAt         *time.Time    `db:"scheduled_at" json:"scheduled_at,omitempty"`
	PrimaryTechnicianID *uuid.UUID    `db:"primary_technician_id" json:"primary_technician_id,omitempty"`
	Status              BookingStatus `db:"status" json:"status"`
	Address             string        `db:"address" json:"address,omitempty"`
	Notes               string        `db:"notes" json:"notes,omitempty"`
	IdempotencyKey      *string       `db:"idempotency_key" json:"idempotency_key,omitempty"`
	CancellationReason  *string       `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CancelledBy         *string       `db:"cancelled_by" json:"cancelled_by,omitempty"`
	CancelledAt         *time.Time    `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CancellationFee     float64       `db:"cancellation_fee" json:"cancellation_fee"`
}

func (b *Booking) Duration() time.Duration {
	return time.Duration(b.DurationMinutes) * time.Minute
}

// CanBeCancelled and CanBeRescheduled are status-derived: only pending
// and confirmed bookings accept either operation.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

func (b *Booking) CanBeRescheduled() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

type CreateBookingRequest struct {
	BusinessID            uuid.UUID  `json:"business_id" binding:"required"`
	ServiceID             uuid.UUID  `json:"service_id" binding:"required"`
	CustomerName          string     `json:"customer_name" binding:"required,max=200"`
	CustomerEmail         string     `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone         string     `json:"customer_phone" binding:"omitempty,max=32"`
	SMSConsent            bool       `json:"sms_consent"`
	RequestedAt           time.Time  `json:"requested_at" binding:"required"`
	Address               string     `json:"address" binding:"max=500"`
	Notes                 string     `json:"notes" binding:"max=1000"`
	PreferredTechnicianID *uuid.UUID `json:"preferred_technician_id,omitempty"`
	IdempotencyKey        *string    `json:"idempotency_key,omitempty"`
	AutoConfirm           bool       `json:"auto_confirm"`
}

type ConfirmBookingRequest struct {
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	TechnicianID *uuid.UUID `json:"assigned_technician_id,omitempty"`
}

type RescheduleBookingRequest struct {
	NewScheduledAt time.Time `json:"new_scheduled_at" binding:"required"`
	Reason         string    `json:"reason" binding:"max=500"`
}

type CancelBookingRequest struct {
	Reason      string `json:"reason" binding:"required,max=500"`
	CancelledBy string `json:"cancelled_by" binding:"required,max=100"`
}

type BookingFilters struct {
	Status    BookingStatus
	StartDate time.Time
	EndDate   time.Time
}
