package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	"github.com/jwalitptl/booking-api/internal/service/availability"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
	"github.com/jwalitptl/booking-api/pkg/logger"
)

// Policy holds the booking-lifecycle business rules.
type Policy struct {
	// CancellationNotice is the short-notice window: cancelling inside
	// it incurs CancellationFeeRate of the quoted price.
	CancellationNotice  time.Duration
	CancellationFeeRate float64
	// RescheduleNotice rejects reschedules of appointments closer than
	// this, regardless of the new target time.
	RescheduleNotice time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		CancellationNotice:  24 * time.Hour,
		CancellationFeeRate: 0.25,
		RescheduleNotice:    24 * time.Hour,
	}
}

type Service struct {
	bookings  repository.BookingRepository
	services  repository.ServiceRepository
	customers repository.CustomerRepository
	events    repository.BookingEventRepository
	cache     *availability.Cache
	policy    Policy
	logger    *logger.Logger
	now       func() time.Time
}

func NewService(
	bookings repository.BookingRepository,
	services repository.ServiceRepository,
	customers repository.CustomerRepository,
	events repository.BookingEventRepository,
	cache *availability.Cache,
	policy Policy,
	logger *logger.Logger,
) *Service {
	return &Service{
		bookings:  bookings,
		services:  services,
		customers: customers,
		events:    events,
		cache:     cache,
		policy:    policy,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateBooking registers a booking request. The idempotency key is
// checked before any row is written, so retries return the original
// booking instead of duplicating it.
func (s *Service) CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	if req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
		existing, err := s.bookings.GetByIdempotencyKey(ctx, req.BusinessID, *req.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if err != repository.ErrNotFound {
			return nil, fmt.Errorf("failed to check idempotency key: %w", err)
		}
	}

	svc, err := s.services.Get(ctx, req.ServiceID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if !svc.IsBookable || svc.BusinessID != req.BusinessID {
		return nil, apperrors.NotFound("service", nil)
	}

	if !req.RequestedAt.After(s.now()) {
		return nil, apperrors.Validation("requested time must be in the future")
	}
	if req.CustomerEmail == "" && req.CustomerPhone == "" {
		return nil, apperrors.Validation("email or phone is required")
	}
	if req.SMSConsent && req.CustomerPhone == "" {
		return nil, apperrors.Validation("sms consent requires a phone number")
	}

	customer, err := s.upsertCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		BusinessID:      req.BusinessID,
		ServiceID:       svc.ID,
		CustomerID:      customer.ID,
		ServiceName:     svc.Name,
		DurationMinutes: svc.DurationMinutes,
		QuotedPrice:     svc.BasePrice,
		RequestedAt:     req.RequestedAt,
		Status:          model.BookingStatusPending,
		Address:         req.Address,
		Notes:           req.Notes,
		IdempotencyKey:  req.IdempotencyKey,
	}
	booking.ID = uuid.New()
	if req.PreferredTechnicianID != nil {
		booking.PrimaryTechnicianID = req.PreferredTechnicianID
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logEvent(ctx, booking, model.BookingEventCreated, nil, booking.Status, "customer", "", nil)

	if req.AutoConfirm {
		confirmed, err := s.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{})
		if err != nil {
			// The customer's request succeeded; a failed auto-confirm
			// leaves the booking pending rather than surfacing an error.
			s.logger.Warn("auto-confirm failed, booking left pending",
				"booking_id", booking.ID.String(), "error", err.Error())
			return booking, nil
		}
		return confirmed, nil
	}

	return booking, nil
}

// ConfirmBooking moves a pending booking to confirmed. Availability is
// re-validated against fresh data here; this re-check, not the slot
// list the customer saw, is what prevents double-booking.
func (s *Service) ConfirmBooking(ctx context.Context, id uuid.UUID, req *model.ConfirmBookingRequest) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != model.BookingStatusPending {
		return nil, apperrors.Validationf("booking cannot be confirmed from status %s", booking.Status)
	}

	// A pending booking may already carry a scheduled time from a
	// reschedule; that wins over the original request.
	target := booking.RequestedAt
	if booking.ScheduledAt != nil {
		target = *booking.ScheduledAt
	}
	if req.ScheduledAt != nil {
		target = *req.ScheduledAt
	}
	technicianID := booking.PrimaryTechnicianID
	if req.TechnicianID != nil {
		technicianID = req.TechnicianID
	}

	if err := s.ensureSlotFree(ctx, booking, target, technicianID); err != nil {
		return nil, err
	}

	oldStatus := booking.Status
	booking.Status = model.BookingStatusConfirmed
	booking.ScheduledAt = &target
	booking.PrimaryTechnicianID = technicianID

	if err := s.bookings.UpdateIfStatus(ctx, booking, model.BookingStatusPending); err != nil {
		if err == repository.ErrStaleRow {
			return nil, apperrors.Conflict("booking was modified concurrently")
		}
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	s.logEvent(ctx, booking, model.BookingEventConfirmed, &oldStatus, booking.Status, "system", "",
		map[string]interface{}{"scheduled_at": target})
	s.invalidate(booking.BusinessID, &target)

	return booking, nil
}

// RescheduleBooking moves a booking to a new time. The minimum-notice
// policy applies to the current appointment time, independent of the
// new target's validity.
func (s *Service) RescheduleBooking(ctx context.Context, id uuid.UUID, req *model.RescheduleBookingRequest) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanBeRescheduled() {
		return nil, apperrors.Validationf("booking cannot be rescheduled from status %s", booking.Status)
	}

	now := s.now()
	if booking.ScheduledAt != nil && booking.ScheduledAt.Sub(now) < s.policy.RescheduleNotice {
		return nil, apperrors.Validationf("bookings cannot be rescheduled within %v of the appointment", s.policy.RescheduleNotice)
	}

	if err := s.ensureSlotFree(ctx, booking, req.NewScheduledAt, booking.PrimaryTechnicianID); err != nil {
		return nil, err
	}

	oldScheduledAt := booking.ScheduledAt
	newScheduledAt := req.NewScheduledAt
	booking.ScheduledAt = &newScheduledAt

	if err := s.bookings.UpdateIfStatus(ctx, booking, booking.Status); err != nil {
		if err == repository.ErrStaleRow {
			return nil, apperrors.Conflict("booking was modified concurrently")
		}
		return nil, fmt.Errorf("failed to reschedule booking: %w", err)
	}

	s.logEventWithChange(ctx, booking, model.BookingEventRescheduled, booking.Status, booking.Status, "customer", req.Reason,
		map[string]interface{}{"scheduled_at": oldScheduledAt},
		map[string]interface{}{"scheduled_at": newScheduledAt})
	s.invalidate(booking.BusinessID, oldScheduledAt)
	s.invalidate(booking.BusinessID, &newScheduledAt)

	return booking, nil
}

// CancelBooking transitions to cancelled and computes the short-notice
// fee. Bookings are never hard-deleted.
func (s *Service) CancelBooking(ctx context.Context, id uuid.UUID, req *model.CancelBookingRequest) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanBeCancelled() {
		return nil, apperrors.Validationf("booking cannot be cancelled from status %s", booking.Status)
	}

	now := s.now()
	var fee float64
	if booking.ScheduledAt != nil && booking.ScheduledAt.Sub(now) < s.policy.CancellationNotice {
		fee = booking.QuotedPrice * s.policy.CancellationFeeRate
	}

	oldStatus := booking.Status
	booking.Status = model.BookingStatusCancelled
	booking.CancellationReason = &req.Reason
	booking.CancelledBy = &req.CancelledBy
	booking.CancelledAt = &now
	booking.CancellationFee = fee

	if err := s.bookings.UpdateIfStatus(ctx, booking, oldStatus); err != nil {
		if err == repository.ErrStaleRow {
			return nil, apperrors.Conflict("booking was modified concurrently")
		}
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.logEvent(ctx, booking, model.BookingEventCancelled, &oldStatus, booking.Status, req.CancelledBy, req.Reason,
		map[string]interface{}{"cancellation_fee": fee})
	s.invalidate(booking.BusinessID, booking.ScheduledAt)

	return booking, nil
}

// StartBooking marks a confirmed appointment as underway.
func (s *Service) StartBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, id, model.BookingStatusConfirmed, model.BookingStatusInProgress, model.BookingEventStarted)
}

// CompleteBooking closes out an in-progress appointment.
func (s *Service) CompleteBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, id, model.BookingStatusInProgress, model.BookingStatusCompleted, model.BookingEventCompleted)
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.getBooking(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context, businessID uuid.UUID, filters *model.BookingFilters) ([]*model.Booking, error) {
	bookings, err := s.bookings.List(ctx, businessID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *Service) ListBookingEvents(ctx context.Context, id uuid.UUID) ([]*model.BookingEvent, error) {
	if _, err := s.getBooking(ctx, id); err != nil {
		return nil, err
	}
	events, err := s.events.ListForBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking events: %w", err)
	}
	return events, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, from, to model.BookingStatus, event model.BookingEventType) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != from {
		return nil, apperrors.Validationf("booking cannot move to %s from status %s", to, booking.Status)
	}

	booking.Status = to
	if err := s.bookings.UpdateIfStatus(ctx, booking, from); err != nil {
		if err == repository.ErrStaleRow {
			return nil, apperrors.Conflict("booking was modified concurrently")
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.logEvent(ctx, booking, event, &from, to, "system", "", nil)
	return booking, nil
}

func (s *Service) getBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookings.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *Service) upsertCustomer(ctx context.Context, req *model.CreateBookingRequest) (*model.CustomerContact, error) {
	customer, err := s.customers.FindByContact(ctx, req.BusinessID, req.CustomerEmail, req.CustomerPhone)
	if err == nil {
		if err := s.customers.RecordBooking(ctx, customer.ID, req.SMSConsent); err != nil {
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
		return customer, nil
	}
	if err != repository.ErrNotFound {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	customer = &model.CustomerContact{
		BusinessID:    req.BusinessID,
		Name:          req.CustomerName,
		SMSConsent:    req.SMSConsent,
		TotalBookings: 1,
	}
	customer.ID = uuid.New()
	if req.CustomerEmail != "" {
		customer.Email = &req.CustomerEmail
	}
	if req.CustomerPhone != "" {
		customer.Phone = &req.CustomerPhone
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// logEvent appends to the audit log. Events are best-effort: a failed
// append never rolls back the committed state change.
func (s *Service) logEvent(ctx context.Context, booking *model.Booking, eventType model.BookingEventType,
	oldStatus *model.BookingStatus, newStatus model.BookingStatus, triggeredBy, notes string,
	newValues map[string]interface{}) {
	s.logEventWithChange(ctx, booking, eventType, statusOrZero(oldStatus), newStatus, triggeredBy, notes, nil, newValues)
}

func (s *Service) logEventWithChange(ctx context.Context, booking *model.Booking, eventType model.BookingEventType,
	oldStatus, newStatus model.BookingStatus, triggeredBy, notes string,
	oldValues, newValues map[string]interface{}) {
	event := &model.BookingEvent{
		BookingID:   booking.ID,
		EventType:   eventType,
		TriggeredBy: triggeredBy,
		Notes:       notes,
	}
	if oldStatus != "" {
		event.OldStatus = &oldStatus
	}
	event.NewStatus = &newStatus

	if oldValues != nil {
		if raw, err := json.Marshal(oldValues); err == nil {
			event.OldValues = raw
		}
	}
	if newValues != nil {
		if raw, err := json.Marshal(newValues); err == nil {
			event.NewValues = raw
		}
	}

	if err := s.events.Append(ctx, event); err != nil {
		s.logger.Error(err, "failed to append booking event",
			"booking_id", booking.ID.String(), "event_type", string(eventType))
	}
}

func (s *Service) invalidate(businessID uuid.UUID, at *time.Time) {
	if s.cache == nil || at == nil {
		return
	}
	s.cache.InvalidateDate(businessID, at.Format(availability.DateLayout))
}

func statusOrZero(status *model.BookingStatus) model.BookingStatus {
	if status == nil {
		return ""
	}
	return *status
}
