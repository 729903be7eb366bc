package booking

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	"github.com/jwalitptl/booking-api/internal/service/availability"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
	"github.com/jwalitptl/booking-api/pkg/logger"
)

type fakeBookingRepo struct {
	bookings    map[uuid.UUID]*model.Booking
	createCalls int
	updateErr   error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*model.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *model.Booking) error {
	r.createCalls++
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) Get(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) GetByIdempotencyKey(_ context.Context, businessID uuid.UUID, key string) (*model.Booking, error) {
	for _, b := range r.bookings {
		if b.BusinessID == businessID && b.IdempotencyKey != nil && *b.IdempotencyKey == key {
			clone := *b
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeBookingRepo) List(_ context.Context, businessID uuid.UUID, _ *model.BookingFilters) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range r.bookings {
		if b.BusinessID == businessID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListActiveInRange(_ context.Context, businessID uuid.UUID, start, end time.Time) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range r.bookings {
		if b.BusinessID != businessID || b.ScheduledAt == nil {
			continue
		}
		if b.Status != model.BookingStatusConfirmed && b.Status != model.BookingStatusInProgress {
			continue
		}
		if b.ScheduledAt.Before(end) && b.ScheduledAt.Add(b.Duration()).After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateIfStatus(_ context.Context, booking *model.Booking, expected model.BookingStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	current, ok := r.bookings[booking.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if current.Status != expected {
		return repository.ErrStaleRow
	}
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

type fakeServiceRepo struct {
	svc *model.Service
}

func (r *fakeServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	if r.svc == nil || r.svc.ID != id {
		return nil, repository.ErrNotFound
	}
	return r.svc, nil
}

type fakeCustomerRepo struct {
	customers   map[uuid.UUID]*model.CustomerContact
	recordedFor []uuid.UUID
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*model.CustomerContact)}
}

func (r *fakeCustomerRepo) FindByContact(_ context.Context, businessID uuid.UUID, email, phone string) (*model.CustomerContact, error) {
	for _, c := range r.customers {
		if c.BusinessID != businessID {
			continue
		}
		if email != "" && c.Email != nil && *c.Email == email {
			return c, nil
		}
		if phone != "" && c.Phone != nil && *c.Phone == phone {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *model.CustomerContact) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) RecordBooking(_ context.Context, id uuid.UUID, smsConsent bool) error {
	r.recordedFor = append(r.recordedFor, id)
	if c, ok := r.customers[id]; ok {
		c.TotalBookings++
		c.SMSConsent = c.SMSConsent || smsConsent
	}
	return nil
}

type fakeEventRepo struct {
	events    []*model.BookingEvent
	appendErr error
}

func (r *fakeEventRepo) Append(_ context.Context, e *model.BookingEvent) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.events = append(r.events, e)
	return nil
}

func (r *fakeEventRepo) ListForBooking(_ context.Context, bookingID uuid.UUID) ([]*model.BookingEvent, error) {
	var out []*model.BookingEvent
	for _, e := range r.events {
		if e.BookingID == bookingID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) types() []model.BookingEventType {
	out := make([]model.BookingEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}

type fixture struct {
	svc       *Service
	service   *model.Service
	bookings  *fakeBookingRepo
	customers *fakeCustomerRepo
	events    *fakeEventRepo
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	service := &model.Service{
		BusinessID:      uuid.New(),
		Name:            "Drain Cleaning",
		DurationMinutes: 60,
		BasePrice:       200,
		IsBookable:      true,
	}
	service.ID = uuid.New()

	bookings := newFakeBookingRepo()
	customers := newFakeCustomerRepo()
	events := &fakeEventRepo{}
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	svc := NewService(
		bookings,
		&fakeServiceRepo{svc: service},
		customers,
		events,
		nil,
		DefaultPolicy(),
		logger.NewLogger(nil),
	).WithClock(func() time.Time { return now })

	return &fixture{
		svc:       svc,
		service:   service,
		bookings:  bookings,
		customers: customers,
		events:    events,
		now:       now,
	}
}

func (f *fixture) createRequest() *model.CreateBookingRequest {
	return &model.CreateBookingRequest{
		BusinessID:    f.service.BusinessID,
		ServiceID:     f.service.ID,
		CustomerName:  "Pat Doe",
		CustomerEmail: "pat@example.com",
		RequestedAt:   f.now.Add(48 * time.Hour),
		Address:       "12 Main St",
	}
}

func (f *fixture) createdBooking(t *testing.T) *model.Booking {
	t.Helper()
	booking, err := f.svc.CreateBooking(context.Background(), f.createRequest())
	require.NoError(t, err)
	return booking
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)

	booking, err := f.svc.CreateBooking(context.Background(), f.createRequest())
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Equal(t, "Drain Cleaning", booking.ServiceName)
	assert.Equal(t, 60, booking.DurationMinutes)
	assert.Equal(t, 200.0, booking.QuotedPrice)
	assert.Nil(t, booking.ScheduledAt)

	// A first-time customer is created with the booking counted.
	require.Len(t, f.customers.customers, 1)
	for _, c := range f.customers.customers {
		assert.Equal(t, 1, c.TotalBookings)
		require.NotNil(t, c.Email)
		assert.Equal(t, "pat@example.com", *c.Email)
	}

	assert.Equal(t, []model.BookingEventType{model.BookingEventCreated}, f.events.types())
}

func TestCreateBookingIdempotency(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	key := "req-7431"
	req := f.createRequest()
	req.IdempotencyKey = &key

	first, err := f.svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	// A retry with the same key returns the original booking untouched.
	second, err := f.svc.CreateBooking(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.bookings.createCalls)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.createRequest()
	req.RequestedAt = f.now.Add(-time.Hour)
	_, err := f.svc.CreateBooking(ctx, req)
	assert.True(t, apperrors.IsValidation(err))

	req = f.createRequest()
	req.CustomerEmail = ""
	req.CustomerPhone = ""
	_, err = f.svc.CreateBooking(ctx, req)
	assert.True(t, apperrors.IsValidation(err))

	req = f.createRequest()
	req.SMSConsent = true
	req.CustomerPhone = ""
	_, err = f.svc.CreateBooking(ctx, req)
	assert.True(t, apperrors.IsValidation(err))

	req = f.createRequest()
	req.ServiceID = uuid.New()
	_, err = f.svc.CreateBooking(ctx, req)
	assert.True(t, apperrors.IsNotFound(err))

	f.service.IsBookable = false
	_, err = f.svc.CreateBooking(ctx, f.createRequest())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateBookingExistingCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateBooking(ctx, f.createRequest())
	require.NoError(t, err)

	second, err := f.svc.CreateBooking(ctx, f.createRequest())
	require.NoError(t, err)

	// Matched by email: same customer, booking count bumped, no duplicate.
	assert.Equal(t, first.CustomerID, second.CustomerID)
	assert.Len(t, f.customers.customers, 1)
	assert.Equal(t, []uuid.UUID{first.CustomerID}, f.customers.recordedFor)
	assert.Equal(t, 2, f.customers.customers[first.CustomerID].TotalBookings)
}

func TestCreateBookingAutoConfirm(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.AutoConfirm = true
	booking, err := f.svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusConfirmed, booking.Status)
	require.NotNil(t, booking.ScheduledAt)
	assert.Equal(t, req.RequestedAt, *booking.ScheduledAt)
	assert.Equal(t, []model.BookingEventType{model.BookingEventCreated, model.BookingEventConfirmed}, f.events.types())
}

func TestCreateBookingAutoConfirmConflictLeavesPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := f.now.Add(48 * time.Hour)
	techID := uuid.New()
	existing := &model.Booking{
		BusinessID:          f.service.BusinessID,
		ServiceID:           f.service.ID,
		DurationMinutes:     60,
		Status:              model.BookingStatusConfirmed,
		ScheduledAt:         &target,
		PrimaryTechnicianID: &techID,
	}
	existing.ID = uuid.New()
	f.bookings.bookings[existing.ID] = existing

	req := f.createRequest()
	req.AutoConfirm = true
	booking, err := f.svc.CreateBooking(ctx, req)

	// The create itself succeeded; the failed confirm is swallowed.
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Nil(t, booking.ScheduledAt)
}

func TestConfirmBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.createdBooking(t)

	confirmed, err := f.svc.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.ScheduledAt)
	assert.Equal(t, booking.RequestedAt, *confirmed.ScheduledAt)

	// Confirming twice is a state error, not a conflict.
	_, err = f.svc.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestConfirmBookingExplicitTime(t *testing.T) {
	f := newFixture(t)
	booking := f.createdBooking(t)

	scheduledAt := f.now.Add(72 * time.Hour)
	techID := uuid.New()
	confirmed, err := f.svc.ConfirmBooking(context.Background(), booking.ID, &model.ConfirmBookingRequest{
		ScheduledAt:  &scheduledAt,
		TechnicianID: &techID,
	})
	require.NoError(t, err)
	assert.Equal(t, scheduledAt, *confirmed.ScheduledAt)
	require.NotNil(t, confirmed.PrimaryTechnicianID)
	assert.Equal(t, techID, *confirmed.PrimaryTechnicianID)
}

func TestConfirmBookingConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := f.now.Add(48 * time.Hour)
	techID := uuid.New()
	existing := &model.Booking{
		BusinessID:          f.service.BusinessID,
		ServiceID:           f.service.ID,
		DurationMinutes:     60,
		Status:              model.BookingStatusConfirmed,
		ScheduledAt:         &target,
		PrimaryTechnicianID: &techID,
	}
	existing.ID = uuid.New()
	f.bookings.bookings[existing.ID] = existing

	// Same technician, overlapping time.
	booking := f.createdBooking(t)
	overlap := target.Add(30 * time.Minute)
	_, err := f.svc.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{
		ScheduledAt:  &overlap,
		TechnicianID: &techID,
	})
	require.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "technician")

	// Different technician, still overlapping: the conservative rule
	// rejects any overlap within the business.
	otherTech := uuid.New()
	_, err = f.svc.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{
		ScheduledAt:  &overlap,
		TechnicianID: &otherTech,
	})
	assert.True(t, apperrors.IsConflict(err))

	// An adjacent slot does not conflict.
	adjacent := target.Add(time.Hour)
	_, err = f.svc.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{
		ScheduledAt:  &adjacent,
		TechnicianID: &techID,
	})
	assert.NoError(t, err)
}

func TestConfirmBookingStaleRow(t *testing.T) {
	f := newFixture(t)
	booking := f.createdBooking(t)

	f.bookings.updateErr = repository.ErrStaleRow
	_, err := f.svc.ConfirmBooking(context.Background(), booking.ID, &model.ConfirmBookingRequest{})
	assert.True(t, apperrors.IsConflict(err))
}

func TestRescheduleBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.createdBooking(t)
	_, err := f.svc.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{})
	require.NoError(t, err)

	newTime := f.now.Add(96 * time.Hour)
	rescheduled, err := f.svc.RescheduleBooking(ctx, booking.ID, &model.RescheduleBookingRequest{
		NewScheduledAt: newTime,
		Reason:         "customer request",
	})
	require.NoError(t, err)
	assert.Equal(t, newTime, *rescheduled.ScheduledAt)
	assert.Equal(t, model.BookingStatusConfirmed, rescheduled.Status)
	assert.Equal(t, []model.BookingEventType{
		model.BookingEventCreated, model.BookingEventConfirmed, model.BookingEventRescheduled,
	}, f.events.types())
}

func TestRescheduleBookingNotice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Appointment 23 hours out: inside the notice window, rejected even
	// though the new target is far in the future.
	soon := f.now.Add(23 * time.Hour)
	booking := f.createdBooking(t)
	_, err := f.svc.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{ScheduledAt: &soon})
	require.NoError(t, err)

	_, err = f.svc.RescheduleBooking(ctx, booking.ID, &model.RescheduleBookingRequest{
		NewScheduledAt: f.now.Add(96 * time.Hour),
	})
	assert.True(t, apperrors.IsValidation(err))

	// 25 hours out clears the window.
	later := f.now.Add(25 * time.Hour)
	other := f.createdBooking(t)
	_, err = f.svc.ConfirmBooking(ctx, other.ID, &model.ConfirmBookingRequest{ScheduledAt: &later})
	require.NoError(t, err)

	_, err = f.svc.RescheduleBooking(ctx, other.ID, &model.RescheduleBookingRequest{
		NewScheduledAt: f.now.Add(96 * time.Hour),
	})
	assert.NoError(t, err)
}

func TestRescheduleBookingPending(t *testing.T) {
	f := newFixture(t)
	booking := f.createdBooking(t)

	// A pending booking has no scheduled time yet; the notice rule does
	// not apply and rescheduling only moves the target.
	newTime := f.now.Add(96 * time.Hour)
	rescheduled, err := f.svc.RescheduleBooking(context.Background(), booking.ID, &model.RescheduleBookingRequest{
		NewScheduledAt: newTime,
	})
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, rescheduled.Status)
	assert.Equal(t, newTime, *rescheduled.ScheduledAt)
}

func TestConfirmAfterPendingReschedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.createdBooking(t)

	// Reschedule while still pending, then confirm without an explicit
	// time: the rescheduled target must survive, not the original request.
	newTime := f.now.Add(96 * time.Hour)
	_, err := f.svc.RescheduleBooking(ctx, booking.ID, &model.RescheduleBookingRequest{
		NewScheduledAt: newTime,
	})
	require.NoError(t, err)

	confirmed, err := f.svc.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{})
	require.NoError(t, err)
	require.NotNil(t, confirmed.ScheduledAt)
	assert.Equal(t, newTime, *confirmed.ScheduledAt)
}

func TestCancelBookingFee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cancel := &model.CancelBookingRequest{Reason: "changed plans", CancelledBy: "customer"}

	// 23 hours before the appointment: short-notice fee applies.
	soon := f.now.Add(23 * time.Hour)
	booking := f.createdBooking(t)
	_, err := f.svc.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{ScheduledAt: &soon})
	require.NoError(t, err)

	cancelled, err := f.svc.CancelBooking(ctx, booking.ID, cancel)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, 50.0, cancelled.CancellationFee)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "changed plans", *cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledAt)

	// 25 hours out: no fee.
	later := f.now.Add(25 * time.Hour)
	other := f.createdBooking(t)
	_, err = f.svc.ConfirmBooking(ctx, other.ID, &model.ConfirmBookingRequest{ScheduledAt: &later})
	require.NoError(t, err)

	cancelled, err = f.svc.CancelBooking(ctx, other.ID, cancel)
	require.NoError(t, err)
	assert.Zero(t, cancelled.CancellationFee)
}

func TestCancelBookingTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cancel := &model.CancelBookingRequest{Reason: "changed plans", CancelledBy: "customer"}

	booking := f.createdBooking(t)
	_, err := f.svc.CancelBooking(ctx, booking.ID, cancel)
	require.NoError(t, err)

	// Cancelled is terminal.
	_, err = f.svc.CancelBooking(ctx, booking.ID, cancel)
	assert.True(t, apperrors.IsValidation(err))
}

func TestBookingLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.createdBooking(t)

	// Start requires a confirmed booking.
	_, err := f.svc.StartBooking(ctx, booking.ID)
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.svc.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{})
	require.NoError(t, err)

	started, err := f.svc.StartBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusInProgress, started.Status)

	// In-progress bookings can no longer be cancelled or rescheduled.
	_, err = f.svc.CancelBooking(ctx, booking.ID, &model.CancelBookingRequest{Reason: "x", CancelledBy: "customer"})
	assert.True(t, apperrors.IsValidation(err))
	_, err = f.svc.RescheduleBooking(ctx, booking.ID, &model.RescheduleBookingRequest{NewScheduledAt: f.now.Add(96 * time.Hour)})
	assert.True(t, apperrors.IsValidation(err))

	completed, err := f.svc.CompleteBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCompleted, completed.Status)

	_, err = f.svc.CompleteBooking(ctx, booking.ID)
	assert.True(t, apperrors.IsValidation(err))

	assert.Equal(t, []model.BookingEventType{
		model.BookingEventCreated,
		model.BookingEventConfirmed,
		model.BookingEventStarted,
		model.BookingEventCompleted,
	}, f.events.types())
}

func TestConfirmedBookingsNeverOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	techs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	// Random creation/confirmation sequence over a shared window; every
	// rejected confirm must be a conflict, never anything else.
	for i := 0; i < 200; i++ {
		req := f.createRequest()
		req.RequestedAt = f.now.Add(48*time.Hour + time.Duration(rng.Intn(96))*30*time.Minute)
		booking, err := f.svc.CreateBooking(ctx, req)
		require.NoError(t, err)

		techID := techs[rng.Intn(len(techs))]
		_, err = f.svc.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{TechnicianID: &techID})
		if err != nil {
			require.True(t, apperrors.IsConflict(err), "unexpected error: %v", err)
		}
	}

	var confirmed []*model.Booking
	for _, b := range f.bookings.bookings {
		if b.Status == model.BookingStatusConfirmed {
			confirmed = append(confirmed, b)
		}
	}
	require.NotEmpty(t, confirmed)

	for i := 0; i < len(confirmed); i++ {
		for j := i + 1; j < len(confirmed); j++ {
			a, b := confirmed[i], confirmed[j]
			aEnd := a.ScheduledAt.Add(a.Duration())
			bEnd := b.ScheduledAt.Add(b.Duration())
			overlap := a.ScheduledAt.Before(bEnd) && aEnd.After(*b.ScheduledAt)
			assert.False(t, overlap, "bookings %s and %s overlap", a.ID, b.ID)
		}
	}
}

func TestListBookingEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.createdBooking(t)

	events, err := f.svc.ListBookingEvents(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.BookingEventCreated, events[0].EventType)

	_, err = f.svc.ListBookingEvents(ctx, uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEventAppendFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(t)
	f.events.appendErr = assert.AnError

	// The audit log is best-effort: the booking is still created.
	booking, err := f.svc.CreateBooking(context.Background(), f.createRequest())
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Empty(t, f.events.events)
}

func TestCancelInvalidatesAvailabilityCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cache := availability.NewCache(time.Minute)
	f.svc.cache = cache

	booking := f.createdBooking(t)
	confirmed, err := f.svc.ConfirmBooking(ctx, booking.ID, &model.ConfirmBookingRequest{})
	require.NoError(t, err)

	dateKey := confirmed.ScheduledAt.Format(availability.DateLayout)
	cache.Set(f.service.BusinessID, f.service.ID, dateKey, []model.TimeSlot{{}})

	_, err = f.svc.CancelBooking(ctx, booking.ID, &model.CancelBookingRequest{Reason: "x", CancelledBy: "customer"})
	require.NoError(t, err)

	_, ok := cache.Get(f.service.BusinessID, f.service.ID, dateKey)
	assert.False(t, ok)
}
