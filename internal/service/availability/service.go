package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
	"github.com/jwalitptl/booking-api/pkg/logger"
)

const (
	// DateLayout keys the per-date slot maps.
	DateLayout = "2006-01-02"

	// MaxRangeDays caps a single availability request regardless of the
	// service's own max advance configuration.
	MaxRangeDays = 90

	DefaultSlotIntervalMinutes = 30
)

type Config struct {
	SlotIntervalMinutes int
	CacheTTL            time.Duration
}

type Service struct {
	services    repository.ServiceRepository
	technicians repository.TechnicianRepository
	hours       repository.BusinessHoursRepository
	timeOff     repository.TimeOffRepository
	bookings    repository.BookingRepository
	cache       *Cache
	logger      *logger.Logger
	interval    time.Duration
	now         func() time.Time
}

func NewService(
	services repository.ServiceRepository,
	technicians repository.TechnicianRepository,
	hours repository.BusinessHoursRepository,
	timeOff repository.TimeOffRepository,
	bookings repository.BookingRepository,
	cache *Cache,
	cfg Config,
	logger *logger.Logger,
) *Service {
	interval := cfg.SlotIntervalMinutes
	if interval <= 0 {
		interval = DefaultSlotIntervalMinutes
	}
	return &Service{
		services:    services,
		technicians: technicians,
		hours:       hours,
		timeOff:     timeOff,
		bookings:    bookings,
		cache:       cache,
		logger:      logger,
		interval:    time.Duration(interval) * time.Minute,
		now:         time.Now,
	}
}

// Cache exposes the slot cache so booking mutations can invalidate it.
func (s *Service) Cache() *Cache {
	return s.cache
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetAvailability computes open slots for a service across a date
// range. Reads a snapshot of technicians, hours, bookings and time-off
// once for the whole range; concurrently created bookings are invisible
// here, which is why booking confirmation re-validates against fresh
// data.
func (s *Service) GetAvailability(ctx context.Context, req *model.AvailabilityRequest) (*model.AvailabilityResult, error) {
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

	now := s.now()
	startDate, endDate, err := s.resolveRange(req, svc, now)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.fetchSnapshot(ctx, req.BusinessID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	result := &model.AvailabilityResult{
		AvailableDates:  make(map[string][]model.TimeSlot),
		ServiceName:     svc.Name,
		DurationMinutes: svc.DurationMinutes,
		BasePrice:       svc.BasePrice,
	}

	candidates := eligibleTechnicians(snapshot.technicians, svc)
	if len(candidates) == 0 {
		// No qualified technician is a polite empty response, never an
		// error surfaced to the customer.
		return result, nil
	}

	excluded := make(map[uuid.UUID]struct{}, len(req.ExcludeTechnicianIDs))
	for _, id := range req.ExcludeTechnicianIDs {
		excluded[id] = struct{}{}
	}
	// Cached entries are only valid for unfiltered requests.
	cacheable := s.cache != nil && req.PreferredTechnicianID == nil && len(excluded) == 0

	leadHorizon := now.Add(time.Duration(svc.MinLeadTimeHrs) * time.Hour)

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		if !svc.AvailableOn(isoWeekday(date)) {
			continue
		}
		// Skip dates that close before the lead horizon opens.
		if date.AddDate(0, 0, 1).Add(-time.Nanosecond).Before(leadHorizon) {
			continue
		}

		dateKey := date.Format(DateLayout)
		if cacheable {
			if slots, ok := s.cache.Get(req.BusinessID, req.ServiceID, dateKey); ok {
				// Cached entries can outlive the lead horizon within
				// their TTL; drop slots that have slipped inside it.
				s.accumulate(result, dateKey, dropBeforeHorizon(slots, leadHorizon))
				continue
			}
		}

		slots, err := s.slotsForDate(date, svc, snapshot, candidates, req.PreferredTechnicianID, excluded, leadHorizon)
		if err != nil {
			return nil, err
		}
		if cacheable {
			s.cache.Set(req.BusinessID, req.ServiceID, dateKey, slots)
		}
		s.accumulate(result, dateKey, slots)
	}

	return result, nil
}

// resolveRange validates the requested dates and clamps the end down to
// the service's max advance horizon. The 90-day cap is a hard error;
// the max-advance clamp is silent.
func (s *Service) resolveRange(req *model.AvailabilityRequest, svc *model.Service, now time.Time) (time.Time, time.Time, error) {
	today := dateOnly(now)
	start := dateOnly(req.StartDate)

	if start.Before(today) {
		return time.Time{}, time.Time{}, apperrors.Validation("cannot request availability for past dates")
	}

	end := start
	if req.EndDate != nil {
		end = dateOnly(*req.EndDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.Validation("end date cannot be before start date")
	}
	// Calendar days, not elapsed hours: a DST transition must not let
	// an extra day slip under the cap.
	if end.After(start.AddDate(0, 0, MaxRangeDays)) {
		return time.Time{}, time.Time{}, apperrors.Validationf("date range cannot exceed %d days", MaxRangeDays)
	}

	if svc.MaxAdvanceDays > 0 {
		horizon := today.AddDate(0, 0, svc.MaxAdvanceDays)
		if end.After(horizon) {
			end = horizon
		}
	}
	return start, end, nil
}

type rangeSnapshot struct {
	technicians []*model.Technician
	hours       []*model.BusinessHours
	bookings    []*model.Booking
	timeOff     []*model.TimeOff
}

// fetchSnapshot runs the three independent reads concurrently; slot
// computation is synchronous over the returned snapshot.
func (s *Service) fetchSnapshot(ctx context.Context, businessID uuid.UUID, startDate, endDate time.Time) (*rangeSnapshot, error) {
	// Pad the window by a day so buffer-extended bookings at the edges
	// still show up.
	rangeStart := startDate.AddDate(0, 0, -1)
	rangeEnd := endDate.AddDate(0, 0, 2)

	snapshot := &rangeSnapshot{}
	var techErr, hoursErr, bookingsErr error

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		snapshot.technicians, techErr = s.technicians.ListBookable(ctx, businessID)
	}()
	go func() {
		defer wg.Done()
		snapshot.hours, hoursErr = s.hours.ListForBusiness(ctx, businessID)
	}()
	go func() {
		defer wg.Done()
		snapshot.bookings, bookingsErr = s.bookings.ListActiveInRange(ctx, businessID, rangeStart, rangeEnd)
		if bookingsErr != nil {
			return
		}
		snapshot.timeOff, bookingsErr = s.timeOff.ListApprovedInRange(ctx, businessID, rangeStart, rangeEnd)
	}()
	wg.Wait()

	for _, err := range []error{techErr, hoursErr, bookingsErr} {
		if err != nil {
			return nil, fmt.Errorf("failed to load availability data: %w", err)
		}
	}
	return snapshot, nil
}

func (s *Service) slotsForDate(
	date time.Time,
	svc *model.Service,
	snapshot *rangeSnapshot,
	candidates []*model.Technician,
	preferred *uuid.UUID,
	excluded map[uuid.UUID]struct{},
	leadHorizon time.Time,
) ([]model.TimeSlot, error) {
	day := hoursFor(snapshot.hours, isoWeekday(date))
	if day == nil {
		return nil, nil
	}

	window, err := effectiveWindow(date, day, svc)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if window == nil {
		return nil, nil
	}
	lunch, err := lunchWindow(date, day)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	var slots []model.TimeSlot
	for _, candidate := range generateSlots(*window, lunch, svc.Duration(), s.interval) {
		if candidate.Start.Before(leadHorizon) {
			continue
		}

		available := availableTechniciansFor(candidate, candidates, snapshot.bookings, snapshot.timeOff, preferred, excluded)
		if len(available) < svc.MinTechnicians {
			continue
		}

		capacity := len(available)
		if svc.MaxTechnicians > 0 && capacity > svc.MaxTechnicians {
			capacity = svc.MaxTechnicians
		}

		ids := make([]uuid.UUID, capacity)
		for i := 0; i < capacity; i++ {
			ids[i] = available[i].ID
		}

		slots = append(slots, model.TimeSlot{
			StartTime:   candidate.Start,
			EndTime:     candidate.End,
			Technicians: ids,
			Capacity:    capacity,
			BookedCount: countOverlapping(candidate, snapshot.bookings),
			Price:       svc.BasePrice,
		})
	}
	return slots, nil
}

func (s *Service) accumulate(result *model.AvailabilityResult, dateKey string, slots []model.TimeSlot) {
	if len(slots) == 0 {
		return
	}
	result.AvailableDates[dateKey] = slots
	result.TotalSlots += len(slots)

	first := slots[0].StartTime
	last := slots[len(slots)-1].StartTime
	if result.EarliestAvailable == nil || first.Before(*result.EarliestAvailable) {
		result.EarliestAvailable = &first
	}
	if result.LatestAvailable == nil || last.After(*result.LatestAvailable) {
		result.LatestAvailable = &last
	}
}

func dropBeforeHorizon(slots []model.TimeSlot, horizon time.Time) []model.TimeSlot {
	kept := make([]model.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.StartTime.Before(horizon) {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

func countOverlapping(slot Window, bookings []*model.Booking) int {
	count := 0
	for _, b := range bookings {
		if b.ScheduledAt == nil {
			continue
		}
		if b.Status != model.BookingStatusConfirmed && b.Status != model.BookingStatusInProgress {
			continue
		}
		if slot.Overlaps(*b.ScheduledAt, b.ScheduledAt.Add(b.Duration())) {
			count++
		}
	}
	return count
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
