package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

// conflictFetchMargin widens the booking fetch around the target
// interval so neighbours whose intervals reach into it are included.
const conflictFetchMargin = time.Hour

// ensureSlotFree re-validates the target time against bookings read
// fresh from the store, excluding the booking being modified. Any
// overlapping confirmed/in-progress booking conflicts, even with a
// different technician: the rule is deliberately conservative and does
// not account for remaining technician capacity.
func (s *Service) ensureSlotFree(ctx context.Context, booking *model.Booking, target time.Time, technicianID *uuid.UUID) error {
	start := target
	end := target.Add(booking.Duration())

	active, err := s.bookings.ListActiveInRange(ctx, booking.BusinessID,
		start.Add(-conflictFetchMargin), end.Add(conflictFetchMargin))
	if err != nil {
		return fmt.Errorf("failed to re-validate availability: %w", err)
	}

	for _, other := range active {
		if other.ID == booking.ID || other.ScheduledAt == nil {
			continue
		}
		otherStart := *other.ScheduledAt
		otherEnd := otherStart.Add(other.Duration())
		if !overlaps(start, end, otherStart, otherEnd) {
			continue
		}
		if technicianID != nil && other.PrimaryTechnicianID != nil && *other.PrimaryTechnicianID == *technicianID {
			return apperrors.Conflict("technician is not available at the requested time")
		}
		return apperrors.Conflict("requested time slot is not available")
	}
	return nil
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
