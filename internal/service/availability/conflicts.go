package availability

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
)

// availableTechniciansFor resolves which candidates can actually take a
// slot. A technician is excluded when explicitly requested out, when an
// existing confirmed/in-progress booking padded by their buffer overlaps
// the slot, or when approved time-off overlaps it. Survivors are sorted
// preferred-first, then by skill count descending, then first name.
func availableTechniciansFor(
	slot Window,
	candidates []*model.Technician,
	bookings []*model.Booking,
	timeOff []*model.TimeOff,
	preferred *uuid.UUID,
	excluded map[uuid.UUID]struct{},
) []*model.Technician {
	available := make([]*model.Technician, 0, len(candidates))

	for _, tech := range candidates {
		if _, out := excluded[tech.ID]; out {
			continue
		}
		if hasBookingConflict(slot, tech, bookings) {
			continue
		}
		if hasTimeOffConflict(slot, tech.ID, timeOff) {
			continue
		}
		available = append(available, tech)
	}

	sortByPreference(available, preferred)
	return available
}

func hasBookingConflict(slot Window, tech *model.Technician, bookings []*model.Booking) bool {
	buffer := time.Duration(tech.BufferMinutes) * time.Minute
	for _, b := range bookings {
		if b.Status != model.BookingStatusConfirmed && b.Status != model.BookingStatusInProgress {
			continue
		}
		if b.ScheduledAt == nil || b.PrimaryTechnicianID == nil || *b.PrimaryTechnicianID != tech.ID {
			continue
		}
		start := b.ScheduledAt.Add(-buffer)
		end := b.ScheduledAt.Add(b.Duration() + buffer)
		if slot.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func hasTimeOffConflict(slot Window, techID uuid.UUID, timeOff []*model.TimeOff) bool {
	for _, t := range timeOff {
		if t.Status != model.TimeOffStatusApproved || t.TechnicianID != techID {
			continue
		}
		if slot.Overlaps(t.StartAt, t.EndAt) {
			return true
		}
	}
	return false
}

// sortByPreference orders a stable sort keyed preferred-first, then
// skill count descending, then first name ascending.
func sortByPreference(technicians []*model.Technician, preferred *uuid.UUID) {
	sort.SliceStable(technicians, func(i, j int) bool {
		a, b := technicians[i], technicians[j]
		if preferred != nil {
			aPref := a.ID == *preferred
			bPref := b.ID == *preferred
			if aPref != bPref {
				return aPref
			}
		}
		if len(a.Skills) != len(b.Skills) {
			return len(a.Skills) > len(b.Skills)
		}
		return a.FirstName < b.FirstName
	})
}
