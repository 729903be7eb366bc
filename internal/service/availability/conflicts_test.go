package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/model"
)

func confirmedBooking(techID uuid.UUID, at time.Time, minutes int) *model.Booking {
	b := &model.Booking{
		Status:              model.BookingStatusConfirmed,
		ScheduledAt:         &at,
		PrimaryTechnicianID: &techID,
		DurationMinutes:     minutes,
	}
	b.ID = uuid.New()
	return b
}

func TestHasBookingConflict(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tech := &model.Technician{BufferMinutes: 0}
	tech.ID = uuid.New()

	slot := Window{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)}

	// Back-to-back with no buffer is fine.
	bookings := []*model.Booking{confirmedBooking(tech.ID, day.Add(11*time.Hour), 60)}
	assert.False(t, hasBookingConflict(slot, tech, bookings))

	bookings = []*model.Booking{confirmedBooking(tech.ID, day.Add(10*time.Hour+30*time.Minute), 60)}
	assert.True(t, hasBookingConflict(slot, tech, bookings))

	// Another technician's booking never blocks this one.
	bookings = []*model.Booking{confirmedBooking(uuid.New(), day.Add(10*time.Hour), 60)}
	assert.False(t, hasBookingConflict(slot, tech, bookings))

	// Pending bookings hold no slot.
	pending := confirmedBooking(tech.ID, day.Add(10*time.Hour), 60)
	pending.Status = model.BookingStatusPending
	assert.False(t, hasBookingConflict(slot, tech, []*model.Booking{pending}))
}

func TestHasBookingConflictBuffer(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tech := &model.Technician{BufferMinutes: 30}
	tech.ID = uuid.New()

	slot := Window{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)}

	// The buffer pads the existing booking on both sides: a job ending
	// at 11:15 blocks slots until 11:45.
	bookings := []*model.Booking{confirmedBooking(tech.ID, day.Add(11*time.Hour+15*time.Minute), 60)}
	assert.True(t, hasBookingConflict(slot, tech, bookings))

	bookings = []*model.Booking{confirmedBooking(tech.ID, day.Add(11*time.Hour+30*time.Minute), 60)}
	assert.False(t, hasBookingConflict(slot, tech, bookings))
}

func TestHasTimeOffConflict(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	techID := uuid.New()
	slot := Window{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)}

	timeOff := []*model.TimeOff{{
		TechnicianID: techID,
		StartAt:      day.Add(9 * time.Hour),
		EndAt:        day.Add(10*time.Hour + 30*time.Minute),
		Status:       model.TimeOffStatusApproved,
	}}
	assert.True(t, hasTimeOffConflict(slot, techID, timeOff))
	assert.False(t, hasTimeOffConflict(slot, uuid.New(), timeOff))

	timeOff[0].Status = model.TimeOffStatusPending
	assert.False(t, hasTimeOffConflict(slot, techID, timeOff))
}

func TestAvailableTechniciansFor(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slot := Window{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)}

	busy := &model.Technician{FirstName: "Busy"}
	busy.ID = uuid.New()
	free := &model.Technician{FirstName: "Free"}
	free.ID = uuid.New()
	out := &model.Technician{FirstName: "Out"}
	out.ID = uuid.New()

	bookings := []*model.Booking{confirmedBooking(busy.ID, day.Add(10*time.Hour), 60)}
	excluded := map[uuid.UUID]struct{}{out.ID: {}}

	available := availableTechniciansFor(slot, []*model.Technician{busy, free, out}, bookings, nil, nil, excluded)
	require.Len(t, available, 1)
	assert.Equal(t, free.ID, available[0].ID)
}

func TestSortByPreference(t *testing.T) {
	ana := &model.Technician{FirstName: "Ana", Skills: pq.StringArray{"hvac"}}
	ana.ID = uuid.New()
	ben := &model.Technician{FirstName: "Ben", Skills: pq.StringArray{"hvac", "plumbing"}}
	ben.ID = uuid.New()
	cal := &model.Technician{FirstName: "Cal", Skills: pq.StringArray{"hvac"}}
	cal.ID = uuid.New()

	techs := []*model.Technician{cal, ana, ben}
	sortByPreference(techs, nil)
	assert.Equal(t, []string{"Ben", "Ana", "Cal"}, []string{techs[0].FirstName, techs[1].FirstName, techs[2].FirstName})

	// The preferred technician jumps the queue regardless of skills.
	techs = []*model.Technician{cal, ana, ben}
	sortByPreference(techs, &cal.ID)
	assert.Equal(t, "Cal", techs[0].FirstName)
	assert.Equal(t, "Ben", techs[1].FirstName)
}
