package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/model"
)

func strPtr(s string) *string { return &s }

func TestWindowOverlaps(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	w := Window{
		Start: day.Add(10 * time.Hour),
		End:   day.Add(11 * time.Hour),
	}

	// Adjacent intervals share only the boundary instant and do not overlap.
	assert.False(t, w.Overlaps(day.Add(9*time.Hour), day.Add(10*time.Hour)))
	assert.False(t, w.Overlaps(day.Add(11*time.Hour), day.Add(12*time.Hour)))

	assert.True(t, w.Overlaps(day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute)))
	assert.True(t, w.Overlaps(day.Add(9*time.Hour+30*time.Minute), day.Add(10*time.Hour+30*time.Minute)))
	assert.True(t, w.Overlaps(day.Add(9*time.Hour), day.Add(12*time.Hour)))
	assert.True(t, w.Overlaps(day.Add(10*time.Hour), day.Add(11*time.Hour)))
}

func TestHoursFor(t *testing.T) {
	hours := []*model.BusinessHours{
		{DayOfWeek: 1, OpenTime: strPtr("08:00"), CloseTime: strPtr("17:00")},
		{DayOfWeek: 2}, // closed: no open/close
	}

	assert.NotNil(t, hoursFor(hours, 1))
	assert.Nil(t, hoursFor(hours, 2))
	assert.Nil(t, hoursFor(hours, 3))
}

func TestEffectiveWindow(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	day := &model.BusinessHours{
		DayOfWeek: 1,
		OpenTime:  strPtr("08:00"),
		CloseTime: strPtr("17:00"),
	}

	svc := &model.Service{}
	w, err := effectiveWindow(date, day, svc)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, date.Add(8*time.Hour), w.Start)
	assert.Equal(t, date.Add(17*time.Hour), w.End)

	// Service hours narrow the window on both ends.
	svc = &model.Service{
		AvailableStart: strPtr("09:00"),
		AvailableEnd:   strPtr("15:00"),
	}
	w, err = effectiveWindow(date, day, svc)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, date.Add(9*time.Hour), w.Start)
	assert.Equal(t, date.Add(15*time.Hour), w.End)

	// Disjoint service hours produce no window at all.
	svc = &model.Service{
		AvailableStart: strPtr("18:00"),
		AvailableEnd:   strPtr("20:00"),
	}
	w, err = effectiveWindow(date, day, svc)
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestLunchWindow(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	day := &model.BusinessHours{
		OpenTime:   strPtr("08:00"),
		CloseTime:  strPtr("17:00"),
		LunchStart: strPtr("12:00"),
		LunchEnd:   strPtr("13:00"),
	}
	w, err := lunchWindow(date, day)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, date.Add(12*time.Hour), w.Start)
	assert.Equal(t, date.Add(13*time.Hour), w.End)

	day = &model.BusinessHours{OpenTime: strPtr("08:00"), CloseTime: strPtr("17:00")}
	w, err = lunchWindow(date, day)
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestClockOn(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	got, err := clockOn(date, "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), got)

	got, err = clockOn(date, "09:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), got)

	_, err = clockOn(date, "not a time")
	assert.Error(t, err)
}

func TestIsoWeekday(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, isoWeekday(monday))
	assert.Equal(t, 6, isoWeekday(monday.AddDate(0, 0, 5)))
	assert.Equal(t, 7, isoWeekday(monday.AddDate(0, 0, 6)))
}
