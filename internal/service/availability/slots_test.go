package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	window := Window{Start: day.Add(8 * time.Hour), End: day.Add(11 * time.Hour)}

	slots := generateSlots(window, nil, time.Hour, 30*time.Minute)
	require.Len(t, slots, 5)
	assert.Equal(t, day.Add(8*time.Hour), slots[0].Start)
	// The last slot ends exactly at close; 10:30 would run past it.
	assert.Equal(t, day.Add(10*time.Hour), slots[4].Start)
	assert.Equal(t, day.Add(11*time.Hour), slots[4].End)
}

func TestGenerateSlotsSkipsLunch(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	window := Window{Start: day.Add(8 * time.Hour), End: day.Add(17 * time.Hour)}
	lunch := &Window{Start: day.Add(12 * time.Hour), End: day.Add(13 * time.Hour)}

	slots := generateSlots(window, lunch, time.Hour, time.Hour)

	starts := make([]int, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start.Hour())
	}
	// 12:00 is gone entirely; a slot is never trimmed around lunch.
	assert.Equal(t, []int{8, 9, 10, 11, 13, 14, 15, 16}, starts)
}

func TestGenerateSlotsPartialLunchOverlap(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	window := Window{Start: day.Add(8 * time.Hour), End: day.Add(17 * time.Hour)}
	lunch := &Window{Start: day.Add(12 * time.Hour), End: day.Add(13 * time.Hour)}

	slots := generateSlots(window, lunch, time.Hour, 30*time.Minute)
	for _, s := range slots {
		assert.False(t, lunch.Overlaps(s.Start, s.End), "slot %v overlaps lunch", s.Start)
	}
	// 11:00-12:00 touches lunch only at the boundary and survives;
	// 11:30-12:30 straddles it and is dropped.
	seen := make(map[time.Time]bool, len(slots))
	for _, s := range slots {
		seen[s.Start] = true
	}
	assert.True(t, seen[day.Add(11*time.Hour)])
	assert.False(t, seen[day.Add(11*time.Hour+30*time.Minute)])
}

func TestGenerateSlotsWindowTooShort(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	window := Window{Start: day.Add(8 * time.Hour), End: day.Add(8*time.Hour + 45*time.Minute)}

	assert.Empty(t, generateSlots(window, nil, time.Hour, 30*time.Minute))
}
