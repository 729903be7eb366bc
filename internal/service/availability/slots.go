package availability

import (
	"time"
)

// generateSlots steps through the working window at a fixed interval,
// emitting every candidate that still fits before the window closes.
// Candidates touching the lunch window are skipped outright; there is
// no partial-slot trimming. Output is ordered ascending by start time
// and deterministic for identical inputs.
func generateSlots(window Window, lunch *Window, duration time.Duration, interval time.Duration) []Window {
	var slots []Window
	for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(interval) {
		end := start.Add(duration)
		if lunch != nil && lunch.Overlaps(start, end) {
			continue
		}
		slots = append(slots, Window{Start: start, End: end})
	}
	return slots
}
