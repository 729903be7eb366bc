package availability

import (
	"fmt"
	"time"

	"github.com/jwalitptl/booking-api/internal/model"
)

// Window is a half-open [Start, End) interval on a concrete date.
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses the strict half-open intersection test: any partial
// overlap counts.
func (w Window) Overlaps(start, end time.Time) bool {
	return w.Start.Before(end) && w.End.After(start)
}

// hoursFor returns the schedule entry for an ISO weekday (1=Monday ..
// 7=Sunday), or nil when the day is closed or has no entry.
func hoursFor(hours []*model.BusinessHours, isoWeekday int) *model.BusinessHours {
	for _, h := range hours {
		if h.DayOfWeek == isoWeekday {
			if h.IsClosed() {
				return nil
			}
			return h
		}
	}
	return nil
}

// effectiveWindow intersects the day's open/close hours with the
// service's own available_times. Returns nil when the intersection is
// empty or inverted.
func effectiveWindow(date time.Time, day *model.BusinessHours, svc *model.Service) (*Window, error) {
	if day.IsClosed() {
		return nil, nil
	}

	open, err := clockOn(date, *day.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("invalid open time %q: %w", *day.OpenTime, err)
	}
	close, err := clockOn(date, *day.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("invalid close time %q: %w", *day.CloseTime, err)
	}

	start, end := open, close
	if svc.AvailableStart != nil {
		svcStart, err := clockOn(date, *svc.AvailableStart)
		if err != nil {
			return nil, fmt.Errorf("invalid service start time %q: %w", *svc.AvailableStart, err)
		}
		if svcStart.After(start) {
			start = svcStart
		}
	}
	if svc.AvailableEnd != nil {
		svcEnd, err := clockOn(date, *svc.AvailableEnd)
		if err != nil {
			return nil, fmt.Errorf("invalid service end time %q: %w", *svc.AvailableEnd, err)
		}
		if svcEnd.Before(end) {
			end = svcEnd
		}
	}

	if !start.Before(end) {
		return nil, nil
	}
	return &Window{Start: start, End: end}, nil
}

// lunchWindow returns the day's lunch break placed on the date, or nil
// when no lunch is configured.
func lunchWindow(date time.Time, day *model.BusinessHours) (*Window, error) {
	if !day.HasLunch() {
		return nil, nil
	}
	start, err := clockOn(date, *day.LunchStart)
	if err != nil {
		return nil, fmt.Errorf("invalid lunch start %q: %w", *day.LunchStart, err)
	}
	end, err := clockOn(date, *day.LunchEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid lunch end %q: %w", *day.LunchEnd, err)
	}
	if !start.Before(end) {
		return nil, nil
	}
	return &Window{Start: start, End: end}, nil
}

// clockOn places a wall-clock string on a date. Accepts both HH:MM and
// HH:MM:SS, matching what postgres TIME columns scan to.
func clockOn(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		t, err = time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
}

// isoWeekday maps Go's Sunday-based weekday to ISO 1=Monday .. 7=Sunday.
func isoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
