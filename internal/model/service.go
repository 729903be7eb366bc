package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Service is a bookable offering. Read-only for this API; mutated by
// business admin tooling elsewhere.
type Service struct {
	Base
	BusinessID      uuid.UUID      `db:"business_id" json:"business_id"`
	Name            string         `db:"name" json:"name"`
	DurationMinutes int            `db:"estimated_duration_minutes" json:"estimated_duration_minutes"`
	BasePrice       float64        `db:"base_price" json:"base_price"`
	MinTechnicians  int            `db:"min_technicians" json:"min_technicians"`
	MaxTechnicians  int            `db:"max_technicians" json:"max_technicians"`
	RequiredSkills  pq.StringArray `db:"required_skills" json:"required_skills"`
	AvailableDays   pq.Int64Array  `db:"available_days" json:"available_days"`
	AvailableStart  *string        `db:"available_start" json:"available_start,omitempty"`
	AvailableEnd    *string        `db:"available_end" json:"available_end,omitempty"`
	MinLeadTimeHrs  int            `db:"min_lead_time_hours" json:"min_lead_time_hours"`
	MaxAdvanceDays  int            `db:"max_advance_days" json:"max_advance_days"`
	IsBookable      bool           `db:"is_bookable" json:"is_bookable"`
}

// Duration returns the estimated duration of one appointment.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// AvailableOn reports whether the service can be booked on the given
// ISO weekday (1=Monday .. 7=Sunday). An empty set means every day.
func (s *Service) AvailableOn(isoWeekday int) bool {
	if len(s.AvailableDays) == 0 {
		return true
	}
	for _, d := range s.AvailableDays {
		if int(d) == isoWeekday {
			return true
		}
	}
	return false
}
