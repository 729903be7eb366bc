package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Technician struct {
	Base
	BusinessID    uuid.UUID      `db:"business_id" json:"business_id"`
	FirstName     string         `db:"first_name" json:"first_name"`
	LastName      string         `db:"last_name" json:"last_name"`
	IsActive      bool           `db:"is_active" json:"is_active"`
	CanBeBooked   bool           `db:"can_be_booked" json:"can_be_booked"`
	Skills        pq.StringArray `db:"skills" json:"skills"`
	ServiceAreas  pq.StringArray `db:"service_areas" json:"service_areas"`
	BufferMinutes int            `db:"default_buffer_minutes" json:"default_buffer_minutes"`
}

// HasAllSkills reports whether the technician's skill set is a superset
// of required. Every required skill must match; this is an AND, not an OR.
func (t *Technician) HasAllSkills(required []string) bool {
	if len(required) == 0 {
		return true
	}
	owned := make(map[string]struct{}, len(t.Skills))
	for _, s := range t.Skills {
		owned[s] = struct{}{}
	}
	for _, s := range required {
		if _, ok := owned[s]; !ok {
			return false
		}
	}
	return true
}
