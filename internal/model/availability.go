package model

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot is a candidate appointment interval on a given date. Value
// object, never persisted.
type TimeSlot struct {
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	Technicians []uuid.UUID `json:"available_technician_ids"`
	Capacity    int         `json:"capacity"`
	BookedCount int         `json:"booked_count"`
	Price       float64     `json:"price"`
}

type AvailabilityRequest struct {
	BusinessID            uuid.UUID   `json:"business_id"`
	ServiceID             uuid.UUID   `json:"service_id"`
	StartDate             time.Time   `json:"start_date"`
	EndDate               *time.Time  `json:"end_date,omitempty"`
	PreferredTechnicianID *uuid.UUID  `json:"preferred_technician_id,omitempty"`
	ExcludeTechnicianIDs  []uuid.UUID `json:"exclude_technician_ids,omitempty"`
	CustomerAddress       string      `json:"customer_address,omitempty"`
}

// AvailabilityResult maps ISO dates (2006-01-02) to their open slots.
type AvailabilityResult struct {
	AvailableDates    map[string][]TimeSlot `json:"available_dates"`
	TotalSlots        int                   `json:"total_slots"`
	EarliestAvailable *time.Time            `json:"earliest_available,omitempty"`
	LatestAvailable   *time.Time            `json:"latest_available,omitempty"`
	ServiceName       string                `json:"service_name"`
	DurationMinutes   int                   `json:"duration_minutes"`
	BasePrice         float64               `json:"base_price"`
}
