package model

import (
	"github.com/google/uuid"
)

// BusinessHours is one weekly schedule entry. Nil open/close means the
// business is closed that day. The lunch window, when present, sits
// wholly inside the open/close window.
type BusinessHours struct {
	ID         uuid.UUID `db:"id" json:"id"`
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	DayOfWeek  int       `db:"day_of_week" json:"day_of_week"` // ISO 1=Monday .. 7=Sunday
	OpenTime   *string   `db:"open_time" json:"open_time,omitempty"`
	CloseTime  *string   `db:"close_time" json:"close_time,omitempty"`
	LunchStart *string   `db:"lunch_start" json:"lunch_start,omitempty"`
	LunchEnd   *string   `db:"lunch_end" json:"lunch_end,omitempty"`
}

func (h *BusinessHours) IsClosed() bool {
	return h == nil || h.OpenTime == nil || h.CloseTime == nil
}

func (h *BusinessHours) HasLunch() bool {
	return h != nil && h.LunchStart != nil && h.LunchEnd != nil
}
