package model

import (
	"time"

	"github.com/google/uuid"
)

type TimeOffStatus string

const (
	TimeOffStatusPending  TimeOffStatus = "pending"
	TimeOffStatusApproved TimeOffStatus = "approved"
	TimeOffStatusDenied   TimeOffStatus = "denied"
)

// TimeOff blocks a technician for an interval. Only approved records
// affect availability.
type TimeOff struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	TechnicianID uuid.UUID     `db:"technician_id" json:"technician_id"`
	StartAt      time.Time     `db:"start_at" json:"start_at"`
	EndAt        time.Time     `db:"end_at" json:"end_at"`
	Status       TimeOffStatus `db:"status" json:"status"`
	Reason       string        `db:"reason" json:"reason,omitempty"`
}
