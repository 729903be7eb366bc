package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type BookingEventType string

const (
	BookingEventCreated     BookingEventType = "created"
	BookingEventConfirmed   BookingEventType = "confirmed"
	BookingEventRescheduled BookingEventType = "rescheduled"
	BookingEventCancelled   BookingEventType = "cancelled"
	BookingEventStarted     BookingEventType = "started"
	BookingEventCompleted   BookingEventType = "completed"
)

// BookingEvent is an append-only audit record. Rows are never mutated
// or deleted.
type BookingEvent struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	BookingID   uuid.UUID        `db:"booking_id" json:"booking_id"`
	EventType   BookingEventType `db:"event_type" json:"event_type"`
	OldStatus   *BookingStatus   `db:"old_status" json:"old_status,omitempty"`
	NewStatus   *BookingStatus   `db:"new_status" json:"new_status,omitempty"`
	TriggeredBy string           `db:"triggered_by" json:"triggered_by"`
	Notes       string           `db:"notes" json:"notes,omitempty"`
	OldValues   json.RawMessage  `db:"old_values" json:"old_values,omitempty"`
	NewValues   json.RawMessage  `db:"new_values" json:"new_values,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}
