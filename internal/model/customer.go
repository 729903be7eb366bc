package model

import (
	"github.com/google/uuid"
)

// CustomerContact is matched by email or phone within a business and
// upserted on every booking request.
type CustomerContact struct {
	Base
	BusinessID    uuid.UUID `db:"business_id" json:"business_id"`
	Name          string    `db:"name" json:"name"`
	Email         *string   `db:"email" json:"email,omitempty"`
	Phone         *string   `db:"phone" json:"phone,omitempty"`
	SMSConsent    bool      `db:"sms_consent" json:"sms_consent"`
	TotalBookings int       `db:"total_bookings" json:"total_bookings"`
}
