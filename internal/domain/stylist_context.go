package domain

import "time"

type StylistMode string

const (
	StylistModeMobile StylistMode = "MOBILE"
	StylistModeChair  StylistMode = "CHAIR"
)

// StylistContext is a stylist's current operating setup: whether they
// travel to customers or work out of a rented chair, and whether they are
// currently taking bookings.
type StylistContext struct {
	StylistID         int32       `json:"stylist_id"`
	Mode              StylistMode `json:"mode"`
	ActiveRentalID    *int32      `json:"active_rental_id,omitempty"`
	ChairID           *int32      `json:"chair_id,omitempty"`
	ServiceArea       string      `json:"service_area,omitempty"`
	AcceptingBookings bool        `json:"accepting_bookings"`
	UpdatedOn         time.Time   `json:"updated_on"`
}

// AvailabilityBlock is a weekly recurring window during which a stylist
// accepts appointments. Weekday follows time.Weekday numbering.
type AvailabilityBlock struct {
	ID        int32  `json:"id"`
	StylistID int32  `json:"stylist_id"`
	Weekday   int32  `json:"weekday"`
	StartTime string `json:"start_time"` // HH:MM, 24h
	EndTime   string `json:"end_time"`   // HH:MM, 24h
}

// BlockedDate removes a whole calendar day from a stylist's availability.
type BlockedDate struct {
	ID        int32  `json:"id"`
	StylistID int32  `json:"stylist_id"`
	Date      string `json:"date"` // yyyy-mm-dd
	Reason    string `json:"reason,omitempty"`
}
