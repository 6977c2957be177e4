package live

import "time"

// Event types delivered on a booking's live stream.
const (
	EventConnected     = "connected"
	EventProgress      = "progress"
	EventArrived       = "arrived"
	EventSessionEnded  = "session_ended"
	EventStatusChanged = "status_changed"
	EventError         = "error"
)

// Event is a single live update for a booking session.
type Event struct {
	BookingID int32             `json:"booking_id"`
	Type      string            `json:"type"`
	Data      map[string]string `json:"data,omitempty"`
	At        time.Time         `json:"at"`
}
