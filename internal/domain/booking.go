package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
	BookingStatusNoShow     BookingStatus = "NO_SHOW"
	BookingStatusExpired    BookingStatus = "EXPIRED"
)

type EscrowStatus string

const (
	EscrowStatusUnfunded EscrowStatus = "UNFUNDED"
	EscrowStatusHeld     EscrowStatus = "HELD"
	EscrowStatusReleased EscrowStatus = "RELEASED"
	EscrowStatusRefunded EscrowStatus = "REFUNDED"
	EscrowStatusSplit    EscrowStatus = "SPLIT"
)

type LocationMode string

const (
	LocationModeMobile LocationMode = "MOBILE"
	LocationModeSalon  LocationMode = "SALON"
)

type Booking struct {
	ID              int32        `json:"id"`
	CustomerID      int32        `json:"customer_id"`
	StylistID       int32        `json:"stylist_id"`
	ChairID         *int32       `json:"chair_id,omitempty"`
	ServiceName     string       `json:"service_name"`
	LocationMode    LocationMode `json:"location_mode"`
	Address         string       `json:"address,omitempty"`
	ScheduledStart  time.Time    `json:"scheduled_start"`
	DurationMinutes int32        `json:"duration_minutes"`
	// Amount snapshot taken at creation. All escrow and refund math uses
	// this value, never a re-quoted price.
	AmountCents  int32         `json:"amount_cents"`
	TipCents     int32         `json:"tip_cents"`
	RefundCents  int32         `json:"refund_cents"`
	Status       BookingStatus `json:"status"`
	EscrowStatus EscrowStatus  `json:"escrow_status"`
	CancelledBy  *int32        `json:"cancelled_by,omitempty"`
	CancelReason string        `json:"cancel_reason,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	StartedOn    *time.Time    `json:"started_on,omitempty"`
	CompletedOn  *time.Time    `json:"completed_on,omitempty"`
	CreatedOn    time.Time     `json:"created_on"`
	UpdatedOn    time.Time     `json:"updated_on"`
}

// End returns the scheduled end of the appointment.
func (b *Booking) End() time.Time {
	return b.ScheduledStart.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// Cancellable reports whether the booking can still be cancelled by a party.
func (b *Booking) Cancellable() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
