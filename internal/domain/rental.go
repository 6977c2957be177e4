package domain

import "time"

type RentalRequestStatus string

const (
	RentalRequestStatusPending   RentalRequestStatus = "PENDING"
	RentalRequestStatusApproved  RentalRequestStatus = "APPROVED"
	RentalRequestStatusRejected  RentalRequestStatus = "REJECTED"
	RentalRequestStatusCancelled RentalRequestStatus = "CANCELLED"
	RentalRequestStatusExpired   RentalRequestStatus = "EXPIRED"
	RentalRequestStatusActive    RentalRequestStatus = "ACTIVE"
	RentalRequestStatusCompleted RentalRequestStatus = "COMPLETED"
)

// RentalRequest is a stylist's request to rent a chair for a date range.
type RentalRequest struct {
	ID         int32  `json:"id"`
	ChairID    int32  `json:"chair_id"`
	PropertyID int32  `json:"property_id"`
	StylistID  int32  `json:"stylist_id"`
	OwnerID    int32  `json:"owner_id"`
	StartDate  string `json:"start_date"` // yyyy-mm-dd
	EndDate    string `json:"end_date"`   // yyyy-mm-dd
	// Rent snapshot fields captured from the chair at request time.
	// Total is computed from these, not from live chair prices.
	DailyRentCents   int32 `json:"daily_rent_cents"`
	WeeklyRentCents  int32 `json:"weekly_rent_cents"`
	MonthlyRentCents int32 `json:"monthly_rent_cents"`
	TotalCents       int32 `json:"total_cents"`

	Status       RentalRequestStatus `json:"status"`
	Message      string              `json:"message,omitempty"`
	DecisionNote string              `json:"decision_note,omitempty"`
	CreatedOn    time.Time           `json:"created_on"`
	UpdatedOn    time.Time           `json:"updated_on"`
}
