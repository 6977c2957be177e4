package domain

import "time"

type ChairStatus string

const (
	ChairStatusAvailable ChairStatus = "AVAILABLE"
	ChairStatusOccupied  ChairStatus = "OCCUPIED"
	ChairStatusUnlisted  ChairStatus = "UNLISTED"
)

// ApprovalMode controls how a chair owner handles incoming rental requests.
type ApprovalMode string

const (
	// ApprovalModeInstant approves any request immediately.
	ApprovalModeInstant ApprovalMode = "INSTANT"
	// ApprovalModeConditional auto-approves stylists with completed
	// booking history; everyone else falls back to manual review.
	ApprovalModeConditional ApprovalMode = "CONDITIONAL"
	// ApprovalModeManual leaves every request pending owner review.
	ApprovalModeManual ApprovalMode = "MANUAL"
)

type Property struct {
	ID        int32      `json:"id"`
	OwnerID   int32      `json:"owner_id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Metro     string     `json:"metro"`
	Amenities []string   `json:"amenities"`
	Active    bool       `json:"active"`
	Chairs    []Chair    `json:"chairs,omitempty"`
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
	DeletedOn *time.Time `json:"deleted_on,omitempty"`
}

type Chair struct {
	ID               int32        `json:"id"`
	PropertyID       int32        `json:"property_id"`
	Name             string       `json:"name"`
	DailyRentCents   int32        `json:"daily_rent_cents"`
	WeeklyRentCents  int32        `json:"weekly_rent_cents"`
	MonthlyRentCents int32        `json:"monthly_rent_cents"`
	ApprovalMode     ApprovalMode `json:"approval_mode"`
	Status           ChairStatus  `json:"status"`
	CreatedOn        time.Time    `json:"created_on"`
	UpdatedOn        time.Time    `json:"updated_on"`
}
