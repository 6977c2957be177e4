package domain

import "time"

type LedgerEntryType string

const (
	LedgerEntryTypeEscrowHold    LedgerEntryType = "ESCROW_HOLD"
	LedgerEntryTypeEscrowRelease LedgerEntryType = "ESCROW_RELEASE"
	LedgerEntryTypeRefund        LedgerEntryType = "REFUND"
	LedgerEntryTypeTip           LedgerEntryType = "TIP"
	LedgerEntryTypeRentCharge    LedgerEntryType = "RENT_CHARGE"
	LedgerEntryTypeRentPayout    LedgerEntryType = "RENT_PAYOUT"
)

// LedgerEntry records a single custodial money movement. Amounts are
// signed cents from the perspective of the user the entry belongs to.
type LedgerEntry struct {
	ID              int32           `json:"id"`
	UserID          int32           `json:"user_id"`
	BookingID       *int32          `json:"booking_id,omitempty"`
	RentalRequestID *int32          `json:"rental_request_id,omitempty"`
	AmountCents     int32           `json:"amount_cents"`
	Type            LedgerEntryType `json:"type"`
	Description     string          `json:"description"`
	CreatedOn       time.Time       `json:"created_on"`
}

type LedgerSummary struct {
	BalanceCents int32 `json:"balance_cents"`
	HeldCents    int32 `json:"held_cents"`
	EarnedCents  int32 `json:"earned_cents"`
}
