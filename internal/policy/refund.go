package policy

import (
	"fmt"
	"time"
)

// Cancellation refund tiers, keyed by hours remaining until the
// scheduled appointment start.
const (
	FullRefundHours    = 24
	LargeRefundHours   = 12
	PartialRefundHours = 2
)

// RefundPercent returns the percentage of the escrow amount returned to
// the customer when cancelling with the given time remaining before the
// appointment. Boundaries are inclusive: exactly 24h still earns 100%.
func RefundPercent(until time.Duration) int32 {
	hours := until.Hours()
	switch {
	case hours >= FullRefundHours:
		return 100
	case hours >= LargeRefundHours:
		return 75
	case hours >= PartialRefundHours:
		return 50
	default:
		return 0
	}
}

// CancellationSplit divides an escrowed amount between the customer
// refund and the stylist forfeit. The refund is rounded down so the two
// parts always sum to the original amount.
func CancellationSplit(amountCents int32, until time.Duration) (refundCents, forfeitCents int32) {
	pct := RefundPercent(until)
	// 64-bit intermediate: amount * pct must not wrap before the divide.
	refundCents = int32(int64(amountCents) * int64(pct) / 100)
	forfeitCents = amountCents - refundCents
	return refundCents, forfeitCents
}

// FormatCents renders an integer cent amount as a display currency string.
func FormatCents(cents int32) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
