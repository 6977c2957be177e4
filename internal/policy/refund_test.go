package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefundPercent(t *testing.T) {
	tests := []struct {
		name     string
		until    time.Duration
		expected int32
	}{
		{"Well ahead", 72 * time.Hour, 100},
		{"Exactly 24h", 24 * time.Hour, 100},
		{"Just under 24h", 24*time.Hour - time.Minute, 75},
		{"Exactly 12h", 12 * time.Hour, 75},
		{"Just under 12h", 12*time.Hour - time.Minute, 50},
		{"Exactly 2h", 2 * time.Hour, 50},
		{"Just under 2h", 2*time.Hour - time.Minute, 0},
		{"Last minute", 5 * time.Minute, 0},
		{"Already started", -time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RefundPercent(tt.until))
		})
	}
}

func TestRefundPercent_Monotonic(t *testing.T) {
	// More notice never earns a smaller refund.
	prev := int32(0)
	for h := 0; h <= 48; h++ {
		pct := RefundPercent(time.Duration(h) * time.Hour)
		assert.GreaterOrEqual(t, pct, prev, "refund dropped at %dh", h)
		prev = pct
	}
}

func TestCancellationSplit(t *testing.T) {
	t.Run("Full refund", func(t *testing.T) {
		refund, forfeit := CancellationSplit(10000, 48*time.Hour)
		assert.Equal(t, int32(10000), refund)
		assert.Equal(t, int32(0), forfeit)
	})

	t.Run("75 percent rounds down", func(t *testing.T) {
		refund, forfeit := CancellationSplit(9999, 13*time.Hour)
		assert.Equal(t, int32(7499), refund)
		assert.Equal(t, int32(2500), forfeit)
	})

	t.Run("Half refund", func(t *testing.T) {
		refund, forfeit := CancellationSplit(5000, 3*time.Hour)
		assert.Equal(t, int32(2500), refund)
		assert.Equal(t, int32(2500), forfeit)
	})

	t.Run("No refund inside 2h", func(t *testing.T) {
		refund, forfeit := CancellationSplit(5000, time.Hour)
		assert.Equal(t, int32(0), refund)
		assert.Equal(t, int32(5000), forfeit)
	})

	t.Run("Large escrow does not wrap", func(t *testing.T) {
		// 2,000,000,000 * 75 overflows int32; the split must stay exact.
		refund, forfeit := CancellationSplit(2_000_000_000, 13*time.Hour)
		assert.Equal(t, int32(1_500_000_000), refund)
		assert.Equal(t, int32(500_000_000), forfeit)
	})

	t.Run("Parts always sum to amount", func(t *testing.T) {
		amounts := []int32{1, 99, 100, 101, 9999, 123457}
		durations := []time.Duration{0, time.Hour, 2 * time.Hour, 11 * time.Hour, 12 * time.Hour, 25 * time.Hour}
		for _, amt := range amounts {
			for _, d := range durations {
				refund, forfeit := CancellationSplit(amt, d)
				assert.Equal(t, amt, refund+forfeit)
				assert.GreaterOrEqual(t, refund, int32(0))
				assert.GreaterOrEqual(t, forfeit, int32(0))
			}
		}
	})
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$12.34", FormatCents(1234))
	assert.Equal(t, "$0.00", FormatCents(0))
	assert.Equal(t, "$0.05", FormatCents(5))
	assert.Equal(t, "$100.00", FormatCents(10000))
	assert.Equal(t, "-$0.05", FormatCents(-5))
	assert.Equal(t, "-$12.34", FormatCents(-1234))
}
