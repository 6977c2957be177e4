package policy

import (
	"testing"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2026-01-15")
		assert.NoError(t, err)
		assert.Equal(t, 2026, date.Year)
		assert.Equal(t, 1, date.Month)
		assert.Equal(t, 15, date.Day)
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2026/01/15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date format")
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseDate("2026-13-15")
		assert.Error(t, err)
	})

	t.Run("Invalid day", func(t *testing.T) {
		_, err := ParseDate("2026-01-32")
		assert.Error(t, err)
	})
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    int
		expected int
	}{
		{2024, 2, 29}, // leap year
		{2026, 2, 28},
		{2026, 4, 30},
		{2026, 12, 31},
		{2000, 2, 29}, // divisible by 400
		{1900, 2, 28}, // divisible by 100 but not 400
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month))
	}
}

func TestSpanBetween(t *testing.T) {
	t.Run("Same day counts as one", func(t *testing.T) {
		span, err := SpanBetween(Date{2026, 3, 10}, Date{2026, 3, 10})
		assert.NoError(t, err)
		assert.Equal(t, DateSpan{Months: 0, Days: 1}, span)
	})

	t.Run("Inclusive week", func(t *testing.T) {
		span, err := SpanBetween(Date{2026, 3, 2}, Date{2026, 3, 8})
		assert.NoError(t, err)
		assert.Equal(t, DateSpan{Months: 0, Days: 7}, span)
	})

	t.Run("Month boundary borrow", func(t *testing.T) {
		span, err := SpanBetween(Date{2026, 1, 25}, Date{2026, 2, 3})
		assert.NoError(t, err)
		assert.Equal(t, DateSpan{Months: 0, Days: 10}, span)
	})

	t.Run("Full month plus days", func(t *testing.T) {
		span, err := SpanBetween(Date{2026, 1, 1}, Date{2026, 2, 5})
		assert.NoError(t, err)
		assert.Equal(t, 1, span.Months)
		assert.Equal(t, 5, span.Days)
	})

	t.Run("End before start", func(t *testing.T) {
		_, err := SpanBetween(Date{2026, 3, 10}, Date{2026, 3, 9})
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})
}

func TestChairRent(t *testing.T) {
	chair := &domain.Chair{
		DailyRentCents:   5000,
		WeeklyRentCents:  30000,
		MonthlyRentCents: 100000,
	}

	t.Run("Single day", func(t *testing.T) {
		bd, err := ChairRent("2026-03-10", "2026-03-10", chair)
		assert.NoError(t, err)
		assert.Equal(t, int32(5000), bd.TotalCents)
	})

	t.Run("One week exactly", func(t *testing.T) {
		bd, err := ChairRent("2026-03-02", "2026-03-08", chair)
		assert.NoError(t, err)
		assert.Equal(t, 1, bd.Weeks)
		assert.Equal(t, 0, bd.Days)
		assert.Equal(t, int32(30000), bd.TotalCents)
	})

	t.Run("Week and a half", func(t *testing.T) {
		bd, err := ChairRent("2026-03-02", "2026-03-11", chair)
		assert.NoError(t, err)
		assert.Equal(t, 1, bd.Weeks)
		assert.Equal(t, 3, bd.Days)
		assert.Equal(t, int32(30000+3*5000), bd.TotalCents)
	})

	t.Run("Month plus days", func(t *testing.T) {
		bd, err := ChairRent("2026-01-01", "2026-02-05", chair)
		assert.NoError(t, err)
		assert.Equal(t, 1, bd.Months)
		assert.Equal(t, int32(100000+5*5000), bd.TotalCents)
	})

	t.Run("Bad range", func(t *testing.T) {
		_, err := ChairRent("2026-03-10", "2026-03-01", chair)
		assert.Error(t, err)
	})

	t.Run("Quote over int32 is rejected", func(t *testing.T) {
		pricey := &domain.Chair{MonthlyRentCents: 2_000_000_000}
		_, err := ChairRent("2026-01-01", "2026-03-31", pricey)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds supported amount")
	})
}
