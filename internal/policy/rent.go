package policy

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
)

// Date is a plain calendar date, no time component.
type Date struct {
	Year  int
	Month int
	Day   int
}

// DateSpan is a calendar distance where both endpoints are included.
type DateSpan struct {
	Months int
	Days   int
}

// RentBreakdown itemizes a chair rent quote.
type RentBreakdown struct {
	Months      int
	Weeks       int
	Days        int
	MonthsCents int32
	WeeksCents  int32
	DaysCents   int32
	TotalCents  int32
}

// ParseDate converts a yyyy-mm-dd string into a Date.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year: %v", err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month: %v", err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day: %v", err)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}
	if day < 1 || day > 31 {
		return Date{}, fmt.Errorf("day must be between 1 and 31")
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	if month == 2 {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}
	return 31
}

// SpanBetween computes the inclusive calendar span from start to end.
func SpanBetween(start, end Date) (DateSpan, error) {
	if end.Year < start.Year ||
		(end.Year == start.Year && end.Month < start.Month) ||
		(end.Year == start.Year && end.Month == start.Month && end.Day < start.Day) {
		return DateSpan{}, domain.ErrInvalidDateRange
	}

	years := end.Year - start.Year
	months := end.Month - start.Month
	days := end.Day - start.Day + 1 // +1 to include both ends

	if days < 0 {
		months--
		prevMonth := end.Month - 1
		prevYear := end.Year
		if prevMonth < 1 {
			prevMonth = 12
			prevYear--
		}
		days += DaysInMonth(prevYear, prevMonth)
	}
	if months < 0 {
		years--
		months += 12
	}
	months += 12 * years

	return DateSpan{Months: months, Days: days}, nil
}

// ChairRent quotes the total rent for a chair over an inclusive date
// range using tiered pricing: full months at the monthly rate, then full
// weeks at the weekly rate, then remaining days at the daily rate.
func ChairRent(startDate, endDate string, chair *domain.Chair) (RentBreakdown, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return RentBreakdown{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return RentBreakdown{}, fmt.Errorf("invalid end date: %w", err)
	}
	span, err := SpanBetween(start, end)
	if err != nil {
		return RentBreakdown{}, err
	}

	const daysPerWeek = 7
	weeks := span.Days / daysPerWeek
	days := span.Days % daysPerWeek

	// 64-bit intermediates keep long spans at high rates from wrapping.
	monthsCents := int64(span.Months) * int64(chair.MonthlyRentCents)
	weeksCents := int64(weeks) * int64(chair.WeeklyRentCents)
	daysCents := int64(days) * int64(chair.DailyRentCents)
	total := monthsCents + weeksCents + daysCents
	if total > math.MaxInt32 {
		return RentBreakdown{}, fmt.Errorf("rent quote exceeds supported amount")
	}

	bd := RentBreakdown{
		Months:      span.Months,
		Weeks:       weeks,
		Days:        days,
		MonthsCents: int32(monthsCents),
		WeeksCents:  int32(weeksCents),
		DaysCents:   int32(daysCents),
		TotalCents:  int32(total),
	}
	return bd, nil
}
