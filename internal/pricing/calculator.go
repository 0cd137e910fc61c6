// Package pricing computes booking costs from a date range and a daily rate.
// All arithmetic is fixed-point decimal; callers are responsible for input
// validation.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the cost breakdown for a booking.
type Quote struct {
	NumberOfDays int
	Subtotal     decimal.Decimal
	TotalCost    decimal.Decimal
}

// RentalDays returns the number of billable days between start and end:
// whole days, floored, with a minimum of 1. A same-day or inverted span
// still bills one day; this lenient policy is intentional.
func RentalDays(start, end time.Time) int {
	days := int(end.Sub(start) / (24 * time.Hour))
	if days < 1 {
		return 1
	}
	return days
}

// Calculate returns the quote for the given date range, daily rate and
// optional insurance / additional charge amounts.
func Calculate(start, end time.Time, dailyRate, insurance, additional decimal.Decimal) Quote {
	days := RentalDays(start, end)
	subtotal := dailyRate.Mul(decimal.NewFromInt(int64(days)))
	return Quote{
		NumberOfDays: days,
		Subtotal:     subtotal,
		TotalCost:    subtotal.Add(insurance).Add(additional),
	}
}
