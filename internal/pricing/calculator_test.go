package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"five whole days", date(2026, 1, 10), date(2026, 1, 15), 5},
		{"single day", date(2026, 1, 10), date(2026, 1, 11), 1},
		{"same day bills one", date(2026, 1, 10), date(2026, 1, 10), 1},
		{"partial day floors", date(2026, 1, 10), date(2026, 1, 12).Add(6 * time.Hour), 2},
		{"under one day bills one", date(2026, 1, 10), date(2026, 1, 10).Add(6 * time.Hour), 1},
		{"inverted range bills one", date(2026, 1, 15), date(2026, 1, 10), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RentalDays(tc.start, tc.end); got != tc.want {
				t.Errorf("RentalDays(%v, %v) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	rate := decimal.NewFromInt(50)

	quote := Calculate(date(2026, 1, 10), date(2026, 1, 15), rate, decimal.NewFromInt(25), decimal.NewFromInt(10))

	if quote.NumberOfDays != 5 {
		t.Errorf("expected 5 days, got %d", quote.NumberOfDays)
	}
	if !quote.Subtotal.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected subtotal 250, got %s", quote.Subtotal)
	}
	if !quote.TotalCost.Equal(decimal.NewFromInt(285)) {
		t.Errorf("expected total 285, got %s", quote.TotalCost)
	}
}

func TestCalculate_ZeroExtras(t *testing.T) {
	t.Parallel()

	quote := Calculate(date(2026, 1, 10), date(2026, 1, 12), decimal.NewFromFloat(49.99), decimal.Zero, decimal.Zero)

	if !quote.TotalCost.Equal(decimal.NewFromFloat(99.98)) {
		t.Errorf("expected total 99.98, got %s", quote.TotalCost)
	}
	if !quote.TotalCost.Equal(quote.Subtotal) {
		t.Error("total must equal subtotal when extras are zero")
	}
}
