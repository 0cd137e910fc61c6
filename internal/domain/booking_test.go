package domain

import (
	"testing"
	"time"
)

func TestBookingStatus_Transitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusActive, false},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusConfirmed, BookingStatusActive, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusCompleted, false},
		{BookingStatusActive, BookingStatusCompleted, true},
		{BookingStatusActive, BookingStatusCancelled, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	t.Parallel()

	for _, status := range []BookingStatus{BookingStatusCompleted, BookingStatusCancelled} {
		if !status.IsTerminal() {
			t.Errorf("%s should be terminal", status)
		}
	}
	for _, status := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusActive} {
		if status.IsTerminal() {
			t.Errorf("%s should not be terminal", status)
		}
	}
	if BookingStatus("BOGUS").IsTerminal() {
		t.Error("unknown status must not be terminal")
	}
}

func TestBooking_Overlaps(t *testing.T) {
	t.Parallel()

	booking := &Booking{
		StartDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	at := func(d int) time.Time { return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC) }

	if !booking.Overlaps(at(12), at(18)) {
		t.Error("partial overlap must be detected")
	}
	if !booking.Overlaps(at(8), at(20)) {
		t.Error("containing interval must be detected")
	}
	if booking.Overlaps(at(15), at(20)) {
		t.Error("interval starting at the end must not overlap")
	}
	if booking.Overlaps(at(5), at(10)) {
		t.Error("interval ending at the start must not overlap")
	}
}

func TestBooking_BlocksOnlyConfirmedAndActive(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	blocking := map[BookingStatus]bool{
		BookingStatusPending:   false,
		BookingStatusConfirmed: true,
		BookingStatusActive:    true,
		BookingStatusCompleted: false,
		BookingStatusCancelled: false,
	}

	for status, want := range blocking {
		booking := &Booking{Status: status, StartDate: start, EndDate: end}
		if got := booking.Blocks(start, end); got != want {
			t.Errorf("%s: Blocks = %v, want %v", status, got, want)
		}
	}
}
