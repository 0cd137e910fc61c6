package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// bookingTransitions defines the allowed status transitions.
// COMPLETED and CANCELLED are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusActive, BookingStatusCancelled},
	BookingStatusActive:    {BookingStatusCompleted},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

// IsValid reports whether the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are allowed.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether a transition to the target status is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// PaymentStatus represents the payment state of a booking.
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "UNPAID"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusPartial  PaymentStatus = "PARTIAL"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Booking represents a car rental booking. Bookings are never deleted,
// only moved through the status lifecycle.
type Booking struct {
	ID                string
	Reference         string // Unique human-readable reference, assigned at creation.
	CustomerID        string
	CarID             string
	StartDate         time.Time
	EndDate           time.Time
	PickupLocation    string
	ReturnLocation    string
	DailyRate         decimal.Decimal // Snapshot of the car's rate at creation time.
	NumberOfDays      int
	Subtotal          decimal.Decimal
	InsuranceCost     decimal.Decimal
	AdditionalCharges decimal.Decimal
	TotalCost         decimal.Decimal
	Status            BookingStatus
	PaymentStatus     PaymentStatus
	Notes             string
	OdooID            int64 // 0 means not yet synced to the ERP.
	CreatedAt         time.Time
	ConfirmedAt       time.Time
	CompletedAt       time.Time
}

// Overlaps reports whether the booking's [start, end) interval intersects
// the candidate [start, end) interval.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartDate.Before(end) && b.EndDate.After(start)
}

// Blocks reports whether the booking makes its car unavailable for the
// candidate interval. Only CONFIRMED and ACTIVE bookings block availability.
func (b *Booking) Blocks(start, end time.Time) bool {
	if b.Status != BookingStatusConfirmed && b.Status != BookingStatusActive {
		return false
	}
	return b.Overlaps(start, end)
}
