package repository

import (
	"context"
	"time"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
// Bookings are never deleted, so there is no Delete.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetByReference retrieves a booking by its reference string.
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)

	// ListByCustomer retrieves a customer's bookings, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error)

	// ListBlocking retrieves the CONFIRMED and ACTIVE bookings for a car
	// whose [start, end) interval intersects the candidate interval.
	ListBlocking(ctx context.Context, carID string, start, end time.Time) ([]*domain.Booking, error)

	// Update updates an existing booking.
	Update(ctx context.Context, booking *domain.Booking) error

	// SetOdooID stores the external ERP identifier on the booking.
	SetOdooID(ctx context.Context, id string, odooID int64) error

	// Count returns the total number of bookings and how many carry an ERP link.
	Count(ctx context.Context) (total, synced int, err error)
}
