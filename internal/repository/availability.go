package repository

import (
	"context"
	"time"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
)

// AvailabilityRepository defines the persistence operations for per-date
// availability flags.
type AvailabilityRepository interface {
	// Upsert inserts or updates the flag for (car, date).
	Upsert(ctx context.Context, availability *domain.Availability) error

	// ListAvailableDates returns the dates in [from, to] flagged available
	// for the car, in ascending order.
	ListAvailableDates(ctx context.Context, carID string, from, to time.Time) ([]time.Time, error)
}
