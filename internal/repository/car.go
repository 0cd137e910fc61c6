package repository

import (
	"context"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
)

// CarFilter narrows and orders car listings.
type CarFilter struct {
	FuelType     domain.FuelType
	Transmission domain.Transmission
	Seats        int
	Status       domain.CarStatus
	Search       string // Matches make, model or registration number.
	OrderBy      string // One of "daily_rate", "year", "created_at"; empty means created_at.
	Descending   bool
}

// CarRepository defines the persistence operations for cars.
type CarRepository interface {
	// Create persists a new car.
	Create(ctx context.Context, car *domain.Car) error

	// GetByID retrieves a car by ID.
	GetByID(ctx context.Context, id string) (*domain.Car, error)

	// GetByRegistration retrieves a car by registration number.
	GetByRegistration(ctx context.Context, registration string) (*domain.Car, error)

	// List retrieves cars matching the filter.
	List(ctx context.Context, filter CarFilter) ([]*domain.Car, error)

	// Update updates an existing car.
	Update(ctx context.Context, car *domain.Car) error

	// Delete removes a car. Returns ErrCarInUse while bookings reference it.
	Delete(ctx context.Context, id string) error

	// Count returns the total number of cars and how many carry an ERP link.
	Count(ctx context.Context) (total, synced int, err error)
}
