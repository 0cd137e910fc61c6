package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
)

// CustomerRepository defines the persistence operations for customers.
type CustomerRepository interface {
	// Create persists a new customer.
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID retrieves a customer by ID.
	GetByID(ctx context.Context, id string) (*domain.Customer, error)

	// GetByEmail retrieves a customer by account email.
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// Update updates an existing customer.
	Update(ctx context.Context, customer *domain.Customer) error

	// AddRentalTotals increments the rental count by one and accumulates
	// the given amount onto total spent.
	AddRentalTotals(ctx context.Context, id string, amount decimal.Decimal) error

	// SetOdooID stores the external ERP identifier on the customer.
	SetOdooID(ctx context.Context, id string, odooID int64) error

	// Count returns the total number of customers and how many carry an ERP link.
	Count(ctx context.Context) (total, synced int, err error)
}
