package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository"
)

// CustomerRepository is a PostgreSQL implementation of repository.CustomerRepository.
type CustomerRepository struct {
	q Querier
}

// NewCustomerRepository creates a new PostgreSQL customer repository.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{q: db}
}

// NewCustomerRepositoryWithTx creates a customer repository using a transaction.
func NewCustomerRepositoryWithTx(tx *sql.Tx) *CustomerRepository {
	return &CustomerRepository{q: tx}
}

const customerColumns = `id, email, password_hash, full_name, phone, address, city, postal_code, country, license_number, license_expiry, total_rentals, total_spent, is_verified, odoo_id, created_at, updated_at`

// Create persists a new customer.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.q.ExecContext(ctx, query,
		customer.ID,
		customer.Email,
		customer.PasswordHash,
		customer.FullName,
		customer.Phone,
		customer.Address,
		customer.City,
		customer.PostalCode,
		customer.Country,
		customer.LicenseNumber,
		customer.LicenseExpiry,
		customer.TotalRentals,
		customer.TotalSpent,
		customer.IsVerified,
		nullInt64(customer.OdooID),
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	return mapError(err)
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scan(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a customer by account email.
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	return r.scan(r.q.QueryRowContext(ctx, query, email))
}

// Update updates an existing customer.
func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `
		UPDATE customers
		SET email = $1, full_name = $2, phone = $3, address = $4, city = $5, postal_code = $6,
		    country = $7, license_number = $8, license_expiry = $9, is_verified = $10,
		    odoo_id = $11, updated_at = $12
		WHERE id = $13
	`

	result, err := r.q.ExecContext(ctx, query,
		customer.Email,
		customer.FullName,
		customer.Phone,
		customer.Address,
		customer.City,
		customer.PostalCode,
		customer.Country,
		customer.LicenseNumber,
		customer.LicenseExpiry,
		customer.IsVerified,
		nullInt64(customer.OdooID),
		customer.UpdatedAt,
		customer.ID,
	)
	if err != nil {
		return mapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddRentalTotals increments the rental count and accumulates spend.
func (r *CustomerRepository) AddRentalTotals(ctx context.Context, id string, amount decimal.Decimal) error {
	query := `
		UPDATE customers
		SET total_rentals = total_rentals + 1, total_spent = total_spent + $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.ExecContext(ctx, query, amount, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetOdooID stores the external ERP identifier on the customer.
func (r *CustomerRepository) SetOdooID(ctx context.Context, id string, odooID int64) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE customers SET odoo_id = $1, updated_at = NOW() WHERE id = $2`,
		odooID, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Count returns the total number of customers and how many carry an ERP link.
func (r *CustomerRepository) Count(ctx context.Context) (int, int, error) {
	var total, synced int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(odoo_id) FROM customers`,
	).Scan(&total, &synced)
	return total, synced, err
}

func (r *CustomerRepository) scan(row *sql.Row) (*domain.Customer, error) {
	var customer domain.Customer
	var odooID sql.NullInt64

	err := row.Scan(
		&customer.ID,
		&customer.Email,
		&customer.PasswordHash,
		&customer.FullName,
		&customer.Phone,
		&customer.Address,
		&customer.City,
		&customer.PostalCode,
		&customer.Country,
		&customer.LicenseNumber,
		&customer.LicenseExpiry,
		&customer.TotalRentals,
		&customer.TotalSpent,
		&customer.IsVerified,
		&odooID,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if odooID.Valid {
		customer.OdooID = odooID.Int64
	}
	return &customer, nil
}
