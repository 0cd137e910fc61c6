package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository"
)

// CarRepository is a PostgreSQL implementation of repository.CarRepository.
type CarRepository struct {
	q Querier
}

// NewCarRepository creates a new PostgreSQL car repository.
func NewCarRepository(db *sql.DB) *CarRepository {
	return &CarRepository{q: db}
}

// NewCarRepositoryWithTx creates a car repository using a transaction.
func NewCarRepositoryWithTx(tx *sql.Tx) *CarRepository {
	return &CarRepository{q: tx}
}

const carColumns = `id, registration_number, make, model, year, color, mileage, fuel_type, transmission, seats, daily_rate, status, description, odoo_id, created_at, updated_at`

// Create persists a new car.
func (r *CarRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `
		INSERT INTO cars (` + carColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.q.ExecContext(ctx, query,
		car.ID,
		car.RegistrationNumber,
		car.Make,
		car.Model,
		car.Year,
		car.Color,
		car.Mileage,
		car.FuelType,
		car.Transmission,
		car.Seats,
		car.DailyRate,
		car.Status,
		car.Description,
		nullInt64(car.OdooID),
		car.CreatedAt,
		car.UpdatedAt,
	)
	return mapError(err)
}

// GetByID retrieves a car by ID.
func (r *CarRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByRegistration retrieves a car by registration number.
func (r *CarRepository) GetByRegistration(ctx context.Context, registration string) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE registration_number = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, registration))
}

// List retrieves cars matching the filter.
func (r *CarRepository) List(ctx context.Context, filter repository.CarFilter) ([]*domain.Car, error) {
	var (
		conditions []string
		args       []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.FuelType != "" {
		add("fuel_type = $%d", filter.FuelType)
	}
	if filter.Transmission != "" {
		add("transmission = $%d", filter.Transmission)
	}
	if filter.Seats > 0 {
		add("seats = $%d", filter.Seats)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(make ILIKE $%d OR model ILIKE $%d OR registration_number ILIKE $%d)", n, n, n))
	}

	query := `SELECT ` + carColumns + ` FROM cars`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + orderColumn(filter.OrderBy)
	if filter.Descending {
		query += " DESC"
	}
	query += " LIMIT 100"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []*domain.Car
	for rows.Next() {
		car, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

// orderColumn whitelists orderable columns; anything else sorts by creation time.
func orderColumn(orderBy string) string {
	switch orderBy {
	case "daily_rate", "year":
		return orderBy
	default:
		return "created_at"
	}
}

// Update updates an existing car.
func (r *CarRepository) Update(ctx context.Context, car *domain.Car) error {
	query := `
		UPDATE cars
		SET registration_number = $1, make = $2, model = $3, year = $4, color = $5, mileage = $6,
		    fuel_type = $7, transmission = $8, seats = $9, daily_rate = $10, status = $11,
		    description = $12, odoo_id = $13, updated_at = $14
		WHERE id = $15
	`

	result, err := r.q.ExecContext(ctx, query,
		car.RegistrationNumber,
		car.Make,
		car.Model,
		car.Year,
		car.Color,
		car.Mileage,
		car.FuelType,
		car.Transmission,
		car.Seats,
		car.DailyRate,
		car.Status,
		car.Description,
		nullInt64(car.OdooID),
		car.UpdatedAt,
		car.ID,
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

// Delete removes a car. The bookings foreign key is ON DELETE RESTRICT, so
// a referenced car surfaces as ErrCarInUse.
func (r *CarRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
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

// Count returns the total number of cars and how many carry an ERP link.
func (r *CarRepository) Count(ctx context.Context) (int, int, error) {
	var total, synced int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(odoo_id) FROM cars`,
	).Scan(&total, &synced)
	return total, synced, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *CarRepository) scanOne(row *sql.Row) (*domain.Car, error) {
	car, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return car, nil
}

func (r *CarRepository) scanRow(row rowScanner) (*domain.Car, error) {
	var car domain.Car
	var odooID sql.NullInt64

	err := row.Scan(
		&car.ID,
		&car.RegistrationNumber,
		&car.Make,
		&car.Model,
		&car.Year,
		&car.Color,
		&car.Mileage,
		&car.FuelType,
		&car.Transmission,
		&car.Seats,
		&car.DailyRate,
		&car.Status,
		&car.Description,
		&odooID,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if odooID.Valid {
		car.OdooID = odooID.Int64
	}
	return &car, nil
}

// nullInt64 maps the 0 = unset convention onto a nullable column.
func nullInt64(v int64) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: v, Valid: true}
}
