package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `id, reference, customer_id, car_id, start_date, end_date, pickup_location, return_location, daily_rate, number_of_days, subtotal, insurance_cost, additional_charges, total_cost, status, payment_status, notes, odoo_id, created_at, confirmed_at, completed_at`

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.Reference,
		booking.CustomerID,
		booking.CarID,
		booking.StartDate,
		booking.EndDate,
		booking.PickupLocation,
		booking.ReturnLocation,
		booking.DailyRate,
		booking.NumberOfDays,
		booking.Subtotal,
		booking.InsuranceCost,
		booking.AdditionalCharges,
		booking.TotalCost,
		booking.Status,
		booking.PaymentStatus,
		booking.Notes,
		nullInt64(booking.OdooID),
		booking.CreatedAt,
		nullTime(booking.ConfirmedAt),
		nullTime(booking.CompletedAt),
	)
	return mapError(err)
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByReference retrieves a booking by its reference string.
func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, reference))
}

// ListByCustomer retrieves a customer's bookings, newest first.
func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE customer_id = $1 ORDER BY created_at DESC LIMIT 100`
	return r.list(ctx, query, customerID)
}

// ListBlocking retrieves the CONFIRMED and ACTIVE bookings for a car whose
// [start, end) interval intersects the candidate interval.
func (r *BookingRepository) ListBlocking(ctx context.Context, carID string, start, end time.Time) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE car_id = $1
		  AND status IN ($2, $3)
		  AND start_date < $4
		  AND end_date > $5
		ORDER BY start_date
	`
	return r.list(ctx, query, carID, domain.BookingStatusConfirmed, domain.BookingStatusActive, end, start)
}

// Update updates an existing booking.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, payment_status = $2, notes = $3, odoo_id = $4, confirmed_at = $5, completed_at = $6
		WHERE id = $7
	`

	result, err := r.q.ExecContext(ctx, query,
		booking.Status,
		booking.PaymentStatus,
		booking.Notes,
		nullInt64(booking.OdooID),
		nullTime(booking.ConfirmedAt),
		nullTime(booking.CompletedAt),
		booking.ID,
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

// SetOdooID stores the external ERP identifier on the booking.
func (r *BookingRepository) SetOdooID(ctx context.Context, id string, odooID int64) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE bookings SET odoo_id = $1 WHERE id = $2`,
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

// Count returns the total number of bookings and how many carry an ERP link.
func (r *BookingRepository) Count(ctx context.Context) (int, int, error) {
	var total, synced int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(odoo_id) FROM bookings`,
	).Scan(&total, &synced)
	return total, synced, err
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) scanOne(row *sql.Row) (*domain.Booking, error) {
	booking, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) scanRow(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var odooID sql.NullInt64
	var confirmedAt, completedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.CustomerID,
		&booking.CarID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.PickupLocation,
		&booking.ReturnLocation,
		&booking.DailyRate,
		&booking.NumberOfDays,
		&booking.Subtotal,
		&booking.InsuranceCost,
		&booking.AdditionalCharges,
		&booking.TotalCost,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.Notes,
		&odooID,
		&booking.CreatedAt,
		&confirmedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if odooID.Valid {
		booking.OdooID = odooID.Int64
	}
	if confirmedAt.Valid {
		booking.ConfirmedAt = confirmedAt.Time
	}
	if completedAt.Valid {
		booking.CompletedAt = completedAt.Time
	}
	return &booking, nil
}

// nullTime maps the zero-time = unset convention onto a nullable column.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
