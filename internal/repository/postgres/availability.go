package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
)

// AvailabilityRepository is a PostgreSQL implementation of
// repository.AvailabilityRepository.
type AvailabilityRepository struct {
	q Querier
}

// NewAvailabilityRepository creates a new PostgreSQL availability repository.
func NewAvailabilityRepository(db *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{q: db}
}

// Upsert inserts or updates the flag for (car, date).
func (r *AvailabilityRepository) Upsert(ctx context.Context, availability *domain.Availability) error {
	query := `
		INSERT INTO availabilities (id, car_id, date, is_available)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (car_id, date) DO UPDATE SET is_available = EXCLUDED.is_available
	`

	_, err := r.q.ExecContext(ctx, query,
		availability.ID,
		availability.CarID,
		availability.Date,
		availability.IsAvailable,
	)
	return mapError(err)
}

// ListAvailableDates returns the dates in [from, to] flagged available for
// the car, in ascending order.
func (r *AvailabilityRepository) ListAvailableDates(ctx context.Context, carID string, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT date FROM availabilities
		WHERE car_id = $1 AND date BETWEEN $2 AND $3 AND is_available
		ORDER BY date
	`

	rows, err := r.q.QueryContext(ctx, query, carID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}
