package service

import (
	"context"
	"time"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository"
)

// AvailabilityService answers date-range availability questions for cars.
// All operations are read-only.
type AvailabilityService struct {
	bookingRepo      repository.BookingRepository
	availabilityRepo repository.AvailabilityRepository
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(
	bookingRepo repository.BookingRepository,
	availabilityRepo repository.AvailabilityRepository,
) *AvailabilityService {
	return &AvailabilityService{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
	}
}

// IsCarAvailable reports whether no CONFIRMED or ACTIVE booking for the car
// overlaps the candidate [start, end) interval. PENDING and CANCELLED
// bookings never block availability.
func (s *AvailabilityService) IsCarAvailable(ctx context.Context, carID string, start, end time.Time) (bool, error) {
	blocking, err := s.bookingRepo.ListBlocking(ctx, carID, start, end)
	if err != nil {
		return false, err
	}
	return len(blocking) == 0, nil
}

// AvailableDates returns the dates within the next `days` days that are
// flagged available for the car and not covered by a blocking booking.
func (s *AvailabilityService) AvailableDates(ctx context.Context, carID string, days int) ([]time.Time, error) {
	if carID == "" {
		return nil, ErrInvalidCarID
	}

	from := time.Now().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, days)

	dates, err := s.availabilityRepo.ListAvailableDates(ctx, carID, from, to)
	if err != nil {
		return nil, err
	}

	blocking, err := s.bookingRepo.ListBlocking(ctx, carID, from, to)
	if err != nil {
		return nil, err
	}
	if len(blocking) == 0 {
		return dates, nil
	}

	open := dates[:0]
	for _, date := range dates {
		blocked := false
		for _, b := range blocking {
			if b.Overlaps(date, date.AddDate(0, 0, 1)) {
				blocked = true
				break
			}
		}
		if !blocked {
			open = append(open, date)
		}
	}
	return open, nil
}
