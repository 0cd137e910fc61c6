package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/service"
)

// ──────────────────────────────────────────────
// AVAILABILITY
// ──────────────────────────────────────────────

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAvailability_OverlappingConfirmedBookingBlocks(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	availabilityRepo := NewMockAvailabilityRepository()
	availabilityService := service.NewAvailabilityService(bookingRepo, availabilityRepo)

	bookingRepo.AddBooking(&domain.Booking{
		ID:        "booking-1",
		CarID:     "car-1",
		Status:    domain.BookingStatusConfirmed,
		StartDate: day(2026, time.January, 10),
		EndDate:   day(2026, time.January, 15),
	})

	// Jan 12–18 overlaps Jan 10–15.
	available, err := availabilityService.IsCarAvailable(context.Background(), "car-1", day(2026, time.January, 12), day(2026, time.January, 18))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if available {
		t.Error("expected car to be unavailable for overlapping interval")
	}
}

func TestAvailability_TouchingIntervalsDoNotOverlap(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	availabilityRepo := NewMockAvailabilityRepository()
	availabilityService := service.NewAvailabilityService(bookingRepo, availabilityRepo)

	bookingRepo.AddBooking(&domain.Booking{
		ID:        "booking-1",
		CarID:     "car-1",
		Status:    domain.BookingStatusConfirmed,
		StartDate: day(2026, time.January, 10),
		EndDate:   day(2026, time.January, 15),
	})

	// Half-open intervals: a rental starting on the return day is allowed.
	available, err := availabilityService.IsCarAvailable(context.Background(), "car-1", day(2026, time.January, 15), day(2026, time.January, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Error("expected car to be available when interval starts at existing end")
	}

	// And one ending on the pickup day too.
	available, err = availabilityService.IsCarAvailable(context.Background(), "car-1", day(2026, time.January, 5), day(2026, time.January, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Error("expected car to be available when interval ends at existing start")
	}
}

func TestAvailability_PendingAndCancelledDoNotBlock(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	availabilityRepo := NewMockAvailabilityRepository()
	availabilityService := service.NewAvailabilityService(bookingRepo, availabilityRepo)

	for i, status := range []domain.BookingStatus{domain.BookingStatusPending, domain.BookingStatusCancelled, domain.BookingStatusCompleted} {
		bookingRepo.AddBooking(&domain.Booking{
			ID:        string(rune('a' + i)),
			CarID:     "car-1",
			Status:    status,
			StartDate: day(2026, time.January, 10),
			EndDate:   day(2026, time.January, 15),
		})
	}

	available, err := availabilityService.IsCarAvailable(context.Background(), "car-1", day(2026, time.January, 11), day(2026, time.January, 13))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Error("only CONFIRMED and ACTIVE bookings should block availability")
	}
}

func TestAvailability_OtherCarDoesNotBlock(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	availabilityRepo := NewMockAvailabilityRepository()
	availabilityService := service.NewAvailabilityService(bookingRepo, availabilityRepo)

	bookingRepo.AddBooking(&domain.Booking{
		ID:        "booking-1",
		CarID:     "car-2",
		Status:    domain.BookingStatusActive,
		StartDate: day(2026, time.January, 10),
		EndDate:   day(2026, time.January, 15),
	})

	available, err := availabilityService.IsCarAvailable(context.Background(), "car-1", day(2026, time.January, 11), day(2026, time.January, 13))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Error("a booking on another car must not block this car")
	}
}

func TestAvailability_AvailableDatesExcludeBlockedOnes(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	availabilityRepo := NewMockAvailabilityRepository()
	availabilityService := service.NewAvailabilityService(bookingRepo, availabilityRepo)

	today := time.Now().Truncate(24 * time.Hour)
	dates := []time.Time{today.AddDate(0, 0, 1), today.AddDate(0, 0, 2), today.AddDate(0, 0, 3)}
	availabilityRepo.SetAvailableDates("car-1", dates)

	// An active rental covers the middle date.
	bookingRepo.AddBooking(&domain.Booking{
		ID:        "booking-1",
		CarID:     "car-1",
		Status:    domain.BookingStatusActive,
		StartDate: dates[1],
		EndDate:   dates[1].AddDate(0, 0, 1),
	})

	open, err := availabilityService.AvailableDates(context.Background(), "car-1", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("expected 2 open dates, got %d", len(open))
	}
	if !open[0].Equal(dates[0]) || !open[1].Equal(dates[2]) {
		t.Errorf("expected the blocked date to be filtered out, got %v", open)
	}
}

func TestAvailability_CreateRejectsOverlap(t *testing.T) {
	t.Parallel()

	bookingService, bookingRepo, customerRepo, carRepo, _ := newBookingFixture()
	addCustomerAndCar(customerRepo, carRepo)

	bookingRepo.AddBooking(&domain.Booking{
		ID:        "existing",
		CarID:     "car-1",
		Status:    domain.BookingStatusConfirmed,
		StartDate: day(2026, time.January, 10),
		EndDate:   day(2026, time.January, 15),
		TotalCost: decimal.NewFromInt(250),
	})

	_, err := bookingService.Create(context.Background(), service.CreateBookingRequest{
		CustomerID: "customer-1",
		CarID:      "car-1",
		StartDate:  day(2026, time.January, 12),
		EndDate:    day(2026, time.January, 18),
	})
	if !errors.Is(err, service.ErrCarUnavailable) {
		t.Errorf("expected ErrCarUnavailable, got %v", err)
	}
}
