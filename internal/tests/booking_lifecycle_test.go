package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/service"
)

// ──────────────────────────────────────────────
// BOOKING LIFECYCLE
// ──────────────────────────────────────────────

func newBookingFixture() (*service.BookingService, *MockBookingRepository, *MockCustomerRepository, *MockCarRepository, *MockLockStore) {
	bookingRepo := NewMockBookingRepository()
	customerRepo := NewMockCustomerRepository()
	carRepo := NewMockCarRepository()
	availabilityRepo := NewMockAvailabilityRepository()
	lockStore := NewMockLockStore()

	availabilityService := service.NewAvailabilityService(bookingRepo, availabilityRepo)
	bookingService := service.NewBookingService(nil, bookingRepo, customerRepo, carRepo, availabilityService, lockStore, nil)

	return bookingService, bookingRepo, customerRepo, carRepo, lockStore
}

func addCustomerAndCar(customerRepo *MockCustomerRepository, carRepo *MockCarRepository) {
	customerRepo.AddCustomer(&domain.Customer{
		ID:            "customer-1",
		Email:         "alice@example.com",
		LicenseNumber: "DL-001",
		LicenseExpiry: time.Now().AddDate(2, 0, 0),
	})
	carRepo.AddCar(&domain.Car{
		ID:                 "car-1",
		RegistrationNumber: "AB-123-CD",
		Make:               "Renault",
		Model:              "Clio",
		Status:             domain.CarStatusAvailable,
		DailyRate:          decimal.NewFromInt(50),
	})
}

func TestBooking_Create_PendingWithSnapshotPricing(t *testing.T) {
	t.Parallel()

	bookingService, _, customerRepo, carRepo, lockStore := newBookingFixture()
	addCustomerAndCar(customerRepo, carRepo)

	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	booking, err := bookingService.Create(context.Background(), service.CreateBookingRequest{
		CustomerID:    "customer-1",
		CarID:         "car-1",
		StartDate:     start,
		EndDate:       end,
		InsuranceCost: decimal.NewFromInt(25),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != domain.BookingStatusPending {
		t.Errorf("expected status %s, got %s", domain.BookingStatusPending, booking.Status)
	}
	if booking.PaymentStatus != domain.PaymentStatusUnpaid {
		t.Errorf("expected payment status %s, got %s", domain.PaymentStatusUnpaid, booking.PaymentStatus)
	}
	if booking.NumberOfDays != 5 {
		t.Errorf("expected 5 days, got %d", booking.NumberOfDays)
	}
	// 5 days x 50 + 25 insurance
	if !booking.TotalCost.Equal(decimal.NewFromInt(275)) {
		t.Errorf("expected total 275, got %s", booking.TotalCost)
	}
	if !booking.DailyRate.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected daily rate snapshot 50, got %s", booking.DailyRate)
	}

	if !strings.HasPrefix(booking.Reference, "BK") || len(booking.Reference) != 10 {
		t.Errorf("unexpected reference format: %q", booking.Reference)
	}

	// The lock must be acquired and released around the insert.
	if lockStore.AcquireCallCount != 1 {
		t.Errorf("expected 1 lock acquire, got %d", lockStore.AcquireCallCount)
	}
	if lockStore.ReleaseCallCount != 1 {
		t.Errorf("expected 1 lock release, got %d", lockStore.ReleaseCallCount)
	}
}

func TestBooking_Create_InvalidDateRange(t *testing.T) {
	t.Parallel()

	bookingService, _, customerRepo, carRepo, _ := newBookingFixture()
	addCustomerAndCar(customerRepo, carRepo)

	day := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	// end == start is rejected
	_, err := bookingService.Create(context.Background(), service.CreateBookingRequest{
		CustomerID: "customer-1",
		CarID:      "car-1",
		StartDate:  day,
		EndDate:    day,
	})
	if !errors.Is(err, service.ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}

	// end before start is rejected
	_, err = bookingService.Create(context.Background(), service.CreateBookingRequest{
		CustomerID: "customer-1",
		CarID:      "car-1",
		StartDate:  day,
		EndDate:    day.AddDate(0, 0, -2),
	})
	if !errors.Is(err, service.ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestBooking_Create_ExpiredLicenseRejected(t *testing.T) {
	t.Parallel()

	bookingService, _, customerRepo, carRepo, _ := newBookingFixture()
	carRepo.AddCar(&domain.Car{
		ID:        "car-1",
		Status:    domain.CarStatusAvailable,
		DailyRate: decimal.NewFromInt(50),
	})
	customerRepo.AddCustomer(&domain.Customer{
		ID:            "customer-1",
		LicenseExpiry: time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	})

	// License expires mid-rental.
	_, err := bookingService.Create(context.Background(), service.CreateBookingRequest{
		CustomerID: "customer-1",
		CarID:      "car-1",
		StartDate:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, service.ErrLicenseExpired) {
		t.Errorf("expected ErrLicenseExpired, got %v", err)
	}
}

func TestBooking_Create_MaintenanceCarRejected(t *testing.T) {
	t.Parallel()

	bookingService, _, customerRepo, carRepo, _ := newBookingFixture()
	customerRepo.AddCustomer(&domain.Customer{
		ID:            "customer-1",
		LicenseExpiry: time.Now().AddDate(2, 0, 0),
	})
	carRepo.AddCar(&domain.Car{
		ID:        "car-1",
		Status:    domain.CarStatusMaintenance,
		DailyRate: decimal.NewFromInt(50),
	})

	_, err := bookingService.Create(context.Background(), service.CreateBookingRequest{
		CustomerID: "customer-1",
		CarID:      "car-1",
		StartDate:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, service.ErrCarNotBookable) {
		t.Errorf("expected ErrCarNotBookable, got %v", err)
	}
}

func TestBooking_Create_LockHeldByAnotherRequest(t *testing.T) {
	t.Parallel()

	bookingService, bookingRepo, customerRepo, carRepo, lockStore := newBookingFixture()
	addCustomerAndCar(customerRepo, carRepo)
	lockStore.HoldLock("car-1")

	_, err := bookingService.Create(context.Background(), service.CreateBookingRequest{
		CustomerID: "customer-1",
		CarID:      "car-1",
		StartDate:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, service.ErrBookingLocked) {
		t.Errorf("expected ErrBookingLocked, got %v", err)
	}
	if bookingRepo.CreateCallCount != 0 {
		t.Errorf("expected no insert attempt, got %d", bookingRepo.CreateCallCount)
	}
}

func TestBooking_Create_ReferenceCollisionRetriesOnce(t *testing.T) {
	t.Parallel()

	bookingService, bookingRepo, customerRepo, carRepo, _ := newBookingFixture()
	addCustomerAndCar(customerRepo, carRepo)
	bookingRepo.FailCreateOnce = true

	booking, err := bookingService.Create(context.Background(), service.CreateBookingRequest{
		CustomerID: "customer-1",
		CarID:      "car-1",
		StartDate:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bookingRepo.CreateCallCount != 2 {
		t.Errorf("expected 2 create attempts, got %d", bookingRepo.CreateCallCount)
	}
	if booking.Status != domain.BookingStatusPending {
		t.Errorf("expected pending booking after retry, got %s", booking.Status)
	}
}

func TestBooking_ConfirmThenActivateThenComplete(t *testing.T) {
	t.Parallel()

	bookingService, bookingRepo, customerRepo, carRepo, _ := newBookingFixture()
	addCustomerAndCar(customerRepo, carRepo)

	booking, err := bookingService.Create(context.Background(), service.CreateBookingRequest{
		CustomerID: "customer-1",
		CarID:      "car-1",
		StartDate:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	confirmed, err := bookingService.Confirm(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != domain.BookingStatusConfirmed {
		t.Errorf("expected CONFIRMED, got %s", confirmed.Status)
	}
	if confirmed.ConfirmedAt.IsZero() {
		t.Error("expected confirmation timestamp to be set")
	}

	active, err := bookingService.Activate(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if active.Status != domain.BookingStatusActive {
		t.Errorf("expected ACTIVE, got %s", active.Status)
	}

	completed, err := bookingService.Complete(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != domain.BookingStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", completed.Status)
	}
	if completed.CompletedAt.IsZero() {
		t.Error("expected completion timestamp to be set")
	}

	// Customer totals roll up on completion.
	customer := customerRepo.GetCustomer("customer-1")
	if customer.TotalRentals != 1 {
		t.Errorf("expected 1 rental, got %d", customer.TotalRentals)
	}
	if !customer.TotalSpent.Equal(completed.TotalCost) {
		t.Errorf("expected total spent %s, got %s", completed.TotalCost, customer.TotalSpent)
	}

	_ = bookingRepo
}

func TestBooking_InvalidTransitionsLeaveStateUnchanged(t *testing.T) {
	t.Parallel()

	bookingService, bookingRepo, _, _, _ := newBookingFixture()

	bookingRepo.AddBooking(&domain.Booking{
		ID:     "booking-1",
		Status: domain.BookingStatusPending,
	})

	// PENDING cannot be activated or completed.
	if _, err := bookingService.Activate(context.Background(), "booking-1"); !errors.Is(err, service.ErrBookingNotConfirmed) {
		t.Errorf("expected ErrBookingNotConfirmed, got %v", err)
	}
	if _, err := bookingService.Complete(context.Background(), "booking-1"); !errors.Is(err, service.ErrBookingNotActive) {
		t.Errorf("expected ErrBookingNotActive, got %v", err)
	}

	stored := bookingRepo.GetBooking("booking-1")
	if stored.Status != domain.BookingStatusPending {
		t.Errorf("booking state changed by rejected transition: %s", stored.Status)
	}
}

func TestBooking_CancelledIsTerminal(t *testing.T) {
	t.Parallel()

	bookingService, bookingRepo, _, _, _ := newBookingFixture()

	bookingRepo.AddBooking(&domain.Booking{
		ID:     "booking-1",
		Status: domain.BookingStatusConfirmed,
	})

	cancelled, err := bookingService.Cancel(context.Background(), "booking-1")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != domain.BookingStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", cancelled.Status)
	}

	// Second cancel is rejected.
	if _, err := bookingService.Cancel(context.Background(), "booking-1"); !errors.Is(err, service.ErrBookingNotCancellable) {
		t.Errorf("expected ErrBookingNotCancellable, got %v", err)
	}

	// So is confirming a cancelled booking.
	if _, err := bookingService.Confirm(context.Background(), "booking-1"); !errors.Is(err, service.ErrBookingNotPending) {
		t.Errorf("expected ErrBookingNotPending, got %v", err)
	}
}

func TestBooking_ActiveCannotBeCancelled(t *testing.T) {
	t.Parallel()

	bookingService, bookingRepo, _, _, _ := newBookingFixture()

	bookingRepo.AddBooking(&domain.Booking{
		ID:     "booking-1",
		Status: domain.BookingStatusActive,
	})

	if _, err := bookingService.Cancel(context.Background(), "booking-1"); !errors.Is(err, service.ErrBookingNotCancellable) {
		t.Errorf("expected ErrBookingNotCancellable, got %v", err)
	}
}

func TestBooking_GetUnknownID(t *testing.T) {
	t.Parallel()

	bookingService, _, _, _, _ := newBookingFixture()

	if _, err := bookingService.Get(context.Background(), "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := bookingService.Get(context.Background(), ""); !errors.Is(err, service.ErrInvalidBookingID) {
		t.Errorf("expected ErrInvalidBookingID, got %v", err)
	}
}

func TestBooking_TotalsAccumulateAcrossCompletions(t *testing.T) {
	t.Parallel()

	bookingService, bookingRepo, customerRepo, _, _ := newBookingFixture()
	customerRepo.AddCustomer(&domain.Customer{ID: "customer-1"})

	for i, total := range []int64{100, 250} {
		id := string(rune('a' + i))
		bookingRepo.AddBooking(&domain.Booking{
			ID:         id,
			CustomerID: "customer-1",
			Status:     domain.BookingStatusActive,
			TotalCost:  decimal.NewFromInt(total),
		})
		if _, err := bookingService.Complete(context.Background(), id); err != nil {
			t.Fatalf("complete failed: %v", err)
		}
	}

	customer := customerRepo.GetCustomer("customer-1")
	if customer.TotalRentals != 2 {
		t.Errorf("expected 2 rentals, got %d", customer.TotalRentals)
	}
	if !customer.TotalSpent.Equal(decimal.NewFromInt(350)) {
		t.Errorf("expected total spent 350, got %s", customer.TotalSpent)
	}
}
