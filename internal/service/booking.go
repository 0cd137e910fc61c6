package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/pricing"
	internalRedis "github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/redis"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository/postgres"
)

// carLockTTL bounds how long a create request may hold a car's booking lock.
const carLockTTL = 5 * time.Second

// BookingService orchestrates the booking lifecycle:
// PENDING → CONFIRMED → ACTIVE → COMPLETED, with CANCELLED reachable from
// PENDING and CONFIRMED. Bookings are never deleted.
type BookingService struct {
	db                  *sql.DB
	bookingRepo         repository.BookingRepository
	customerRepo        repository.CustomerRepository
	carRepo             repository.CarRepository
	availability        *AvailabilityService
	lockStore           internalRedis.LockStoreInterface
	notificationService *NotificationService
}

// NewBookingService creates a new BookingService. db may be nil in tests;
// completion then updates through the injected repositories without a
// transaction.
func NewBookingService(
	db *sql.DB,
	bookingRepo repository.BookingRepository,
	customerRepo repository.CustomerRepository,
	carRepo repository.CarRepository,
	availability *AvailabilityService,
	lockStore internalRedis.LockStoreInterface,
	notificationService *NotificationService,
) *BookingService {
	return &BookingService{
		db:                  db,
		bookingRepo:         bookingRepo,
		customerRepo:        customerRepo,
		carRepo:             carRepo,
		availability:        availability,
		lockStore:           lockStore,
		notificationService: notificationService,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
type CreateBookingRequest struct {
	CustomerID        string
	CarID             string
	StartDate         time.Time
	EndDate           time.Time
	PickupLocation    string
	ReturnLocation    string
	InsuranceCost     decimal.Decimal
	AdditionalCharges decimal.Decimal
	Notes             string
}

// Create validates the request, checks availability and persists a PENDING
// booking with the car's current daily rate snapshotted onto it.
//
// The per-car lock is held across the availability check and the insert so
// two concurrent requests for the same car cannot both pass the check.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if req.CarID == "" {
		return nil, ErrInvalidCarID
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.LicenseExpiry.IsZero() && customer.LicenseExpiry.Before(req.EndDate) {
		return nil, ErrLicenseExpired
	}

	car, err := s.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}
	if car.Status == domain.CarStatusMaintenance {
		return nil, ErrCarNotBookable
	}

	if s.lockStore != nil {
		acquired, err := s.lockStore.AcquireCarLock(ctx, req.CarID, carLockTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, ErrBookingLocked
		}
		defer func() {
			_ = s.lockStore.ReleaseCarLock(ctx, req.CarID)
		}()
	}

	available, err := s.availability.IsCarAvailable(ctx, req.CarID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrCarUnavailable
	}

	quote := pricing.Calculate(req.StartDate, req.EndDate, car.DailyRate, req.InsuranceCost, req.AdditionalCharges)

	booking := &domain.Booking{
		ID:                uuid.New().String(),
		Reference:         NewBookingReference(),
		CustomerID:        req.CustomerID,
		CarID:             req.CarID,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		PickupLocation:    req.PickupLocation,
		ReturnLocation:    req.ReturnLocation,
		DailyRate:         car.DailyRate,
		NumberOfDays:      quote.NumberOfDays,
		Subtotal:          quote.Subtotal,
		InsuranceCost:     req.InsuranceCost,
		AdditionalCharges: req.AdditionalCharges,
		TotalCost:         quote.TotalCost,
		Status:            domain.BookingStatusPending,
		PaymentStatus:     domain.PaymentStatusUnpaid,
		Notes:             req.Notes,
		CreatedAt:         time.Now(),
	}

	err = s.bookingRepo.Create(ctx, booking)
	if errors.Is(err, repository.ErrDuplicate) {
		// Reference collision. One retry with a fresh reference before
		// surfacing the conflict.
		booking.Reference = NewBookingReference()
		err = s.bookingRepo.Create(ctx, booking)
	}
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingCreated(ctx, booking)
	}

	return booking, nil
}

// Confirm moves a PENDING booking to CONFIRMED and records the confirmation
// timestamp.
func (s *BookingService) Confirm(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(domain.BookingStatusConfirmed) {
		return nil, ErrBookingNotPending
	}

	booking.Status = domain.BookingStatusConfirmed
	booking.ConfirmedAt = time.Now()

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingConfirmed(ctx, booking)
	}

	return booking, nil
}

// Activate moves a CONFIRMED booking to ACTIVE when the car is picked up.
func (s *BookingService) Activate(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(domain.BookingStatusActive) {
		return nil, ErrBookingNotConfirmed
	}

	booking.Status = domain.BookingStatusActive

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// Cancel moves a PENDING or CONFIRMED booking to CANCELLED. Bookings that
// are ACTIVE, COMPLETED or already CANCELLED are rejected unchanged.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(domain.BookingStatusCancelled) {
		return nil, ErrBookingNotCancellable
	}

	booking.Status = domain.BookingStatusCancelled

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingCancelled(ctx, booking)
	}

	return booking, nil
}

// Complete moves an ACTIVE booking to COMPLETED, records the completion
// timestamp and rolls the booking total into the customer's running totals.
func (s *BookingService) Complete(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(domain.BookingStatusCompleted) {
		return nil, ErrBookingNotActive
	}

	booking.Status = domain.BookingStatusCompleted
	booking.CompletedAt = time.Now()

	if s.db != nil {
		err = s.completeTx(ctx, booking)
	} else {
		err = s.completeDirect(ctx, booking)
	}
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingCompleted(ctx, booking)
	}

	return booking, nil
}

// completeTx updates the booking and the customer totals in one transaction.
func (s *BookingService) completeTx(ctx context.Context, booking *domain.Booking) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txBookingRepo := postgres.NewBookingRepositoryWithTx(tx)
	txCustomerRepo := postgres.NewCustomerRepositoryWithTx(tx)

	if err = txBookingRepo.Update(ctx, booking); err != nil {
		return err
	}
	if err = txCustomerRepo.AddRentalTotals(ctx, booking.CustomerID, booking.TotalCost); err != nil {
		return err
	}

	return tx.Commit()
}

// completeDirect is the non-transactional path used when no database handle
// was injected (tests with mock repositories).
func (s *BookingService) completeDirect(ctx context.Context, booking *domain.Booking) error {
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return err
	}
	return s.customerRepo.AddRentalTotals(ctx, booking.CustomerID, booking.TotalCost)
}

// Get retrieves a booking by ID.
func (s *BookingService) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.get(ctx, bookingID)
}

// ListByCustomer retrieves a customer's bookings, newest first.
func (s *BookingService) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}
	return s.bookingRepo.ListByCustomer(ctx, customerID)
}

func (s *BookingService) get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	return s.bookingRepo.GetByID(ctx, bookingID)
}

// NewBookingReference generates a booking reference: "BK" followed by eight
// uppercase hex characters. Uniqueness is enforced by the database; the
// create path retries once on collision.
func NewBookingReference() string {
	return "BK" + strings.ToUpper(uuid.New().String()[:8])
}
