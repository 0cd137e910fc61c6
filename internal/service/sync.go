package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/erp"
	internalRedis "github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/redis"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository"
)

// SyncService synchronizes cars, customers and bookings with the external
// ERP. Sync failures never propagate into the customer-facing booking flow:
// a record without an external ID simply has not been synced yet.
type SyncService struct {
	erpClient    erp.Client
	carRepo      repository.CarRepository
	customerRepo repository.CustomerRepository
	bookingRepo  repository.BookingRepository
	cacheStore   *internalRedis.CacheStore
}

// NewSyncService creates a new SyncService.
func NewSyncService(
	erpClient erp.Client,
	carRepo repository.CarRepository,
	customerRepo repository.CustomerRepository,
	bookingRepo repository.BookingRepository,
	cacheStore *internalRedis.CacheStore,
) *SyncService {
	return &SyncService{
		erpClient:    erpClient,
		carRepo:      carRepo,
		customerRepo: customerRepo,
		bookingRepo:  bookingRepo,
		cacheStore:   cacheStore,
	}
}

// PullSummary reports the outcome of a vehicle pull.
type PullSummary struct {
	Created int
	Updated int
	Failed  int
	Total   int
}

// PullCars fetches all vehicle records from the ERP and upserts them by
// registration number. Per-record mapping failures are logged and counted,
// never fatal; only an unreachable ERP fails the pull.
func (s *SyncService) PullCars(ctx context.Context) (*PullSummary, error) {
	vehicles, err := s.erpClient.FetchVehicles(ctx)
	if err != nil {
		return nil, err
	}

	summary := &PullSummary{Total: len(vehicles)}

	for _, record := range vehicles {
		mapped, err := erp.MapVehicle(record)
		if err != nil {
			log.Printf("sync: skipping vehicle record: %v", err)
			summary.Failed++
			continue
		}

		existing, err := s.carRepo.GetByRegistration(ctx, mapped.RegistrationNumber)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			mapped.ID = uuid.New().String()
			mapped.CreatedAt = time.Now()
			mapped.UpdatedAt = mapped.CreatedAt
			if err := s.carRepo.Create(ctx, mapped); err != nil {
				log.Printf("sync: creating car %s: %v", mapped.RegistrationNumber, err)
				summary.Failed++
				continue
			}
			summary.Created++

		case err != nil:
			return nil, err

		default:
			applyVehicleFields(existing, mapped)
			if err := s.carRepo.Update(ctx, existing); err != nil {
				log.Printf("sync: updating car %s: %v", existing.RegistrationNumber, err)
				summary.Failed++
				continue
			}
			summary.Updated++
		}
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateCarLists(ctx)
	}

	log.Printf("sync: pull complete: created=%d updated=%d failed=%d total=%d",
		summary.Created, summary.Updated, summary.Failed, summary.Total)
	return summary, nil
}

// applyVehicleFields copies the ERP-owned fields onto an existing car,
// preserving the local identity, status and description.
func applyVehicleFields(existing, mapped *domain.Car) {
	existing.Make = mapped.Make
	existing.Model = mapped.Model
	existing.Year = mapped.Year
	existing.Color = mapped.Color
	existing.Mileage = mapped.Mileage
	existing.FuelType = mapped.FuelType
	existing.Transmission = mapped.Transmission
	existing.Seats = mapped.Seats
	existing.DailyRate = mapped.DailyRate
	existing.OdooID = mapped.OdooID
	existing.UpdatedAt = time.Now()
}

// PushCustomer maps the customer to the external shape and submits it,
// storing the returned external ID. Already-linked customers are a no-op.
// ERP failures are logged and reported as a zero ID; the customer remains
// fully usable locally.
func (s *SyncService) PushCustomer(ctx context.Context, customerID string) (int64, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return 0, err
	}
	if customer.OdooID != 0 {
		return customer.OdooID, nil
	}

	odooID, err := s.erpClient.CreateCustomer(ctx, erp.MapCustomer(customer))
	if err != nil {
		log.Printf("sync: pushing customer %s: %v", customer.ID, err)
		return 0, nil
	}

	if err := s.customerRepo.SetOdooID(ctx, customer.ID, odooID); err != nil {
		return 0, err
	}
	return odooID, nil
}

// PushBooking maps the booking to the external shape and submits it. The
// booking's customer is pushed first if needed (at most one hop). Failures
// are logged and reported as a zero ID.
func (s *SyncService) PushBooking(ctx context.Context, bookingID string) (int64, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	if booking.OdooID != 0 {
		return booking.OdooID, nil
	}

	customer, err := s.customerRepo.GetByID(ctx, booking.CustomerID)
	if err != nil {
		return 0, err
	}
	if customer.OdooID == 0 {
		if _, err := s.PushCustomer(ctx, customer.ID); err != nil {
			return 0, err
		}
		customer, err = s.customerRepo.GetByID(ctx, booking.CustomerID)
		if err != nil {
			return 0, err
		}
		if customer.OdooID == 0 {
			log.Printf("sync: booking %s not pushed: customer %s has no external id", booking.ID, customer.ID)
			return 0, nil
		}
	}

	car, err := s.carRepo.GetByID(ctx, booking.CarID)
	if err != nil {
		return 0, err
	}

	record, err := erp.MapBooking(booking, car, customer)
	if err != nil {
		log.Printf("sync: booking %s not pushed: %v", booking.ID, err)
		return 0, nil
	}

	odooID, err := s.erpClient.CreateBooking(ctx, record)
	if err != nil {
		log.Printf("sync: pushing booking %s: %v", booking.ID, err)
		return 0, nil
	}

	if err := s.bookingRepo.SetOdooID(ctx, booking.ID, odooID); err != nil {
		return 0, err
	}
	return odooID, nil
}

// EntityStatus reports how much of one entity type carries an ERP link.
type EntityStatus struct {
	Synced int
	Total  int
}

// SyncStatus reports connection health and per-entity sync coverage.
type SyncStatus struct {
	Connected bool
	Cars      EntityStatus
	Customers EntityStatus
	Bookings  EntityStatus
}

// Status returns the current synchronization status.
func (s *SyncService) Status(ctx context.Context) (*SyncStatus, error) {
	status := &SyncStatus{Connected: s.erpClient.TestConnection(ctx)}

	var err error
	if status.Cars.Total, status.Cars.Synced, err = s.carRepo.Count(ctx); err != nil {
		return nil, err
	}
	if status.Customers.Total, status.Customers.Synced, err = s.customerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if status.Bookings.Total, status.Bookings.Synced, err = s.bookingRepo.Count(ctx); err != nil {
		return nil, err
	}

	return status, nil
}
