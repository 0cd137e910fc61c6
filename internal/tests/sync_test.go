package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/erp"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/service"
)

// ──────────────────────────────────────────────
// ERP SYNC
// ──────────────────────────────────────────────

func newSyncFixture() (*service.SyncService, *FakeERPClient, *MockCarRepository, *MockCustomerRepository, *MockBookingRepository) {
	erpClient := NewFakeERPClient()
	carRepo := NewMockCarRepository()
	customerRepo := NewMockCustomerRepository()
	bookingRepo := NewMockBookingRepository()

	syncService := service.NewSyncService(erpClient, carRepo, customerRepo, bookingRepo, nil)
	return syncService, erpClient, carRepo, customerRepo, bookingRepo
}

func TestSync_PullCreatesAndUpdatesByRegistration(t *testing.T) {
	t.Parallel()

	syncService, erpClient, carRepo, _, _ := newSyncFixture()

	// One car already exists locally under its plate.
	carRepo.AddCar(&domain.Car{
		ID:                 "car-existing",
		RegistrationNumber: "AA-111-AA",
		Make:               "Old Make",
		Status:             domain.CarStatusMaintenance,
		DailyRate:          decimal.NewFromInt(10),
	})

	erpClient.Vehicles = []erp.Record{
		{"license_plate": "AA-111-AA", "brand": "Peugeot", "model_id": []any{float64(7), "208"}, "daily_rate": 45.0, "id": float64(7)},
		{"license_plate": "BB-222-BB", "brand": "Renault", "model_id": []any{float64(8), "Clio"}, "daily_rate": 50.0, "id": float64(8)},
		{"license_plate": "CC-333-CC", "brand": "Tesla", "fuel_type": "electric", "daily_rate": 90.0, "id": float64(9)},
	}

	summary, err := syncService.PullCars(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Created != 2 {
		t.Errorf("expected 2 created, got %d", summary.Created)
	}
	if summary.Updated != 1 {
		t.Errorf("expected 1 updated, got %d", summary.Updated)
	}
	if summary.Total != 3 {
		t.Errorf("expected total 3, got %d", summary.Total)
	}

	// The existing car kept its local identity and status but took the
	// ERP-owned fields.
	updated := carRepo.GetCar("car-existing")
	if updated.Make != "Peugeot" {
		t.Errorf("expected updated make Peugeot, got %s", updated.Make)
	}
	if updated.Status != domain.CarStatusMaintenance {
		t.Errorf("local status must survive a pull, got %s", updated.Status)
	}
	if updated.OdooID != 7 {
		t.Errorf("expected odoo id 7, got %d", updated.OdooID)
	}
	if !updated.DailyRate.Equal(decimal.NewFromInt(45)) {
		t.Errorf("expected daily rate 45, got %s", updated.DailyRate)
	}
}

func TestSync_PullSkipsRecordsWithoutPlate(t *testing.T) {
	t.Parallel()

	syncService, erpClient, _, _, _ := newSyncFixture()

	erpClient.Vehicles = []erp.Record{
		{"brand": "Ghost", "id": float64(1)}, // no license_plate
		{"license_plate": "DD-444-DD", "brand": "Citroen", "id": float64(2)},
	}

	summary, err := syncService.PullCars(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Failed != 1 {
		t.Errorf("expected 1 failed record, got %d", summary.Failed)
	}
	if summary.Created != 1 {
		t.Errorf("expected 1 created, got %d", summary.Created)
	}
}

func TestSync_PullFailsWhenERPUnreachable(t *testing.T) {
	t.Parallel()

	syncService, erpClient, _, _, _ := newSyncFixture()
	erpClient.FetchError = errors.New("connection refused")

	if _, err := syncService.PullCars(context.Background()); err == nil {
		t.Error("expected pull to fail when the ERP is unreachable")
	}
}

func TestSync_PushCustomerStoresExternalID(t *testing.T) {
	t.Parallel()

	syncService, erpClient, _, customerRepo, _ := newSyncFixture()
	customerRepo.AddCustomer(&domain.Customer{ID: "customer-1", Email: "alice@example.com"})

	odooID, err := syncService.PushCustomer(context.Background(), "customer-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if odooID == 0 {
		t.Fatal("expected a nonzero external id")
	}
	if customerRepo.GetCustomer("customer-1").OdooID != odooID {
		t.Error("external id not persisted on the customer")
	}

	// Second push is a no-op.
	again, err := syncService.PushCustomer(context.Background(), "customer-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != odooID {
		t.Errorf("expected same id %d, got %d", odooID, again)
	}
	if erpClient.CreateCustomerCallCount != 1 {
		t.Errorf("expected 1 ERP call, got %d", erpClient.CreateCustomerCallCount)
	}
}

func TestSync_PushCustomerFailureLeavesRecordUsable(t *testing.T) {
	t.Parallel()

	syncService, erpClient, _, customerRepo, _ := newSyncFixture()
	customerRepo.AddCustomer(&domain.Customer{ID: "customer-1"})
	erpClient.CreateCustomerError = errors.New("erp down")

	odooID, err := syncService.PushCustomer(context.Background(), "customer-1")
	if err != nil {
		t.Fatalf("push failure must not surface as an error, got %v", err)
	}
	if odooID != 0 {
		t.Errorf("expected zero id on failure, got %d", odooID)
	}
	if customerRepo.GetCustomer("customer-1").OdooID != 0 {
		t.Error("customer must remain unlinked after a failed push")
	}
}

func TestSync_PushBookingCascadesCustomerFirst(t *testing.T) {
	t.Parallel()

	syncService, erpClient, carRepo, customerRepo, bookingRepo := newSyncFixture()

	carRepo.AddCar(&domain.Car{ID: "car-1", RegistrationNumber: "AA-111-AA", OdooID: 7})
	customerRepo.AddCustomer(&domain.Customer{ID: "customer-1"})
	bookingRepo.AddBooking(&domain.Booking{
		ID:         "booking-1",
		Reference:  "BK12345678",
		CustomerID: "customer-1",
		CarID:      "car-1",
		StartDate:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		TotalCost:  decimal.NewFromInt(250),
	})

	odooID, err := syncService.PushBooking(context.Background(), "booking-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if odooID == 0 {
		t.Fatal("expected a nonzero external id")
	}

	// The customer was pushed first as part of the cascade.
	if erpClient.CreateCustomerCallCount != 1 {
		t.Errorf("expected customer push before booking push, got %d calls", erpClient.CreateCustomerCallCount)
	}
	if customerRepo.GetCustomer("customer-1").OdooID == 0 {
		t.Error("customer must carry an external id after the cascade")
	}
	if bookingRepo.GetBooking("booking-1").OdooID != odooID {
		t.Error("external id not persisted on the booking")
	}
}

func TestSync_PushBookingWithUnsyncedCarIsDeferred(t *testing.T) {
	t.Parallel()

	syncService, _, carRepo, customerRepo, bookingRepo := newSyncFixture()

	// Car has no external id yet: the booking cannot be mapped.
	carRepo.AddCar(&domain.Car{ID: "car-1", RegistrationNumber: "AA-111-AA"})
	customerRepo.AddCustomer(&domain.Customer{ID: "customer-1", OdooID: 42})
	bookingRepo.AddBooking(&domain.Booking{
		ID:         "booking-1",
		CustomerID: "customer-1",
		CarID:      "car-1",
	})

	odooID, err := syncService.PushBooking(context.Background(), "booking-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if odooID != 0 {
		t.Errorf("expected deferred push (zero id), got %d", odooID)
	}
	if bookingRepo.GetBooking("booking-1").OdooID != 0 {
		t.Error("booking must remain unlinked when the car is unsynced")
	}
}

func TestSync_StatusReportsCoverage(t *testing.T) {
	t.Parallel()

	syncService, erpClient, carRepo, customerRepo, bookingRepo := newSyncFixture()

	carRepo.AddCar(&domain.Car{ID: "car-1", RegistrationNumber: "AA-111-AA", OdooID: 7})
	carRepo.AddCar(&domain.Car{ID: "car-2", RegistrationNumber: "BB-222-BB"})
	customerRepo.AddCustomer(&domain.Customer{ID: "customer-1", OdooID: 42})
	bookingRepo.AddBooking(&domain.Booking{ID: "booking-1"})

	status, err := syncService.Status(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !status.Connected {
		t.Error("expected connected status")
	}
	if status.Cars.Total != 2 || status.Cars.Synced != 1 {
		t.Errorf("unexpected car coverage: %+v", status.Cars)
	}
	if status.Customers.Total != 1 || status.Customers.Synced != 1 {
		t.Errorf("unexpected customer coverage: %+v", status.Customers)
	}
	if status.Bookings.Total != 1 || status.Bookings.Synced != 0 {
		t.Errorf("unexpected booking coverage: %+v", status.Bookings)
	}

	erpClient.Connected = false
	status, err = syncService.Status(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Connected {
		t.Error("expected disconnected status")
	}
}
