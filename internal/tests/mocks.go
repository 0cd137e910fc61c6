package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/erp"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK CAR REPOSITORY
// ──────────────────────────────────────────────

// MockCarRepository is a mock implementation of CarRepository.
type MockCarRepository struct {
	mu   sync.RWMutex
	cars map[string]*domain.Car

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockCarRepository creates a new mock car repository.
func NewMockCarRepository() *MockCarRepository {
	return &MockCarRepository{
		cars: make(map[string]*domain.Car),
	}
}

// AddCar adds a car to the mock repository.
func (m *MockCarRepository) AddCar(car *domain.Car) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cars[car.ID] = car
}

func (m *MockCarRepository) Create(ctx context.Context, car *domain.Car) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cars {
		if c.RegistrationNumber == car.RegistrationNumber {
			return repository.ErrDuplicate
		}
	}
	m.cars[car.ID] = car
	return nil
}

func (m *MockCarRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	car, ok := m.cars[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *car
	return &copy, nil
}

func (m *MockCarRepository) GetByRegistration(ctx context.Context, registration string) (*domain.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.cars {
		if c.RegistrationNumber == registration {
			copy := *c
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockCarRepository) List(ctx context.Context, filter repository.CarFilter) ([]*domain.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Car, 0, len(m.cars))
	for _, c := range m.cars {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.FuelType != "" && c.FuelType != filter.FuelType {
			continue
		}
		if filter.Transmission != "" && c.Transmission != filter.Transmission {
			continue
		}
		if filter.Seats != 0 && c.Seats < filter.Seats {
			continue
		}
		copy := *c
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockCarRepository) Update(ctx context.Context, car *domain.Car) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cars[car.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *car
	m.cars[car.ID] = &copy
	return nil
}

func (m *MockCarRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cars[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.cars, id)
	return nil
}

func (m *MockCarRepository) Count(ctx context.Context) (int, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	synced := 0
	for _, c := range m.cars {
		if c.OdooID != 0 {
			synced++
		}
	}
	return len(m.cars), synced, nil
}

// GetCar returns a car for test assertions.
func (m *MockCarRepository) GetCar(id string) *domain.Car {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cars[id]
}

// ──────────────────────────────────────────────
// MOCK CUSTOMER REPOSITORY
// ──────────────────────────────────────────────

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer

	// Counters for verification
	CreateCallCount          int32
	AddRentalTotalsCallCount int32
	SetOdooIDCallCount       int32

	// Error injection
	CreateError          error
	AddRentalTotalsError error
}

// NewMockCustomerRepository creates a new mock customer repository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

// AddCustomer adds a customer to the mock repository.
func (m *MockCustomerRepository) AddCustomer(customer *domain.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[customer.ID] = customer
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.Email == customer.Email || c.LicenseNumber == customer.LicenseNumber {
			return repository.ErrDuplicate
		}
	}
	m.customers[customer.ID] = customer
	return nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	customer, ok := m.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *customer
	return &copy, nil
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if c.Email == email {
			copy := *c
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[customer.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *customer
	m.customers[customer.ID] = &copy
	return nil
}

func (m *MockCustomerRepository) AddRentalTotals(ctx context.Context, id string, amount decimal.Decimal) error {
	atomic.AddInt32(&m.AddRentalTotalsCallCount, 1)
	if m.AddRentalTotalsError != nil {
		return m.AddRentalTotalsError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	customer, ok := m.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	customer.TotalRentals++
	customer.TotalSpent = customer.TotalSpent.Add(amount)
	return nil
}

func (m *MockCustomerRepository) SetOdooID(ctx context.Context, id string, odooID int64) error {
	atomic.AddInt32(&m.SetOdooIDCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	customer, ok := m.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	customer.OdooID = odooID
	return nil
}

func (m *MockCustomerRepository) Count(ctx context.Context) (int, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	synced := 0
	for _, c := range m.customers {
		if c.OdooID != 0 {
			synced++
		}
	}
	return len(m.customers), synced, nil
}

// GetCustomer returns a customer for test assertions.
func (m *MockCustomerRepository) GetCustomer(id string) *domain.Customer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.customers[id]
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error

	// FailCreateOnce injects ErrDuplicate on the first Create only.
	FailCreateOnce bool
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	count := atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	if m.FailCreateOnce && count == 1 {
		return repository.ErrDuplicate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bookings {
		if b.Reference == reference {
			copy := *b
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.CustomerID == customerID {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) ListBlocking(ctx context.Context, carID string, start, end time.Time) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.CarID != carID {
			continue
		}
		if b.Blocks(start, end) {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

func (m *MockBookingRepository) SetOdooID(ctx context.Context, id string, odooID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	booking.OdooID = odooID
	return nil
}

func (m *MockBookingRepository) Count(ctx context.Context) (int, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	synced := 0
	for _, b := range m.bookings {
		if b.OdooID != 0 {
			synced++
		}
	}
	return len(m.bookings), synced, nil
}

// GetBooking returns a booking for test assertions.
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// ──────────────────────────────────────────────
// MOCK AVAILABILITY REPOSITORY
// ──────────────────────────────────────────────

// MockAvailabilityRepository is a mock implementation of AvailabilityRepository.
type MockAvailabilityRepository struct {
	mu    sync.RWMutex
	flags map[string][]time.Time // carID -> available dates
}

// NewMockAvailabilityRepository creates a new mock availability repository.
func NewMockAvailabilityRepository() *MockAvailabilityRepository {
	return &MockAvailabilityRepository{
		flags: make(map[string][]time.Time),
	}
}

// SetAvailableDates sets the available dates for a car.
func (m *MockAvailabilityRepository) SetAvailableDates(carID string, dates []time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[carID] = dates
}

func (m *MockAvailabilityRepository) Upsert(ctx context.Context, availability *domain.Availability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if availability.IsAvailable {
		m.flags[availability.CarID] = append(m.flags[availability.CarID], availability.Date)
	}
	return nil
}

func (m *MockAvailabilityRepository) ListAvailableDates(ctx context.Context, carID string, from, to time.Time) ([]time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]time.Time, 0)
	for _, d := range m.flags[carID] {
		if !d.Before(from) && !d.After(to) {
			result = append(result, d)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of the car lock store.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireCarLock(ctx context.Context, carID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[carID] {
		return false, nil
	}
	m.locks[carID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseCarLock(ctx context.Context, carID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, carID)
	return nil
}

// HoldLock pre-acquires the lock so the next caller is rejected.
func (m *MockLockStore) HoldLock(carID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[carID] = true
}

// ──────────────────────────────────────────────
// FAKE ERP CLIENT
// ──────────────────────────────────────────────

// FakeERPClient is an in-memory implementation of the ERP client.
type FakeERPClient struct {
	mu       sync.Mutex
	Vehicles []erp.Record
	nextID   int64

	// Counters for verification
	CreateCustomerCallCount int32
	CreateBookingCallCount  int32

	// Error injection
	FetchError          error
	CreateCustomerError error
	CreateBookingError  error

	// Connected controls TestConnection.
	Connected bool
}

// NewFakeERPClient creates a connected fake ERP client.
func NewFakeERPClient() *FakeERPClient {
	return &FakeERPClient{nextID: 100, Connected: true}
}

func (f *FakeERPClient) FetchVehicles(ctx context.Context) ([]erp.Record, error) {
	if f.FetchError != nil {
		return nil, f.FetchError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]erp.Record(nil), f.Vehicles...), nil
}

func (f *FakeERPClient) CreateCustomer(ctx context.Context, record erp.Record) (int64, error) {
	atomic.AddInt32(&f.CreateCustomerCallCount, 1)
	if f.CreateCustomerError != nil {
		return 0, f.CreateCustomerError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.nextID, nil
}

func (f *FakeERPClient) CreateBooking(ctx context.Context, record erp.Record) (int64, error) {
	atomic.AddInt32(&f.CreateBookingCallCount, 1)
	if f.CreateBookingError != nil {
		return 0, f.CreateBookingError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.nextID, nil
}

func (f *FakeERPClient) TestConnection(ctx context.Context) bool {
	return f.Connected
}
