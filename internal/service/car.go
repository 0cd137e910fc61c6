package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	internalRedis "github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/redis"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository"
)

// CarService serves the read-mostly car catalog, with listings cached in
// Redis per filter combination.
type CarService struct {
	carRepo    repository.CarRepository
	cacheStore *internalRedis.CacheStore
}

// NewCarService creates a new CarService.
func NewCarService(carRepo repository.CarRepository, cacheStore *internalRedis.CacheStore) *CarService {
	return &CarService{
		carRepo:    carRepo,
		cacheStore: cacheStore,
	}
}

// List retrieves cars matching the filter, from cache when possible.
func (s *CarService) List(ctx context.Context, filter repository.CarFilter) ([]*domain.Car, error) {
	key := filterKey(filter)

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetCarList(ctx, key)
		if err == nil && cached != nil {
			return fromCachedCars(cached), nil
		}
	}

	cars, err := s.carRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetCarList(ctx, key, toCachedCars(cars))
	}

	return cars, nil
}

// Get retrieves a car by ID.
func (s *CarService) Get(ctx context.Context, carID string) (*domain.Car, error) {
	if carID == "" {
		return nil, ErrInvalidCarID
	}
	return s.carRepo.GetByID(ctx, carID)
}

// Delete removes a car from the fleet. Cars referenced by bookings are
// protected by the foreign key and surface as repository.ErrCarInUse.
func (s *CarService) Delete(ctx context.Context, carID string) error {
	if carID == "" {
		return ErrInvalidCarID
	}

	if err := s.carRepo.Delete(ctx, carID); err != nil {
		return err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateCar(ctx, carID)
		_ = s.cacheStore.InvalidateCarLists(ctx)
	}

	return nil
}

// filterKey builds a stable cache key for a filter combination.
func filterKey(filter repository.CarFilter) string {
	return fmt.Sprintf("%s|%s|%s|%d|%s|%s|%t",
		filter.Status,
		filter.FuelType,
		filter.Transmission,
		filter.Seats,
		filter.Search,
		filter.OrderBy,
		filter.Descending,
	)
}

func toCachedCars(cars []*domain.Car) []internalRedis.CachedCar {
	cached := make([]internalRedis.CachedCar, 0, len(cars))
	for _, car := range cars {
		cached = append(cached, internalRedis.CachedCar{
			ID:                 car.ID,
			RegistrationNumber: car.RegistrationNumber,
			Make:               car.Make,
			Model:              car.Model,
			Year:               car.Year,
			FuelType:           string(car.FuelType),
			Transmission:       string(car.Transmission),
			Seats:              car.Seats,
			Color:              car.Color,
			Mileage:            car.Mileage,
			DailyRate:          car.DailyRate.String(),
			Status:             string(car.Status),
			Description:        car.Description,
			OdooID:             car.OdooID,
		})
	}
	return cached
}

func fromCachedCars(cached []internalRedis.CachedCar) []*domain.Car {
	cars := make([]*domain.Car, 0, len(cached))
	for _, c := range cached {
		rate, err := decimal.NewFromString(c.DailyRate)
		if err != nil {
			rate = decimal.Zero
		}
		cars = append(cars, &domain.Car{
			ID:                 c.ID,
			RegistrationNumber: c.RegistrationNumber,
			Make:               c.Make,
			Model:              c.Model,
			Year:               c.Year,
			FuelType:           domain.FuelType(c.FuelType),
			Transmission:       domain.Transmission(c.Transmission),
			Seats:              c.Seats,
			Color:              c.Color,
			Mileage:            c.Mileage,
			DailyRate:          rate,
			Status:             domain.CarStatus(c.Status),
			Description:        c.Description,
			OdooID:             c.OdooID,
		})
	}
	return cars
}
