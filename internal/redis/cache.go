package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles car catalog caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	// CarListCacheTTL is short: listings change on every sync pull and
	// admin edit, and stale fleet data is user-visible.
	CarListCacheTTL = 60 * time.Second
	CarCacheTTL     = 5 * time.Minute
)

// Key prefixes
const (
	carCachePrefix     = "cache:car:"
	carListCachePrefix = "cache:cars:"
	carListKeySet      = "cache:cars:keys"
)

// CachedCar represents a cached car entity.
type CachedCar struct {
	ID                 string `json:"id"`
	RegistrationNumber string `json:"registration_number"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
	FuelType           string `json:"fuel_type"`
	Transmission       string `json:"transmission"`
	Seats              int    `json:"seats"`
	Color              string `json:"color"`
	Mileage            int    `json:"mileage"`
	DailyRate          string `json:"daily_rate"`
	Status             string `json:"status"`
	Description        string `json:"description"`
	OdooID             int64  `json:"odoo_id"`
}

// GetCar retrieves a car from cache. A nil result with nil error is a miss.
func (s *CacheStore) GetCar(ctx context.Context, carID string) (*CachedCar, error) {
	data, err := s.client.Get(ctx, carCachePrefix+carID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var car CachedCar
	if err := json.Unmarshal(data, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// SetCar stores a car in cache.
func (s *CacheStore) SetCar(ctx context.Context, car *CachedCar) error {
	data, err := json.Marshal(car)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, carCachePrefix+car.ID, data, CarCacheTTL).Err()
}

// InvalidateCar removes a car from cache.
func (s *CacheStore) InvalidateCar(ctx context.Context, carID string) error {
	return s.client.Del(ctx, carCachePrefix+carID).Err()
}

// GetCarList retrieves a cached listing for the given filter key.
// A nil result with nil error is a miss.
func (s *CacheStore) GetCarList(ctx context.Context, filterKey string) ([]CachedCar, error) {
	data, err := s.client.Get(ctx, carListCachePrefix+filterKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var cars []CachedCar
	if err := json.Unmarshal(data, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// SetCarList stores a listing under the given filter key and tracks the key
// so InvalidateCarLists can drop every cached combination.
func (s *CacheStore) SetCarList(ctx context.Context, filterKey string, cars []CachedCar) error {
	data, err := json.Marshal(cars)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, carListCachePrefix+filterKey, data, CarListCacheTTL)
	pipe.SAdd(ctx, carListKeySet, filterKey)
	pipe.Expire(ctx, carListKeySet, CarListCacheTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// InvalidateCarLists drops every cached listing. Called after sync upserts
// and admin fleet changes.
func (s *CacheStore) InvalidateCarLists(ctx context.Context) error {
	keys, err := s.client.SMembers(ctx, carListKeySet).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, carListCachePrefix+key)
	}
	pipe.Del(ctx, carListKeySet)
	_, err = pipe.Exec(ctx)
	return err
}
