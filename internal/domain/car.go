package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CarStatus represents the current status of a car in the fleet.
type CarStatus string

const (
	CarStatusAvailable   CarStatus = "AVAILABLE"
	CarStatusRented      CarStatus = "RENTED"
	CarStatusMaintenance CarStatus = "MAINTENANCE"
	CarStatusReserved    CarStatus = "RESERVED"
)

// FuelType represents the fuel type of a car.
type FuelType string

const (
	FuelGasoline FuelType = "GASOLINE"
	FuelDiesel   FuelType = "DIESEL"
	FuelElectric FuelType = "ELECTRIC"
	FuelHybrid   FuelType = "HYBRID"
)

// IsValid returns true if the fuel type is a known value.
func (f FuelType) IsValid() bool {
	switch f {
	case FuelGasoline, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	}
	return false
}

// Transmission represents the transmission type of a car.
type Transmission string

const (
	TransmissionManual    Transmission = "MANUAL"
	TransmissionAutomatic Transmission = "AUTOMATIC"
)

// IsValid returns true if the transmission is a known value.
func (t Transmission) IsValid() bool {
	return t == TransmissionManual || t == TransmissionAutomatic
}

// Car represents a rentable vehicle in the fleet.
type Car struct {
	ID                 string
	RegistrationNumber string // Unique plate, also the upsert key for ERP sync.
	Make               string
	Model              string
	Year               int
	Color              string
	Mileage            int
	FuelType           FuelType
	Transmission       Transmission
	Seats              int
	DailyRate          decimal.Decimal
	Status             CarStatus
	Description        string
	OdooID             int64 // 0 means not yet synced to the ERP.
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
