package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a customer profile linked 1:1 to an account identity.
type Customer struct {
	ID            string
	Email         string // Account identity, unique.
	PasswordHash  string
	FullName      string
	Phone         string
	Address       string
	City          string
	PostalCode    string
	Country       string
	LicenseNumber string // Unique.
	LicenseExpiry time.Time
	TotalRentals  int             // Updated only by the booking lifecycle on completion.
	TotalSpent    decimal.Decimal // Updated only by the booking lifecycle on completion.
	IsVerified    bool
	OdooID        int64 // 0 means not yet synced to the ERP.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
