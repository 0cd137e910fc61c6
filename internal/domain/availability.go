package domain

import "time"

// Availability is a per-car, per-date availability flag.
// Unique per (car, date).
type Availability struct {
	ID          string
	CarID       string
	Date        time.Time
	IsAvailable bool
}
