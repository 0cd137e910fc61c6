package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a unique constraint is violated
	// (registration number, license number, booking reference, email).
	ErrDuplicate = errors.New("duplicate entity")

	// ErrCarInUse is returned when deleting a car that bookings still reference.
	ErrCarInUse = errors.New("car is referenced by bookings")
)
