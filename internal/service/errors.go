package service

import "errors"

var (
	// ErrInvalidCustomerID is returned when the customer ID is empty.
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// ErrInvalidCarID is returned when the car ID is empty.
	ErrInvalidCarID = errors.New("invalid car id")

	// ErrInvalidBookingID is returned when the booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidDateRange is returned when the end date is not after the start date.
	ErrInvalidDateRange = errors.New("end date must be after start date")

	// ErrCarUnavailable is returned when a confirmed or active booking
	// overlaps the requested dates.
	ErrCarUnavailable = errors.New("car is not available for the requested dates")

	// ErrCarNotBookable is returned when the car is out of service.
	ErrCarNotBookable = errors.New("car cannot be booked in its current status")

	// ErrBookingLocked is returned when another booking attempt for the
	// same car is in flight.
	ErrBookingLocked = errors.New("another booking attempt for this car is in progress")

	// ErrBookingNotPending is returned when confirming a booking that is not PENDING.
	ErrBookingNotPending = errors.New("only pending bookings can be confirmed")

	// ErrBookingNotConfirmed is returned when activating a booking that is not CONFIRMED.
	ErrBookingNotConfirmed = errors.New("only confirmed bookings can be activated")

	// ErrBookingNotActive is returned when completing a booking that is not ACTIVE.
	ErrBookingNotActive = errors.New("only active bookings can be completed")

	// ErrBookingNotCancellable is returned when cancelling a booking that is
	// neither PENDING nor CONFIRMED.
	ErrBookingNotCancellable = errors.New("booking cannot be cancelled in current status")

	// ErrNotBookingOwner is returned when a customer operates on another
	// customer's booking.
	ErrNotBookingOwner = errors.New("booking belongs to another customer")

	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrLicenseExpired is returned when creating a booking for a customer
	// whose driver's license has expired.
	ErrLicenseExpired = errors.New("driver's license has expired")
)
