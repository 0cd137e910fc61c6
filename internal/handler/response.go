package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(code, ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidCustomerID),
		errors.Is(err, service.ErrInvalidCarID),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrLicenseExpired):
		return http.StatusBadRequest

	// Auth errors
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotBookingOwner):
		return http.StatusForbidden

	// Conflict errors: overlapping dates, forbidden transitions,
	// uniqueness violations
	case errors.Is(err, service.ErrCarUnavailable),
		errors.Is(err, service.ErrCarNotBookable),
		errors.Is(err, service.ErrBookingLocked),
		errors.Is(err, service.ErrBookingNotPending),
		errors.Is(err, service.ErrBookingNotConfirmed),
		errors.Is(err, service.ErrBookingNotActive),
		errors.Is(err, service.ErrBookingNotCancellable),
		errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrCarInUse):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
