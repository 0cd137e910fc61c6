package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/middleware"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
type CreateBookingRequest struct {
	CarID             string `json:"car_id" binding:"required"`
	StartDate         string `json:"start_date" binding:"required"`
	EndDate           string `json:"end_date" binding:"required"`
	PickupLocation    string `json:"pickup_location"`
	ReturnLocation    string `json:"return_location"`
	InsuranceCost     string `json:"insurance_cost,omitempty"`
	AdditionalCharges string `json:"additional_charges,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// BookingResponse is the HTTP representation of a booking.
type BookingResponse struct {
	ID                string `json:"id"`
	Reference         string `json:"reference"`
	CarID             string `json:"car_id"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	PickupLocation    string `json:"pickup_location,omitempty"`
	ReturnLocation    string `json:"return_location,omitempty"`
	DailyRate         string `json:"daily_rate"`
	NumberOfDays      int    `json:"number_of_days"`
	Subtotal          string `json:"subtotal"`
	InsuranceCost     string `json:"insurance_cost"`
	AdditionalCharges string `json:"additional_charges"`
	TotalCost         string `json:"total_cost"`
	Status            string `json:"status"`
	PaymentStatus     string `json:"payment_status"`
	CreatedAt         string `json:"created_at"`
	ConfirmedAt       string `json:"confirmed_at,omitempty"`
	CompletedAt       string `json:"completed_at,omitempty"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	response := BookingResponse{
		ID:                b.ID,
		Reference:         b.Reference,
		CarID:             b.CarID,
		StartDate:         b.StartDate.Format(time.RFC3339),
		EndDate:           b.EndDate.Format(time.RFC3339),
		PickupLocation:    b.PickupLocation,
		ReturnLocation:    b.ReturnLocation,
		DailyRate:         b.DailyRate.StringFixed(2),
		NumberOfDays:      b.NumberOfDays,
		Subtotal:          b.Subtotal.StringFixed(2),
		InsuranceCost:     b.InsuranceCost.StringFixed(2),
		AdditionalCharges: b.AdditionalCharges.StringFixed(2),
		TotalCost:         b.TotalCost.StringFixed(2),
		Status:            string(b.Status),
		PaymentStatus:     string(b.PaymentStatus),
		CreatedAt:         b.CreatedAt.Format(time.RFC3339),
	}
	if !b.ConfirmedAt.IsZero() {
		response.ConfirmedAt = b.ConfirmedAt.Format(time.RFC3339)
	}
	if !b.CompletedAt.IsZero() {
		response.CompletedAt = b.CompletedAt.Format(time.RFC3339)
	}
	return response
}

// Create handles POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_date"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid end_date"})
		return
	}

	insurance, err := parseAmount(req.InsuranceCost)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid insurance_cost"})
		return
	}
	additional, err := parseAmount(req.AdditionalCharges)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid additional_charges"})
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), service.CreateBookingRequest{
		CustomerID:        middleware.CustomerID(c),
		CarID:             req.CarID,
		StartDate:         start,
		EndDate:           end,
		PickupLocation:    req.PickupLocation,
		ReturnLocation:    req.ReturnLocation,
		InsuranceCost:     insurance,
		AdditionalCharges: additional,
		Notes:             req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// List handles GET /v1/bookings
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookingService.ListByCustomer(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		response = append(response, toBookingResponse(booking))
	}
	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.owned(c)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// Confirm handles POST /v1/bookings/:id/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.bookingService.Confirm)
}

// Activate handles POST /v1/bookings/:id/activate
func (h *BookingHandler) Activate(c *gin.Context) {
	h.transition(c, h.bookingService.Activate)
}

// Cancel handles POST /v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.bookingService.Cancel)
}

// Complete handles POST /v1/bookings/:id/complete
func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, h.bookingService.Complete)
}

// transition runs a lifecycle operation after an ownership check.
func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, id string) (*domain.Booking, error)) {
	if _, err := h.owned(c); err != nil {
		respondError(c, err)
		return
	}

	booking, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// owned loads the booking and verifies it belongs to the caller.
func (h *BookingHandler) owned(c *gin.Context) (*domain.Booking, error) {
	booking, err := h.bookingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != middleware.CustomerID(c) {
		return nil, service.ErrNotBookingOwner
	}
	return booking, nil
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, value)
}

// parseAmount parses an optional decimal amount; empty means zero.
func parseAmount(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}
