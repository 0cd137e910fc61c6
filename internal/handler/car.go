package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/service"
)

// CarHandler handles HTTP requests for the car catalog.
type CarHandler struct {
	carService          *service.CarService
	availabilityService *service.AvailabilityService
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(carService *service.CarService, availabilityService *service.AvailabilityService) *CarHandler {
	return &CarHandler{
		carService:          carService,
		availabilityService: availabilityService,
	}
}

// ListCarsRequest is the query-string filter for listing cars.
type ListCarsRequest struct {
	FuelType     string `form:"fuel" binding:"omitempty,fueltype"`
	Transmission string `form:"transmission" binding:"omitempty,transmission"`
	Seats        int    `form:"seats" binding:"omitempty,min=1"`
	Search       string `form:"search"`
	OrderBy      string `form:"order_by" binding:"omitempty,oneof=daily_rate year created_at"`
	Descending   bool   `form:"desc"`
}

// CarResponse is the HTTP representation of a car.
type CarResponse struct {
	ID                 string `json:"id"`
	RegistrationNumber string `json:"registration_number"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
	Color              string `json:"color,omitempty"`
	Mileage            int    `json:"mileage,omitempty"`
	FuelType           string `json:"fuel_type"`
	Transmission       string `json:"transmission"`
	Seats              int    `json:"seats"`
	DailyRate          string `json:"daily_rate"`
	Status             string `json:"status"`
	Description        string `json:"description,omitempty"`
	Synced             bool   `json:"synced"`
}

func toCarResponse(car *domain.Car) CarResponse {
	return CarResponse{
		ID:                 car.ID,
		RegistrationNumber: car.RegistrationNumber,
		Make:               car.Make,
		Model:              car.Model,
		Year:               car.Year,
		Color:              car.Color,
		Mileage:            car.Mileage,
		FuelType:           string(car.FuelType),
		Transmission:       string(car.Transmission),
		Seats:              car.Seats,
		DailyRate:          car.DailyRate.StringFixed(2),
		Status:             string(car.Status),
		Description:        car.Description,
		Synced:             car.OdooID != 0,
	}
}

// List handles GET /v1/cars
// Only AVAILABLE cars are listed to customers.
func (h *CarHandler) List(c *gin.Context) {
	var req ListCarsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid filter parameters"})
		return
	}

	cars, err := h.carService.List(c.Request.Context(), repository.CarFilter{
		Status:       domain.CarStatusAvailable,
		FuelType:     domain.FuelType(req.FuelType),
		Transmission: domain.Transmission(req.Transmission),
		Seats:        req.Seats,
		Search:       req.Search,
		OrderBy:      req.OrderBy,
		Descending:   req.Descending,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		response = append(response, toCarResponse(car))
	}
	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/cars/:id
func (h *CarHandler) Get(c *gin.Context) {
	car, err := h.carService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toCarResponse(car))
}

// AvailabilityResponse is the HTTP response for a car's availability window.
type AvailabilityResponse struct {
	CarID          string   `json:"car_id"`
	AvailableDates []string `json:"available_dates"`
}

// Availability handles GET /v1/cars/:id/availability
// Returns the available dates for the next 30 days.
func (h *CarHandler) Availability(c *gin.Context) {
	carID := c.Param("id")

	// The car must exist before we answer for its calendar.
	if _, err := h.carService.Get(c.Request.Context(), carID); err != nil {
		respondError(c, err)
		return
	}

	dates, err := h.availabilityService.AvailableDates(c.Request.Context(), carID, 30)
	if err != nil {
		respondError(c, err)
		return
	}

	response := AvailabilityResponse{CarID: carID, AvailableDates: make([]string, 0, len(dates))}
	for _, date := range dates {
		response.AvailableDates = append(response.AvailableDates, date.Format(time.DateOnly))
	}
	respondJSON(c, http.StatusOK, response)
}

// Delete handles DELETE /v1/cars/:id
func (h *CarHandler) Delete(c *gin.Context) {
	if err := h.carService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
