package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/service"
)

// SyncHandler exposes the ERP synchronization operations.
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// PullSummaryResponse reports the outcome of a vehicle pull.
type PullSummaryResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}

// PullCars handles POST /v1/sync/cars/pull
func (h *SyncHandler) PullCars(c *gin.Context) {
	summary, err := h.syncService.PullCars(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "erp unreachable"})
		return
	}

	respondJSON(c, http.StatusOK, PullSummaryResponse{
		Created: summary.Created,
		Updated: summary.Updated,
		Failed:  summary.Failed,
		Total:   summary.Total,
	})
}

// PushBookingResponse reports the external ID assigned to a pushed booking.
type PushBookingResponse struct {
	BookingID string `json:"booking_id"`
	OdooID    int64  `json:"odoo_id"`
	Pushed    bool   `json:"pushed"`
}

// PushBooking handles POST /v1/sync/bookings/:id/push
func (h *SyncHandler) PushBooking(c *gin.Context) {
	bookingID := c.Param("id")

	odooID, err := h.syncService.PushBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, PushBookingResponse{
		BookingID: bookingID,
		OdooID:    odooID,
		Pushed:    odooID != 0,
	})
}

// EntityStatusResponse reports sync coverage for one entity type.
type EntityStatusResponse struct {
	Synced int `json:"synced"`
	Total  int `json:"total"`
}

// StatusResponse reports connection health and per-entity sync coverage.
type StatusResponse struct {
	Connected bool                 `json:"connected"`
	Cars      EntityStatusResponse `json:"cars"`
	Customers EntityStatusResponse `json:"customers"`
	Bookings  EntityStatusResponse `json:"bookings"`
}

// Status handles GET /v1/sync/status
func (h *SyncHandler) Status(c *gin.Context) {
	status, err := h.syncService.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, StatusResponse{
		Connected: status.Connected,
		Cars:      EntityStatusResponse{Synced: status.Cars.Synced, Total: status.Cars.Total},
		Customers: EntityStatusResponse{Synced: status.Customers.Synced, Total: status.Customers.Total},
		Bookings:  EntityStatusResponse{Synced: status.Bookings.Synced, Total: status.Bookings.Total},
	})
}
