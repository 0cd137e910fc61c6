package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/middleware"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/service"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	authService *service.AuthService
	jwtSecret   string
	tokenTTL    time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// RegisterRequest is the HTTP request body for registering a customer.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	FullName      string `json:"full_name" binding:"required"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	LicenseNumber string `json:"license_number" binding:"required"`
	LicenseExpiry string `json:"license_expiry" binding:"required"`
}

// LoginRequest is the HTTP request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CustomerResponse is the HTTP representation of a customer account.
type CustomerResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	LicenseNumber string `json:"license_number"`
	LicenseExpiry string `json:"license_expiry"`
	TotalRentals  int    `json:"total_rentals"`
	TotalSpent    string `json:"total_spent"`
	IsVerified    bool   `json:"is_verified"`
}

// TokenResponse carries a bearer token and the authenticated customer.
type TokenResponse struct {
	Token    string           `json:"token"`
	Customer CustomerResponse `json:"customer"`
}

func toCustomerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            customer.ID,
		Email:         customer.Email,
		FullName:      customer.FullName,
		Phone:         customer.Phone,
		City:          customer.City,
		Country:       customer.Country,
		LicenseNumber: customer.LicenseNumber,
		LicenseExpiry: customer.LicenseExpiry.Format(time.DateOnly),
		TotalRentals:  customer.TotalRentals,
		TotalSpent:    customer.TotalSpent.StringFixed(2),
		IsVerified:    customer.IsVerified,
	}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	expiry, err := time.Parse(time.DateOnly, req.LicenseExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid license_expiry"})
		return
	}

	customer, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		Email:         req.Email,
		Password:      req.Password,
		FullName:      req.FullName,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: expiry,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, customer.ID, h.tokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, TokenResponse{Token: token, Customer: toCustomerResponse(customer)})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	customer, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, customer.ID, h.tokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, TokenResponse{Token: token, Customer: toCustomerResponse(customer)})
}
