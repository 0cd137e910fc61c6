package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository"
)

// AuthService registers customer accounts and verifies credentials.
type AuthService struct {
	customerRepo repository.CustomerRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(customerRepo repository.CustomerRepository) *AuthService {
	return &AuthService{customerRepo: customerRepo}
}

// RegisterRequest contains the parameters for registering a customer.
type RegisterRequest struct {
	Email         string
	Password      string
	FullName      string
	Phone         string
	Address       string
	City          string
	PostalCode    string
	Country       string
	LicenseNumber string
	LicenseExpiry time.Time
}

// Register creates a customer account. Duplicate email or license number
// surfaces as repository.ErrDuplicate.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	customer := &domain.Customer{
		ID:            uuid.New().String(),
		Email:         req.Email,
		PasswordHash:  string(hash),
		FullName:      req.FullName,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: req.LicenseExpiry,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Login verifies credentials and returns the customer on success.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return customer, nil
}
