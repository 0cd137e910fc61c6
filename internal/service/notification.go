package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingCreated   NotificationType = "BOOKING_CREATED"
	NotificationBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationBookingCompleted NotificationType = "BOOKING_COMPLETED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have an email client and push
	// notification client; delivery here is log-backed.
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBookingCreated notifies the customer that their booking was received.
func (s *NotificationService) NotifyBookingCreated(ctx context.Context, booking *domain.Booking) error {
	return s.send(ctx, Notification{
		Type:        NotificationBookingCreated,
		RecipientID: booking.CustomerID,
		Title:       "Booking Received",
		Message:     fmt.Sprintf("Booking %s is pending confirmation. Total: %s", booking.Reference, booking.TotalCost),
		CreatedAt:   time.Now(),
	})
}

// NotifyBookingConfirmed notifies the customer that their booking is confirmed.
func (s *NotificationService) NotifyBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	return s.send(ctx, Notification{
		Type:        NotificationBookingConfirmed,
		RecipientID: booking.CustomerID,
		Title:       "Booking Confirmed",
		Message:     fmt.Sprintf("Booking %s is confirmed. Pickup at %s", booking.Reference, booking.PickupLocation),
		CreatedAt:   time.Now(),
	})
}

// NotifyBookingCancelled notifies the customer that their booking was cancelled.
func (s *NotificationService) NotifyBookingCancelled(ctx context.Context, booking *domain.Booking) error {
	return s.send(ctx, Notification{
		Type:        NotificationBookingCancelled,
		RecipientID: booking.CustomerID,
		Title:       "Booking Cancelled",
		Message:     fmt.Sprintf("Booking %s has been cancelled", booking.Reference),
		CreatedAt:   time.Now(),
	})
}

// NotifyBookingCompleted notifies the customer that their rental is complete.
func (s *NotificationService) NotifyBookingCompleted(ctx context.Context, booking *domain.Booking) error {
	return s.send(ctx, Notification{
		Type:        NotificationBookingCompleted,
		RecipientID: booking.CustomerID,
		Title:       "Rental Complete",
		Message:     fmt.Sprintf("Booking %s is complete. Total charged: %s", booking.Reference, booking.TotalCost),
		CreatedAt:   time.Now(),
	})
}

// send delivers a notification (log-backed implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)
	return nil
}
