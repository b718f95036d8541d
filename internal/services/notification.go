package services

import (
	"log"

	"github.com/example/visualhealth/internal/models"
)

// NotificationService handles outbound notification delivery. No provider
// is integrated; records are persisted by the handler and delivery is a
// logged no-op.
type NotificationService struct{}

// NewNotificationService creates a NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// Dispatch would hand the notification to a push/email provider.
func (s *NotificationService) Dispatch(n models.Notification) error {
	target := n.UserID
	if target == "" {
		target = "broadcast"
	}
	log.Printf("[Notification] delivery skipped (no provider configured): to=%s title=%q", target, n.Title)
	return nil
}
