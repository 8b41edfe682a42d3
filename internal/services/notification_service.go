package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"

	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/internal/repositories"
	"github.com/givebridge/givebridge-backend/pkg/pushgateway"
)

// Notifier dispatches a notification to a user. Implementations are
// fire-and-forget: failures are logged, never returned to the caller.
type Notifier interface {
	Notify(ctx context.Context, recipientID primitive.ObjectID, kind, title, message string, data map[string]interface{})
}

// Compile-time check to ensure NotificationService implements Notifier
var _ Notifier = (*NotificationService)(nil)

// NotificationService persists notification records and pushes them through
// the configured delivery gateway.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	gateway          pushgateway.Gateway
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository, gateway pushgateway.Gateway) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		gateway:          gateway,
	}
}

// Notify stores the notification and attempts push delivery. Neither failure
// propagates: the primary operation that triggered the notification must
// never fail because of it.
func (s *NotificationService) Notify(ctx context.Context, recipientID primitive.ObjectID, kind, title, message string, data map[string]interface{}) {
	notification := &models.Notification{
		RecipientID: recipientID,
		Kind:        kind,
		Title:       title,
		Message:     message,
		Data:        data,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		slog.Error("Failed to persist notification", "error", err, "recipientId", recipientID, "kind", kind)
	}

	if s.gateway == nil {
		return
	}
	_, err := s.gateway.Push(pushgateway.Message{
		RecipientID: recipientID.Hex(),
		Kind:        kind,
		Title:       title,
		Body:        message,
		Data:        data,
	})
	if err != nil {
		slog.Warn("Push delivery failed", "error", err, "recipientId", recipientID, "kind", kind)
	}
}

// GetByRecipient returns a page of a user's notifications
func (s *NotificationService) GetByRecipient(ctx context.Context, recipientID primitive.ObjectID, page, limit int) ([]*models.Notification, error) {
	return s.notificationRepo.FindByRecipient(ctx, recipientID, page, limit)
}

// MarkRead marks a notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	return s.notificationRepo.MarkRead(ctx, id)
}

// CountUnread counts a user's unread notifications
func (s *NotificationService) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, recipientID)
}
