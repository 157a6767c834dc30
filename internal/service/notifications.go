package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/installment-service/internal/models"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 500
)

// ListNotifications returns the newest non-archived notifications. A non-positive limit falls back
// to the default page size.
func (s *Service) ListNotifications(ctx context.Context, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}
	notifications, err := s.notes.ListNotifications(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: notification id must be positive", ErrInvalidRequest)
	}
	return s.notes.MarkRead(ctx, id)
}

// Archive hides a notification from the list until it is purged
func (s *Service) Archive(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: notification id must be positive", ErrInvalidRequest)
	}
	return s.notes.Archive(ctx, id)
}

// PurgeArchived deletes every archived notification
func (s *Service) PurgeArchived(ctx context.Context) (int64, error) {
	n, err := s.notes.PurgeArchived(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Infof("Purged %d archived notifications", n)
	return n, nil
}
