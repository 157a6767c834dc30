package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/installment-service/internal/models"
)

// CreateNotification stores a new notification record
func (r *Repository) CreateNotification(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO sales.notifications (key, message, type, created_at, read, archived)
		VALUES ($1, $2, $3, $4, FALSE, FALSE)
		RETURNING id`
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if err := r.db.QueryRowContext(ctx, query, n.Key, n.Message, string(n.Type), n.CreatedAt).Scan(&n.ID); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ExistsWithKeyBetween reports whether a record with key was created in [from, to)
func (r *Repository) ExistsWithKeyBetween(ctx context.Context, key string, from, to time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM sales.notifications
			WHERE key = $1 AND created_at >= $2 AND created_at < $3
		)`, key, from, to).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check notification key: %w", err)
	}
	return exists, nil
}

// ListNotifications retrieves the newest non-archived notifications
func (r *Repository) ListNotifications(ctx context.Context, limit int) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, key, message, type, created_at, read, archived
		FROM sales.notifications
		WHERE archived = FALSE
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Key, &n.Message, &n.Type, &n.CreatedAt, &n.Read, &n.Archived); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read
func (r *Repository) MarkRead(ctx context.Context, id int64) error {
	return r.setNotificationFlag(ctx, id, "read")
}

// Archive flags a notification as archived
func (r *Repository) Archive(ctx context.Context, id int64) error {
	return r.setNotificationFlag(ctx, id, "archived")
}

func (r *Repository) setNotificationFlag(ctx context.Context, id int64, column string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sales.notifications SET `+column+` = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to update notification %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("notification %d: %w", id, ErrNotFound)
	}
	return nil
}

// PurgeArchived deletes every archived notification
func (r *Repository) PurgeArchived(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales.notifications WHERE archived = TRUE`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge archived notifications: %w", err)
	}
	return res.RowsAffected()
}

// PurgeOlderThan deletes notifications created before cutoff
func (r *Repository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales.notifications WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge notifications: %w", err)
	}
	return res.RowsAffected()
}
