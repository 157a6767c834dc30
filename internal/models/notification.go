package models

import "time"

// NotificationType classifies an alert
type NotificationType string

const (
	NotificationOverdue  NotificationType = "overdue"
	NotificationUpcoming NotificationType = "upcoming"
	NotificationLowStock NotificationType = "stock_low"
)

// Notification is a persisted alert. It references its source only through Key.
type Notification struct {
	ID        int64            `json:"id"`
	Key       string           `json:"key"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
	Read      bool             `json:"read"`
	Archived  bool             `json:"archived"`
}
