// Package notify derives alert keys, validates alert sources and decides, once per calendar day,
// whether an alert for a key should be raised.
package notify

import (
	"fmt"

	"github.com/Dan9191/installment-service/internal/models"
)

// OverdueKey identifies the overdue alert of an installment
func OverdueKey(installmentID int64) string {
	return key(models.NotificationOverdue, installmentID)
}

// UpcomingKey identifies the upcoming-due alert of an installment
func UpcomingKey(installmentID int64) string {
	return key(models.NotificationUpcoming, installmentID)
}

// LowStockKey identifies the low-stock alert of a product
func LowStockKey(productID int64) string {
	return key(models.NotificationLowStock, productID)
}

func key(t models.NotificationType, id int64) string {
	return fmt.Sprintf("%s|%d", t, id)
}
