package service

import (
	"context"
	"time"

	"github.com/Dan9191/installment-service/internal/models"
	"github.com/shopspring/decimal"
)

// LedgerRepository is the installment storage the service depends on
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type LedgerRepository interface {
	GetInstallment(ctx context.Context, id int64) (*models.Installment, error)
	GetInstallmentsBySale(ctx context.Context, saleID int64) ([]models.Installment, error)
	GetInstallmentsByCustomer(ctx context.Context, customerID int64) ([]models.Installment, error)
	ListOpenInstallments(ctx context.Context) ([]models.DueInstallment, error)
	MarkInstallmentPaid(ctx context.Context, id int64, paidDate string) (*models.Payment, error)
	ApplyPartialPayment(ctx context.Context, id int64, amount decimal.Decimal, paidDate string) (*models.Payment, error)
	UpdateInstallment(ctx context.Context, id int64, upd models.InstallmentUpdate) error
	MarkOverdue(ctx context.Context, today string) (int64, error)
	GetPaymentsBySale(ctx context.Context, saleID int64) ([]models.Payment, error)
	RevertPayment(ctx context.Context, installmentID, paymentID int64) error
	ListLowStockProducts(ctx context.Context) ([]models.Product, error)
}

// NotificationRepository is the notification storage behind the dedup engine and the user actions
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ExistsWithKeyBetween(ctx context.Context, key string, from, to time.Time) (bool, error)
	ListNotifications(ctx context.Context, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	Archive(ctx context.Context, id int64) error
	PurgeArchived(ctx context.Context) (int64, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// KeyRateProvider supplies the annual rate, in percent, used to accrue late fees
type KeyRateProvider interface {
	GetKeyRate() (float64, error)
}

// AlertSender delivers a created notification outside the application. customer is the owner of
// the installment an alert is about, nil for product alerts.
type AlertSender interface {
	SendAlert(n models.Notification, customer *models.Customer) error
}
