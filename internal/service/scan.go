package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/installment-service/internal/models"
	"github.com/Dan9191/installment-service/internal/notify"
	"github.com/Dan9191/installment-service/internal/resilience"
	"github.com/Dan9191/installment-service/internal/utils/dates"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const scanDebounceKey = "notification-scan"

// FailureKind tells a skipped record apart from a storage failure
type FailureKind string

const (
	FailureValidation FailureKind = "validation"
	FailureStorage    FailureKind = "storage"
)

// ScanFailure is one record the scan could not handle
type ScanFailure struct {
	Key   string      `json:"key"`
	Kind  FailureKind `json:"kind"`
	Error string      `json:"error"`
}

// ScanReport summarizes one notification scan pass
type ScanReport struct {
	RunID         string        `json:"run_id"`
	Today         string        `json:"today"`
	StartedAt     time.Time     `json:"started_at"`
	FinishedAt    time.Time     `json:"finished_at"`
	MarkedOverdue int64         `json:"marked_overdue"`
	Checked       int           `json:"checked"`
	Created       int           `json:"created"`
	Skipped       int           `json:"skipped"`
	Invalid       int           `json:"invalid"`
	Failed        int           `json:"failed"`
	LateFees      int           `json:"late_fees"`
	Failures      []ScanFailure `json:"failures,omitempty"`
}

func (r *ScanReport) fail(key string, kind FailureKind, err error) {
	if kind == FailureValidation {
		r.Invalid++
	} else {
		r.Failed++
	}
	r.Failures = append(r.Failures, ScanFailure{Key: key, Kind: kind, Error: err.Error()})
}

// TriggerScan schedules a scan after the debounce window. Triggers arriving inside the window
// share the same pending report.
func (s *Service) TriggerScan() *resilience.Pending[*ScanReport] {
	return s.scans.Execute(scanDebounceKey, func() (*ScanReport, error) {
		return s.ScanNotifications(context.Background()), nil
	}, s.config.ScanDebounce)
}

// CancelScan drops a scheduled scan; waiters on its pending report are abandoned
func (s *Service) CancelScan() {
	s.scans.Clear(scanDebounceKey)
}

// ScanNotifications walks open installments and low-stock products once and raises every alert
// that has not been raised today. Failures are recorded per key; the pass always completes.
func (s *Service) ScanNotifications(ctx context.Context) *ScanReport {
	report := &ScanReport{
		RunID:     uuid.NewString(),
		Today:     s.engine.Today(),
		StartedAt: s.engine.Now(),
	}
	log := s.log.WithFields(logrus.Fields{"run_id": report.RunID, "today": report.Today})
	log.Debug("Notification scan started")

	marked := resilience.WithRetry(ctx, "mark_overdue", func(ctx context.Context) (int64, error) {
		return s.ledger.MarkOverdue(ctx, report.Today)
	}, s.config.RetryMax, s.config.RetryBaseDelay)
	if marked.Success {
		report.MarkedOverdue = marked.Data
	} else {
		log.WithError(marked.Err).Error("Failed to mark overdue installments")
		report.fail("mark_overdue", FailureStorage, marked.Err)
	}

	s.scanInstallments(ctx, log, report)
	s.scanProducts(ctx, log, report)

	report.FinishedAt = s.engine.Now()
	log.WithFields(logrus.Fields{
		"created": report.Created,
		"skipped": report.Skipped,
		"invalid": report.Invalid,
		"failed":  report.Failed,
	}).Info("Notification scan finished")
	return report
}

func (s *Service) scanInstallments(ctx context.Context, log *logrus.Entry, report *ScanReport) {
	open := resilience.WithRetry(ctx, "list_open_installments", s.ledger.ListOpenInstallments, s.config.RetryMax, s.config.RetryBaseDelay)
	if !open.Success {
		log.WithError(open.Err).Error("Failed to list open installments")
		report.fail("installments", FailureStorage, open.Err)
		return
	}

	today, _ := dates.Parse(report.Today)
	rate, accrue := s.lateFeeRate(log)

	for _, inst := range open.Data {
		report.Checked++
		if err := notify.ValidateInstallment(inst); err != nil {
			log.WithField("installment_id", inst.ID).WithError(err).Warn("Skipping invalid installment")
			report.fail(fmt.Sprintf("installment|%d", inst.ID), FailureValidation, err)
			continue
		}

		due, _ := dates.Parse(inst.DueDate)
		days := dates.DaysBetween(today, due)
		switch {
		case days < 0:
			if accrue {
				s.accrueLateFee(ctx, log, report, inst, rate, -days)
			}
			msg := fmt.Sprintf("Installment #%d of %s (sale %d) is %d day(s) overdue since %s, balance %s",
				inst.Number, inst.CustomerName, inst.SaleID, -days, inst.DueDate, inst.Balance.StringFixed(2))
			s.raise(ctx, log, report, notify.OverdueKey(inst.ID), models.NotificationOverdue, msg, customerOf(inst))
		case days <= s.config.UpcomingDays:
			msg := fmt.Sprintf("Installment #%d of %s (sale %d) is due on %s (in %d day(s)), balance %s",
				inst.Number, inst.CustomerName, inst.SaleID, inst.DueDate, days, inst.Balance.StringFixed(2))
			s.raise(ctx, log, report, notify.UpcomingKey(inst.ID), models.NotificationUpcoming, msg, customerOf(inst))
		}
	}
}

func (s *Service) scanProducts(ctx context.Context, log *logrus.Entry, report *ScanReport) {
	low := resilience.WithRetry(ctx, "list_low_stock_products", s.ledger.ListLowStockProducts, s.config.RetryMax, s.config.RetryBaseDelay)
	if !low.Success {
		log.WithError(low.Err).Error("Failed to list low stock products")
		report.fail("products", FailureStorage, low.Err)
		return
	}

	for _, p := range low.Data {
		report.Checked++
		if err := notify.ValidateProduct(p); err != nil {
			log.WithField("product_id", p.ID).WithError(err).Warn("Skipping invalid product")
			report.fail(fmt.Sprintf("product|%d", p.ID), FailureValidation, err)
			continue
		}
		msg := fmt.Sprintf("Product %s is low on stock: %d left (minimum %d)", p.Name, p.Stock, p.MinStock)
		s.raise(ctx, log, report, notify.LowStockKey(p.ID), models.NotificationLowStock, msg, nil)
	}
}

func customerOf(inst models.DueInstallment) *models.Customer {
	return &models.Customer{ID: inst.CustomerID, Name: inst.CustomerName, Email: inst.CustomerEmail}
}

// raise creates the notification for key unless one already exists today, then mails it
func (s *Service) raise(ctx context.Context, log *logrus.Entry, report *ScanReport, key string, t models.NotificationType, msg string, customer *models.Customer) {
	klog := log.WithField("key", key)

	should := resilience.WithRetry(ctx, "should_notify", func(ctx context.Context) (bool, error) {
		return s.engine.ShouldNotify(ctx, key)
	}, s.config.RetryMax, s.config.RetryBaseDelay)
	if !should.Success {
		klog.WithError(should.Err).Error("Failed to check notification")
		report.fail(key, FailureStorage, should.Err)
		return
	}
	if !should.Data {
		report.Skipped++
		return
	}

	created := resilience.WithRetry(ctx, "create_notification", func(ctx context.Context) (*models.Notification, error) {
		return s.engine.Create(ctx, msg, t, key)
	}, s.config.RetryMax, s.config.RetryBaseDelay)
	if !created.Success {
		klog.WithError(created.Err).Error("Failed to create notification")
		report.fail(key, FailureStorage, created.Err)
		return
	}
	report.Created++
	klog.Info("Notification created")

	if s.mailer != nil {
		if err := s.mailer.SendAlert(*created.Data, customer); err != nil {
			klog.WithError(err).Warn("Failed to send alert e-mail")
		}
	}
}

// lateFeeRate fetches the accrual rate once per pass; a failed fetch skips accrual this pass
func (s *Service) lateFeeRate(log *logrus.Entry) (float64, bool) {
	if !s.config.LateFeeEnabled || s.rates == nil {
		return 0, false
	}
	rate, err := s.rates.GetKeyRate()
	if err != nil {
		log.WithError(err).Warn("Key rate unavailable, late fees skipped this pass")
		return 0, false
	}
	return rate, rate > 0
}

// accrueLateFee sets the late fee to principal × rate × days/365, never lowering an existing fee
func (s *Service) accrueLateFee(ctx context.Context, log *logrus.Entry, report *ScanReport, inst models.DueInstallment, rate float64, daysOverdue int) {
	fee := LateFee(inst.Balance.Sub(inst.LateFee), rate, daysOverdue)
	if !fee.GreaterThan(inst.LateFee) {
		return
	}

	key := fmt.Sprintf("late_fee|%d", inst.ID)
	res := resilience.WithRetry(ctx, "update_late_fee", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.ledger.UpdateInstallment(ctx, inst.ID, models.InstallmentUpdate{LateFee: &fee})
	}, s.config.RetryMax, s.config.RetryBaseDelay)
	if !res.Success {
		log.WithField("installment_id", inst.ID).WithError(res.Err).Error("Failed to accrue late fee")
		report.fail(key, FailureStorage, res.Err)
		return
	}
	report.LateFees++
}

// LateFee is simple daily interest on principal at an annual percentage rate, rounded to cents
func LateFee(principal decimal.Decimal, annualRatePercent float64, daysOverdue int) decimal.Decimal {
	if daysOverdue <= 0 || !principal.IsPositive() || annualRatePercent <= 0 {
		return decimal.Zero
	}
	return principal.
		Mul(decimal.NewFromFloat(annualRatePercent)).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(int64(daysOverdue))).
		Div(decimal.NewFromInt(365)).
		Round(2)
}

// PurgeReport counts the notifications removed by Purge
type PurgeReport struct {
	Archived int64 `json:"archived"`
	Expired  int64 `json:"expired"`
}

// Purge removes archived notifications and every record older than the retention window
func (s *Service) Purge(ctx context.Context) (*PurgeReport, error) {
	archived := resilience.WithRetry(ctx, "purge_archived", s.notes.PurgeArchived, s.config.RetryMax, s.config.RetryBaseDelay)
	if !archived.Success {
		return nil, archived.Err
	}

	cutoff := s.engine.Now().AddDate(0, 0, -s.config.RetentionDays)
	expired := resilience.WithRetry(ctx, "purge_expired", func(ctx context.Context) (int64, error) {
		return s.notes.PurgeOlderThan(ctx, cutoff)
	}, s.config.RetryMax, s.config.RetryBaseDelay)
	if !expired.Success {
		return nil, expired.Err
	}

	s.log.Infof("Purged %d archived and %d expired notifications", archived.Data, expired.Data)
	return &PurgeReport{Archived: archived.Data, Expired: expired.Data}, nil
}
