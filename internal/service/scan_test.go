package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dan9191/installment-service/internal/models"
	"github.com/Dan9191/installment-service/internal/notify"
	"github.com/Dan9191/installment-service/internal/resilience"
	"github.com/Dan9191/installment-service/internal/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func due(id int64, dueDate, balance, lateFee, customer string) models.DueInstallment {
	return models.DueInstallment{
		Installment: models.Installment{
			ID:      id,
			SaleID:  7,
			Number:  1,
			DueDate: dueDate,
			Status:  models.StatusPending,
			Amount:  money(balance),
			Balance: money(balance),
			LateFee: money(lateFee),
		},
		CustomerID:    3,
		CustomerName:  customer,
		CustomerEmail: "buyer@example.com",
	}
}

func (f *fixture) expectNotification(key string, exists bool) {
	f.notes.EXPECT().ExistsWithKeyBetween(gomock.Any(), key, gomock.Any(), gomock.Any()).Return(exists, nil)
	if exists {
		return
	}
	f.notes.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) error {
			n.ID = 100
			return nil
		})
	f.mailer.EXPECT().SendAlert(gomock.Any(), gomock.Any()).Return(nil)
}

func TestScanNotifications(t *testing.T) {
	f := newFixture(t)
	storageDown := errors.New("connection refused")

	f.ledger.EXPECT().MarkOverdue(gomock.Any(), "2025-03-10").Return(int64(1), nil)
	f.ledger.EXPECT().ListOpenInstallments(gomock.Any()).Return([]models.DueInstallment{
		due(31, "2025-03-05", "100", "0", "Ann"),
		due(32, "2025-03-12", "100", "0", "Bob"),
		due(33, "2025-03-30", "100", "0", "Cid"),
		due(34, "2025-03-01", "100", "0", ""),
	}, nil)
	f.ledger.EXPECT().ListLowStockProducts(gomock.Any()).Return([]models.Product{
		{ID: 5, Name: "Widget", Stock: 1, MinStock: 3},
	}, nil)

	var created *models.Notification
	f.notes.EXPECT().ExistsWithKeyBetween(gomock.Any(), notify.OverdueKey(31), gomock.Any(), gomock.Any()).Return(false, nil)
	f.notes.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) error {
			created = n
			return nil
		})
	f.mailer.EXPECT().SendAlert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(n models.Notification, customer *models.Customer) error {
			assert.Equal(t, notify.OverdueKey(31), n.Key)
			require.NotNil(t, customer)
			assert.Equal(t, "Ann", customer.Name)
			assert.Equal(t, "buyer@example.com", customer.Email)
			return errors.New("smtp down")
		})
	f.expectNotification(notify.UpcomingKey(32), true)
	f.notes.EXPECT().ExistsWithKeyBetween(gomock.Any(), notify.LowStockKey(5), gomock.Any(), gomock.Any()).
		Return(false, storageDown).Times(2)

	report := f.svc.ScanNotifications(context.Background())

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "2025-03-10", report.Today)
	assert.Equal(t, int64(1), report.MarkedOverdue)
	assert.Equal(t, 5, report.Checked)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, 1, report.Failed)

	require.NotNil(t, created)
	assert.Equal(t, notify.OverdueKey(31), created.Key)
	assert.Equal(t, models.NotificationOverdue, created.Type)
	assert.Contains(t, created.Message, "Ann")
	assert.Equal(t, testNow, created.CreatedAt)

	require.Len(t, report.Failures, 2)
	assert.Equal(t, service.FailureValidation, report.Failures[0].Kind)
	assert.Equal(t, service.FailureStorage, report.Failures[1].Kind)
	assert.Equal(t, notify.LowStockKey(5), report.Failures[1].Key)
}

func TestScanNotifications_StorageFailuresDoNotStopThePass(t *testing.T) {
	f := newFixture(t)
	storageDown := errors.New("connection refused")

	f.ledger.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).Return(int64(0), storageDown).Times(2)
	f.ledger.EXPECT().ListOpenInstallments(gomock.Any()).Return(nil, storageDown).Times(2)
	f.ledger.EXPECT().ListLowStockProducts(gomock.Any()).Return([]models.Product{
		{ID: 5, Name: "Widget", Stock: 0, MinStock: 3},
		{ID: 6, Name: "", Stock: 0, MinStock: 3},
	}, nil)
	f.notes.EXPECT().ExistsWithKeyBetween(gomock.Any(), notify.LowStockKey(5), gomock.Any(), gomock.Any()).Return(false, nil)
	f.notes.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(nil)
	f.mailer.EXPECT().SendAlert(gomock.Any(), gomock.Nil()).Return(nil)

	report := f.svc.ScanNotifications(context.Background())

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 1, report.Invalid)
	require.Len(t, report.Failures, 3)
	assert.Equal(t, "mark_overdue", report.Failures[0].Key)
	assert.Equal(t, "installments", report.Failures[1].Key)
	assert.Contains(t, report.Failures[0].Error, "2 attempt(s)")
}

func TestScanNotifications_LateFees(t *testing.T) {
	t.Run("fee accrues on principal and never shrinks", func(t *testing.T) {
		f := newFixture(t, withLateFees)

		f.ledger.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).Return(int64(0), nil)
		f.ledger.EXPECT().ListOpenInstallments(gomock.Any()).Return([]models.DueInstallment{
			due(41, "2025-02-28", "1000", "0", "Ann"),
			due(42, "2025-02-28", "1010", "10", "Bob"),
		}, nil)
		f.ledger.EXPECT().ListLowStockProducts(gomock.Any()).Return(nil, nil)
		f.rates.EXPECT().GetKeyRate().Return(21.0, nil)
		f.ledger.EXPECT().UpdateInstallment(gomock.Any(), int64(41), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, upd models.InstallmentUpdate) error {
				require.NotNil(t, upd.LateFee)
				assert.True(t, money("5.75").Equal(*upd.LateFee), upd.LateFee.String())
				assert.Nil(t, upd.DueDate)
				return nil
			})
		f.expectNotification(notify.OverdueKey(41), true)
		f.expectNotification(notify.OverdueKey(42), true)

		report := f.svc.ScanNotifications(context.Background())

		assert.Equal(t, 1, report.LateFees)
		assert.Equal(t, 2, report.Skipped)
		assert.Empty(t, report.Failures)
	})

	t.Run("unavailable rate skips accrual", func(t *testing.T) {
		f := newFixture(t, withLateFees)

		f.ledger.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).Return(int64(0), nil)
		f.ledger.EXPECT().ListOpenInstallments(gomock.Any()).Return([]models.DueInstallment{
			due(41, "2025-02-28", "1000", "0", "Ann"),
		}, nil)
		f.ledger.EXPECT().ListLowStockProducts(gomock.Any()).Return(nil, nil)
		f.rates.EXPECT().GetKeyRate().Return(0.0, errors.New("cbr timeout"))
		f.expectNotification(notify.OverdueKey(41), true)

		report := f.svc.ScanNotifications(context.Background())

		assert.Zero(t, report.LateFees)
		assert.Empty(t, report.Failures)
	})
}

func TestTriggerScan_CoalescesBursts(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.cfg.ScanDebounce = 20 * time.Millisecond })

	f.ledger.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).Return(int64(0), nil).Times(1)
	f.ledger.EXPECT().ListOpenInstallments(gomock.Any()).Return(nil, nil).Times(1)
	f.ledger.EXPECT().ListLowStockProducts(gomock.Any()).Return(nil, nil).Times(1)

	first := f.svc.TriggerScan()
	second := f.svc.TriggerScan()
	assert.Same(t, first, second)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	report, err := first.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", report.Today)
}

func TestPurge(t *testing.T) {
	f := newFixture(t)
	f.notes.EXPECT().PurgeArchived(gomock.Any()).Return(int64(2), nil)
	f.notes.EXPECT().PurgeOlderThan(gomock.Any(), testNow.AddDate(0, 0, -30)).Return(int64(5), nil)

	report, err := f.svc.Purge(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), report.Archived)
	assert.Equal(t, int64(5), report.Expired)
}

func TestPurge_RetriesThenFails(t *testing.T) {
	f := newFixture(t)
	f.notes.EXPECT().PurgeArchived(gomock.Any()).Return(int64(0), errors.New("deadlock")).Times(2)

	_, err := f.svc.Purge(context.Background())

	var se *resilience.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "purge_archived", se.Op)
	assert.Equal(t, 2, se.Attempts)
}

func TestListNotifications_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, 50},
		{"negative", -4, 50},
		{"within range", 20, 20},
		{"capped", 10000, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.notes.EXPECT().ListNotifications(gomock.Any(), tt.want).Return([]models.Notification{}, nil)

			got, err := f.svc.ListNotifications(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestNotificationActions(t *testing.T) {
	f := newFixture(t)
	f.notes.EXPECT().MarkRead(gomock.Any(), int64(9)).Return(nil)
	f.notes.EXPECT().Archive(gomock.Any(), int64(9)).Return(nil)

	assert.NoError(t, f.svc.MarkRead(context.Background(), 9))
	assert.NoError(t, f.svc.Archive(context.Background(), 9))
	assert.ErrorIs(t, f.svc.MarkRead(context.Background(), 0), service.ErrInvalidRequest)
	assert.ErrorIs(t, f.svc.Archive(context.Background(), -1), service.ErrInvalidRequest)
}
