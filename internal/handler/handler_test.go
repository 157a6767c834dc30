package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/installment-service/internal/config"
	"github.com/Dan9191/installment-service/internal/handler"
	"github.com/Dan9191/installment-service/internal/models"
	"github.com/Dan9191/installment-service/internal/notify"
	"github.com/Dan9191/installment-service/internal/repository"
	"github.com/Dan9191/installment-service/internal/service"
	mock_service "github.com/Dan9191/installment-service/internal/service/mocks"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	ledger *mock_service.MockLedgerRepository
	notes  *mock_service.MockNotificationRepository
	router *mux.Router
}

func newTestAPI(t *testing.T) *testAPI {
	ctrl := gomock.NewController(t)
	api := &testAPI{
		ledger: mock_service.NewMockLedgerRepository(ctrl),
		notes:  mock_service.NewMockNotificationRepository(ctrl),
		router: mux.NewRouter(),
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{RetryMax: 1, ScanDebounce: time.Hour, UpcomingDays: 3, RetentionDays: 30}
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	engine := notify.NewEngine(api.notes, time.UTC).WithClock(func() time.Time { return now })
	svc := service.NewService(api.ledger, api.notes, engine, log, cfg)
	t.Cleanup(svc.CancelScan)

	handler.NewHandler(svc, log).Register(api.router)
	return api
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func sale() []models.Installment {
	return []models.Installment{
		{ID: 11, SaleID: 7, Number: 1, DueDate: "2025-01-10", Status: models.StatusPending, Amount: decimal.NewFromInt(100), Balance: decimal.NewFromInt(100)},
		{ID: 12, SaleID: 7, Number: 2, DueDate: "2025-02-10", Status: models.StatusPending, Amount: decimal.NewFromInt(100), Balance: decimal.NewFromInt(100)},
	}
}

func TestGetSchedule(t *testing.T) {
	api := newTestAPI(t)
	api.ledger.EXPECT().GetInstallmentsBySale(gomock.Any(), int64(7)).Return(sale(), nil)

	rec := api.do(http.MethodGet, "/sales/7/installments", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Schedule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(7), got.SaleID)
	assert.Len(t, got.Installments, 2)
	assert.Equal(t, models.StatusOverdue, got.Installments[0].Status)
}

func TestPay(t *testing.T) {
	t.Run("out of sequence answers conflict", func(t *testing.T) {
		api := newTestAPI(t)
		s := sale()
		api.ledger.EXPECT().GetInstallment(gomock.Any(), int64(12)).Return(&s[1], nil)
		api.ledger.EXPECT().GetInstallmentsBySale(gomock.Any(), int64(7)).Return(s, nil)

		rec := api.do(http.MethodPost, "/installments/12/pay", `{"paid_date":"2025-03-01"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), string(service.PaymentOutOfSequence))
	})

	t.Run("partial payment", func(t *testing.T) {
		api := newTestAPI(t)
		s := sale()
		amount := decimal.RequireFromString("25.50")
		api.ledger.EXPECT().GetInstallment(gomock.Any(), int64(11)).Return(&s[0], nil)
		api.ledger.EXPECT().GetInstallmentsBySale(gomock.Any(), int64(7)).Return(s, nil).Times(2)
		api.ledger.EXPECT().ApplyPartialPayment(gomock.Any(), int64(11), gomock.Any(), "2025-03-01").
			Return(&models.Payment{ID: 1, InstallmentID: 11, SaleID: 7, Amount: amount, PaidDate: "2025-03-01"}, nil)

		rec := api.do(http.MethodPost, "/installments/11/pay", `{"paid_date":"2025-03-01","amount":"25.50"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got service.PaymentResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, service.PaymentRecorded, got.Status)
		assert.False(t, got.Settled)
	})

	t.Run("bad body", func(t *testing.T) {
		api := newTestAPI(t)
		rec := api.do(http.MethodPost, "/installments/11/pay", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("installment 5: %w", repository.ErrNotFound), http.StatusNotFound},
		{"already paid", repository.ErrAlreadyPaid, http.StatusConflict},
		{"cancelled", repository.ErrCancelled, http.StatusConflict},
		{"storage", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			api.ledger.EXPECT().GetInstallment(gomock.Any(), int64(5)).Return(nil, tt.err)

			rec := api.do(http.MethodPost, "/installments/5/pay", "")

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "connection refused")
			}
		})
	}
}

func TestRevertPayment(t *testing.T) {
	api := newTestAPI(t)
	s := sale()
	s[0].Status = models.StatusPaid
	s[0].PaidDate = "2025-01-09"
	s[1].Status = models.StatusPaid
	s[1].PaidDate = "2025-02-09"
	api.ledger.EXPECT().GetInstallment(gomock.Any(), int64(11)).Return(&s[0], nil)
	api.ledger.EXPECT().GetInstallmentsBySale(gomock.Any(), int64(7)).Return(s, nil)

	rec := api.do(http.MethodPost, "/installments/11/payments/3/revert", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestNotifications(t *testing.T) {
	api := newTestAPI(t)
	api.notes.EXPECT().ListNotifications(gomock.Any(), 10).Return([]models.Notification{{ID: 1, Key: "overdue|11"}}, nil)
	api.notes.EXPECT().MarkRead(gomock.Any(), int64(1)).Return(nil)
	api.notes.EXPECT().Archive(gomock.Any(), int64(1)).Return(repository.ErrNotFound)
	api.notes.EXPECT().PurgeArchived(gomock.Any()).Return(int64(4), nil)

	rec := api.do(http.MethodGet, "/notifications?limit=10", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "overdue|11")

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/notifications?limit=ten", "").Code)
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/notifications/1/read", "").Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, "/notifications/1/archive", "").Code)

	rec = api.do(http.MethodDelete, "/notifications/archived", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":4}`, rec.Body.String())
}

func TestCustomerOwed(t *testing.T) {
	api := newTestAPI(t)
	api.ledger.EXPECT().GetInstallmentsByCustomer(gomock.Any(), int64(3)).Return(sale(), nil)

	rec := api.do(http.MethodGet, "/customers/3/owed", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.CustomerBalance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, decimal.NewFromInt(200).Equal(got.TotalOwed))
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/sales/abc/installments", "").Code)
}
