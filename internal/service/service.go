package service

import (
	"errors"

	"github.com/Dan9191/installment-service/internal/config"
	"github.com/Dan9191/installment-service/internal/notify"
	"github.com/Dan9191/installment-service/internal/resilience"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidRequest is returned for malformed payment input
	ErrInvalidRequest = errors.New("invalid request")
	// ErrSaleNotFound is returned when a sale has no installments
	ErrSaleNotFound = errors.New("sale not found")
	// ErrRevertOutOfSequence is returned when a later installment of the sale is already paid
	ErrRevertOutOfSequence = errors.New("a later installment is already paid")
)

// Service handles business logic
type Service struct {
	ledger LedgerRepository
	notes  NotificationRepository
	engine *notify.Engine
	rates  KeyRateProvider
	mailer AlertSender
	log    *logrus.Logger
	config *config.Config
	scans  *resilience.Debouncer[*ScanReport]
}

// Option configures optional collaborators of the service
type Option func(*Service)

// WithKeyRates enables late-fee accrual from the given rate source
func WithKeyRates(rates KeyRateProvider) Option {
	return func(s *Service) { s.rates = rates }
}

// WithAlertSender forwards every created notification to sender
func WithAlertSender(sender AlertSender) Option {
	return func(s *Service) { s.mailer = sender }
}

// NewService initializes a new service
func NewService(ledger LedgerRepository, notes NotificationRepository, engine *notify.Engine, log *logrus.Logger, cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		ledger: ledger,
		notes:  notes,
		engine: engine,
		log:    log,
		config: cfg,
		scans:  resilience.NewDebouncer[*ScanReport](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
