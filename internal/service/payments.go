package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/installment-service/internal/models"
	"github.com/Dan9191/installment-service/internal/schedule"
	"github.com/Dan9191/installment-service/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the outcome of a payment request
type PaymentStatus string

const (
	PaymentRecorded      PaymentStatus = "recorded"
	PaymentOutOfSequence PaymentStatus = "out_of_sequence"
)

// PaymentRequest asks to pay an installment. A nil Amount settles the whole balance; an empty
// PaidDate means today.
type PaymentRequest struct {
	InstallmentID int64            `json:"installment_id"`
	PaidDate      string           `json:"paid_date"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
}

// PaymentResult reports what a payment request did. An out-of-order request is not an error: it
// comes back with PaymentOutOfSequence and a warning for the user.
type PaymentResult struct {
	Status      PaymentStatus      `json:"status"`
	Payment     *models.Payment    `json:"payment,omitempty"`
	Settled     bool               `json:"settled"`
	Rescheduled *models.Reschedule `json:"rescheduled,omitempty"`
	Warning     string             `json:"warning,omitempty"`
}

// RecordPayment pays an installment after checking the sale's payment order. When the payment
// settles a monthly-cadence installment, the next pending installment is re-anchored.
func (s *Service) RecordPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	if req.PaidDate == "" {
		req.PaidDate = s.engine.Today()
	}
	if _, err := dates.Parse(req.PaidDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}

	inst, err := s.ledger.GetInstallment(ctx, req.InstallmentID)
	if err != nil {
		return nil, err
	}
	installments, err := s.ledger.GetInstallmentsBySale(ctx, inst.SaleID)
	if err != nil {
		return nil, err
	}

	if !schedule.IsSequentialPayment(installments, inst.Number) {
		s.log.Warnf("Out-of-sequence payment refused for installment %d (sale %d, #%d)", inst.ID, inst.SaleID, inst.Number)
		return &PaymentResult{
			Status:  PaymentOutOfSequence,
			Warning: sequenceWarning(installments, inst.Number),
		}, nil
	}

	var payment *models.Payment
	if req.Amount == nil {
		payment, err = s.ledger.MarkInstallmentPaid(ctx, inst.ID, req.PaidDate)
	} else {
		payment, err = s.ledger.ApplyPartialPayment(ctx, inst.ID, *req.Amount, req.PaidDate)
	}
	if err != nil {
		return nil, err
	}
	s.log.Infof("Payment of %s recorded for installment %d (sale %d)", payment.Amount.StringFixed(2), inst.ID, inst.SaleID)

	result := &PaymentResult{Status: PaymentRecorded, Payment: payment}

	// read again: a concurrent payment in the same sale changes the anchor
	fresh, err := s.ledger.GetInstallmentsBySale(ctx, inst.SaleID)
	if err != nil {
		s.log.Errorf("Failed to reload sale %d after payment: %v", inst.SaleID, err)
		result.Warning = "payment recorded, schedule not refreshed"
		return result, nil
	}
	for _, f := range fresh {
		if f.ID == inst.ID {
			result.Settled = f.IsPaid()
		}
	}

	if result.Settled {
		result.Rescheduled, result.Warning = s.reschedule(ctx, inst.SaleID, fresh)
	}
	s.TriggerScan()
	return result, nil
}

func sequenceWarning(installments []models.Installment, candidate int) string {
	blocking, ok := schedule.BlockingInstallment(installments, candidate)
	if !ok {
		return fmt.Sprintf("earlier installments must be paid before #%d", candidate)
	}
	if blocking.Status == models.StatusCancelled {
		return fmt.Sprintf("installment #%d is cancelled and blocks payment of #%d", blocking.Number, candidate)
	}
	return fmt.Sprintf("installment #%d must be paid before #%d", blocking.Number, candidate)
}

func (s *Service) reschedule(ctx context.Context, saleID int64, installments []models.Installment) (*models.Reschedule, string) {
	if schedule.InferPeriodType(installments) != models.PeriodMonthly {
		return nil, ""
	}
	next := schedule.ScheduleNextPendingMonthly(installments)
	if next == nil {
		return nil, ""
	}

	var current models.Installment
	for _, inst := range installments {
		if inst.ID == next.NextPendingID {
			current = inst
		}
	}

	upd := models.InstallmentUpdate{}
	if current.DueDate != next.NewDueISO {
		due := next.NewDueISO
		upd.DueDate = &due
	}
	// a stored overdue flag must not survive a due date that is no longer past
	if current.Status == models.StatusOverdue && next.NewDueISO >= s.engine.Today() {
		pending := models.StatusPending
		upd.Status = &pending
	}
	if upd.Empty() {
		return next, ""
	}

	if err := s.ledger.UpdateInstallment(ctx, next.NextPendingID, upd); err != nil {
		s.log.Errorf("Failed to reschedule installment %d of sale %d: %v", next.NextPendingID, saleID, err)
		return nil, "payment recorded, next due date not updated"
	}
	s.log.Infof("Installment %d of sale %d rescheduled to %s", next.NextPendingID, saleID, next.NewDueISO)
	return next, ""
}

// RevertPayment undoes a payment. Only the latest paid installment of a sale may be reverted so
// the front-to-back payment order stays intact.
func (s *Service) RevertPayment(ctx context.Context, installmentID, paymentID int64) error {
	inst, err := s.ledger.GetInstallment(ctx, installmentID)
	if err != nil {
		return err
	}
	installments, err := s.ledger.GetInstallmentsBySale(ctx, inst.SaleID)
	if err != nil {
		return err
	}
	for _, other := range installments {
		if other.Number > inst.Number && other.IsPaid() {
			return fmt.Errorf("installment %d: %w (#%d)", installmentID, ErrRevertOutOfSequence, other.Number)
		}
	}

	if err := s.ledger.RevertPayment(ctx, installmentID, paymentID); err != nil {
		return err
	}
	s.log.Infof("Payment %d of installment %d reverted", paymentID, installmentID)
	s.TriggerScan()
	return nil
}

// GetSchedule returns a sale's installments with their effective status and inferred cadence
func (s *Service) GetSchedule(ctx context.Context, saleID int64) (*models.Schedule, error) {
	installments, err := s.ledger.GetInstallmentsBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if len(installments) == 0 {
		return nil, fmt.Errorf("sale %d: %w", saleID, ErrSaleNotFound)
	}

	today := s.engine.Today()
	models.SortInstallments(installments)
	for i := range installments {
		installments[i].Status = installments[i].EffectiveStatus(today)
	}
	return &models.Schedule{
		SaleID:       saleID,
		PeriodType:   schedule.InferPeriodType(installments),
		Installments: installments,
	}, nil
}

// GetPayments returns the payments of a sale
func (s *Service) GetPayments(ctx context.Context, saleID int64) ([]models.Payment, error) {
	return s.ledger.GetPaymentsBySale(ctx, saleID)
}

// CustomerTotalOwed derives what a customer still owes across all sales
func (s *Service) CustomerTotalOwed(ctx context.Context, customerID int64) (*models.CustomerBalance, error) {
	installments, err := s.ledger.GetInstallmentsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &models.CustomerBalance{
		CustomerID: customerID,
		TotalOwed:  models.TotalOwed(installments),
	}, nil
}
