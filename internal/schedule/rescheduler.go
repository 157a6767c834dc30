package schedule

import (
	"time"

	"github.com/Dan9191/installment-service/internal/models"
	"github.com/Dan9191/installment-service/internal/utils/dates"
)

// ScheduleNextPendingMonthly re-anchors the next pending installment to one calendar month after
// the latest payment, on the day-of-month of the paid installment's original due date, capped to
// the target month's length. It returns nil when nothing is paid yet or nothing is left to pay.
//
// The result is not compared against the existing due date; callers decide whether to apply it.
// Pass a freshly read installment set: a concurrent payment in the same sale moves the anchor.
func ScheduleNextPendingMonthly(installments []models.Installment) *models.Reschedule {
	var (
		anchor     models.Installment
		anchorPaid time.Time
		found      bool
	)
	for _, inst := range installments {
		if !inst.IsPaid() {
			continue
		}
		paid, err := dates.Parse(inst.PaidDate)
		if err != nil {
			continue
		}
		if !found || paid.After(anchorPaid) || (paid.Equal(anchorPaid) && inst.Number > anchor.Number) {
			anchor, anchorPaid, found = inst, paid, true
		}
	}
	if !found {
		return nil
	}

	anchorDue, err := dates.Parse(anchor.DueDate)
	if err != nil {
		return nil
	}

	var next *models.Installment
	for i := range installments {
		inst := &installments[i]
		if inst.IsPaid() {
			continue
		}
		if next == nil || inst.Number < next.Number {
			next = inst
		}
	}
	if next == nil {
		return nil
	}

	return &models.Reschedule{
		NextPendingID: next.ID,
		NewDueISO:     dates.Format(dates.NextMonthOn(anchorPaid, anchorDue.Day())),
	}
}
