// Package schedule holds the pure installment rules: payment ordering, cadence inference and
// monthly re-anchoring of the next due date.
package schedule

import "github.com/Dan9191/installment-service/internal/models"

// IsSequentialPayment reports whether candidate may be paid now, i.e. every installment of the
// sale numbered below candidate is already paid. Input order does not matter.
func IsSequentialPayment(installments []models.Installment, candidate int) bool {
	for _, inst := range installments {
		if inst.Number < candidate && !inst.IsPaid() {
			return false
		}
	}
	return true
}

// BlockingInstallment returns the lowest-numbered installment below candidate that is not paid,
// i.e. the one IsSequentialPayment waits on. Cancelled installments block too.
func BlockingInstallment(installments []models.Installment, candidate int) (models.Installment, bool) {
	var blocking models.Installment
	found := false
	for _, inst := range installments {
		if inst.Number >= candidate || inst.IsPaid() {
			continue
		}
		if !found || inst.Number < blocking.Number {
			blocking = inst
			found = true
		}
	}
	return blocking, found
}
