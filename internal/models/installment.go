package models

import (
	"github.com/shopspring/decimal"
)

// InstallmentStatus is the lifecycle state of an installment
type InstallmentStatus string

const (
	StatusPending   InstallmentStatus = "pending"
	StatusPaid      InstallmentStatus = "paid"
	StatusOverdue   InstallmentStatus = "overdue"
	StatusCancelled InstallmentStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s InstallmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// Installment represents one scheduled partial payment of a sale
type Installment struct {
	ID       int64             `json:"id"`
	SaleID   int64             `json:"sale_id"`
	Number   int               `json:"installment_number"`
	DueDate  string            `json:"due_date"`            // Format: YYYY-MM-DD
	PaidDate string            `json:"paid_date,omitempty"` // Format: YYYY-MM-DD, set only when paid
	Status   InstallmentStatus `json:"status"`
	Amount   decimal.Decimal   `json:"amount"`
	Balance  decimal.Decimal   `json:"balance"`  // amount plus late fee minus recorded payments
	LateFee  decimal.Decimal   `json:"late_fee"` // total fee already folded into Balance
}

// IsPaid reports whether the installment has been settled
func (i Installment) IsPaid() bool {
	return i.Status == StatusPaid
}

// EffectiveStatus derives pending or overdue from the due date for any open installment, so a
// stored overdue flag does not outlive a due date moved into the future.
// today and DueDate are both YYYY-MM-DD, so lexical order is calendar order.
func (i Installment) EffectiveStatus(today string) InstallmentStatus {
	if i.Status == StatusPaid || i.Status == StatusCancelled {
		return i.Status
	}
	if i.DueDate != "" && i.DueDate < today {
		return StatusOverdue
	}
	return StatusPending
}

// InstallmentUpdate carries the fields of a partial installment update; nil means unchanged
type InstallmentUpdate struct {
	DueDate *string            `json:"due_date,omitempty"`
	Status  *InstallmentStatus `json:"status,omitempty"`
	LateFee *decimal.Decimal   `json:"late_fee,omitempty"`
}

// Empty reports whether the update touches no field
func (u InstallmentUpdate) Empty() bool {
	return u.DueDate == nil && u.Status == nil && u.LateFee == nil
}

// DueInstallment is an open installment joined with its customer, as walked by the notification scan
type DueInstallment struct {
	Installment
	CustomerID    int64  `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// Reschedule is the new due date computed for the next pending installment of a sale
type Reschedule struct {
	NextPendingID int64  `json:"nextPendingId"`
	NewDueISO     string `json:"newDueISO"`
}
