package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents money recorded against an installment
type Payment struct {
	ID            int64           `json:"id"`
	InstallmentID int64           `json:"installment_id"`
	SaleID        int64           `json:"sale_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaidDate      string          `json:"paid_date"` // Format: YYYY-MM-DD
	CreatedAt     time.Time       `json:"created_at"`
}
