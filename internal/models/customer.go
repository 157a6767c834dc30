package models

import "github.com/shopspring/decimal"

// Customer represents a buyer owning zero or more sales
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CustomerBalance is the derived amount a customer still owes
type CustomerBalance struct {
	CustomerID int64           `json:"customer_id"`
	TotalOwed  decimal.Decimal `json:"total_owed"`
}

// TotalOwed sums the balance of every unpaid, non-cancelled installment
func TotalOwed(installments []Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		if inst.Status == StatusPaid || inst.Status == StatusCancelled {
			continue
		}
		total = total.Add(inst.Balance)
	}
	return total
}
