package models

import (
	"sort"
	"time"
)

// Sale owns an ordered set of installments
type Sale struct {
	ID           int64         `json:"id"`
	CustomerID   int64         `json:"customer_id"`
	CreatedAt    time.Time     `json:"created_at"`
	Installments []Installment `json:"installments"`
}

// SortInstallments orders installments by installment number in place
func SortInstallments(installments []Installment) {
	sort.SliceStable(installments, func(i, j int) bool {
		return installments[i].Number < installments[j].Number
	})
}

// PeriodType is the inferred payment cadence of a sale
type PeriodType string

const (
	PeriodWeekly   PeriodType = "weekly"
	PeriodBiweekly PeriodType = "biweekly"
	PeriodMonthly  PeriodType = "monthly"
)

// Schedule is a sale's installment list as presented to callers
type Schedule struct {
	SaleID       int64         `json:"sale_id"`
	PeriodType   PeriodType    `json:"period_type"`
	Installments []Installment `json:"installments"`
}
