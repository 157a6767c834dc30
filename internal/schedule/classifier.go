package schedule

import (
	"sort"
	"time"

	"github.com/Dan9191/installment-service/internal/models"
	"github.com/Dan9191/installment-service/internal/utils/dates"
)

// weeklyThresholdDays is the largest average spacing still classified as weekly
const weeklyThresholdDays = 10

// InferPeriodType guesses a sale's cadence from its due dates. Installments may have been edited
// by hand, so unparseable dates are skipped instead of failing.
func InferPeriodType(installments []models.Installment) models.PeriodType {
	if len(installments) == 0 {
		return models.PeriodMonthly
	}

	due := make([]time.Time, 0, len(installments))
	for _, inst := range installments {
		t, err := dates.Parse(inst.DueDate)
		if err != nil {
			continue
		}
		due = append(due, t)
	}
	if len(due) == 0 {
		return models.PeriodMonthly
	}

	biweekly := true
	for _, t := range due {
		if d := t.Day(); d != 1 && d != 15 {
			biweekly = false
			break
		}
	}
	if biweekly {
		return models.PeriodBiweekly
	}

	if len(due) < 2 {
		return models.PeriodMonthly
	}
	sort.Slice(due, func(i, j int) bool { return due[i].Before(due[j]) })

	total := 0
	for i := 1; i < len(due); i++ {
		total += dates.DaysBetween(due[i-1], due[i])
	}
	if float64(total)/float64(len(due)-1) <= weeklyThresholdDays {
		return models.PeriodWeekly
	}
	return models.PeriodMonthly
}
