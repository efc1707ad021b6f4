package finance

import (
	"time"

	"bizplan-backend/utils"
)

// BalanceBasisCurrent marks reports whose starting balance is the sum of the
// bank accounts' balances as of report generation, not a historically
// reconstructed balance at the start of the month. Reports for past months
// therefore carry an approximate opening balance; clients should surface the
// marker instead of presenting the figure as historical truth.
const BalanceBasisCurrent = "current_accounts"

type MonthlyReport struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`

	ByCategory map[string]float64 `json:"byCategory"`
	EntryCount int                `json:"entryCount"`

	StartingBalance float64 `json:"startingBalance"`
	EndingBalance   float64 `json:"endingBalance"`
	BalanceBasis    string  `json:"balanceBasis"`
}

// BuildMonthlyReport slices the cashflow entries falling inside the given
// calendar month and totals them. Cancelled entries are excluded; transfers
// count toward neither income nor expenses.
func BuildMonthlyReport(year, month int, entries []CashflowEntry, accounts []BankAccount) MonthlyReport {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	report := MonthlyReport{
		Year:         year,
		Month:        month,
		ByCategory:   map[string]float64{},
		BalanceBasis: BalanceBasisCurrent,
	}

	for _, e := range entries {
		if e.State == EntryCancelled || e.Date.IsZero() {
			continue
		}
		d := e.Date.UTC()
		if d.Before(start) || !d.Before(end) {
			continue
		}
		report.EntryCount++
		switch e.Type {
		case CashflowIncome:
			report.Income += e.Amount
		case CashflowExpense, CashflowTax:
			report.Expenses += e.Amount
		}
		category := e.Category
		if category == "" {
			category = string(e.Type)
		}
		report.ByCategory[category] += e.Amount
	}

	for _, a := range accounts {
		report.StartingBalance += a.Balance
	}

	report.Income = utils.Round2(report.Income)
	report.Expenses = utils.Round2(report.Expenses)
	report.Net = utils.Round2(report.Income - report.Expenses)
	report.StartingBalance = utils.Round2(report.StartingBalance)
	report.EndingBalance = utils.Round2(report.StartingBalance + report.Income - report.Expenses)
	for k, v := range report.ByCategory {
		report.ByCategory[k] = utils.Round2(v)
	}
	return report
}
