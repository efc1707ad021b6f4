package finance

import (
	"math"
	"sort"
	"time"

	"bizplan-backend/utils"
)

// Aggregations are pure: inputs are never mutated, outputs are independent of
// the input collection's element order.

// MonthlyAmount is one point of a per-month series, keyed by "YYYY-MM".
type MonthlyAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type CategoryShare struct {
	Category ExpenseCategory `json:"category"`
	Amount   float64         `json:"amount"`
	Percent  float64         `json:"percent"`
}

type InvoiceStats struct {
	TotalOutstanding     float64                `json:"totalOutstanding"`
	TotalPaid            float64                `json:"totalPaid"`
	TotalOverdue         float64                `json:"totalOverdue"`
	AverageDaysToPayment int                    `json:"averageDaysToPayment"`
	StatusCounts         map[DocumentStatus]int `json:"statusCounts"`
	MonthlyRevenue       []MonthlyAmount        `json:"monthlyRevenue"`
}

type ExpenseStats struct {
	Total            float64                     `json:"total"`
	ByCategory       map[ExpenseCategory]float64 `json:"byCategory"`
	Monthly          []MonthlyAmount             `json:"monthly"`
	TopCategories    []CategoryShare             `json:"topCategories"`
	RecurringMonthly float64                     `json:"recurringMonthly"`
}

type MonthlyFlow struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

type CashflowStats struct {
	CurrentBalance     float64       `json:"currentBalance"`
	ProjectedBalance30 float64       `json:"projectedBalance30"`
	ProjectedBalance90 float64       `json:"projectedBalance90"`
	AverageIncome6M    float64       `json:"averageIncome6m"`
	AverageExpense6M   float64       `json:"averageExpense6m"`
	UpcomingInvoices   int           `json:"upcomingInvoices"`
	UpcomingInvoiceSum float64       `json:"upcomingInvoiceSum"`
	UpcomingExpenses   int           `json:"upcomingExpenses"`
	UpcomingExpenseSum float64       `json:"upcomingExpenseSum"`
	Monthly            []MonthlyFlow `json:"monthly"`
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func sortedMonthly(byMonth map[string]float64) []MonthlyAmount {
	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]MonthlyAmount, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthlyAmount{Month: k, Amount: utils.Round2(byMonth[k])})
	}
	return out
}

// CalculateInvoiceStats derives the invoice dashboard figures.
func CalculateInvoiceStats(docs []Document) InvoiceStats {
	stats := InvoiceStats{
		StatusCounts: make(map[DocumentStatus]int, len(DocumentStatuses)),
	}
	for _, s := range DocumentStatuses {
		stats.StatusCounts[s] = 0
	}

	byMonth := map[string]float64{}
	var paymentDays, paidWithDates int

	for _, d := range docs {
		stats.StatusCounts[d.Status]++

		if d.Status != StatusPaid {
			stats.TotalOutstanding += d.Total - d.AmountPaid
		}
		if d.Status == StatusPaid || d.AmountPaid > 0 {
			stats.TotalPaid += d.AmountPaid
		}
		if d.Status == StatusOverdue {
			stats.TotalOverdue += d.Total - d.AmountPaid
		}
		if d.Status == StatusPaid && !d.IssueDate.IsZero() && !d.LastPaymentDate.IsZero() {
			days := d.LastPaymentDate.Sub(d.IssueDate).Hours() / 24
			paymentDays += int(math.Round(days))
			paidWithDates++
		}
		if !d.IssueDate.IsZero() {
			byMonth[monthKey(d.IssueDate)] += d.Total
		}
	}

	if paidWithDates > 0 {
		stats.AverageDaysToPayment = int(math.Round(float64(paymentDays) / float64(paidWithDates)))
	}
	stats.TotalOutstanding = utils.Round2(stats.TotalOutstanding)
	stats.TotalPaid = utils.Round2(stats.TotalPaid)
	stats.TotalOverdue = utils.Round2(stats.TotalOverdue)
	stats.MonthlyRevenue = sortedMonthly(byMonth)
	return stats
}

// CalculateExpenseStats derives per-category and monthly breakdowns.
// Cancelled expenses are excluded everywhere.
func CalculateExpenseStats(expenses []Expense) ExpenseStats {
	stats := ExpenseStats{
		ByCategory: make(map[ExpenseCategory]float64, len(ExpenseCategories)),
	}
	for _, c := range ExpenseCategories {
		stats.ByCategory[c] = 0
	}

	byMonth := map[string]float64{}
	for _, e := range expenses {
		if e.Status == ExpenseCancelled {
			continue
		}
		stats.Total += e.Amount
		stats.ByCategory[e.Category] += e.Amount
		if !e.ExpenseDate.IsZero() {
			byMonth[monthKey(e.ExpenseDate)] += e.Amount
		}
		if e.Recurring {
			stats.RecurringMonthly += e.Amount
		}
	}

	stats.Total = utils.Round2(stats.Total)
	stats.RecurringMonthly = utils.Round2(stats.RecurringMonthly)
	for c, v := range stats.ByCategory {
		stats.ByCategory[c] = utils.Round2(v)
	}
	stats.Monthly = sortedMonthly(byMonth)

	shares := make([]CategoryShare, 0, len(stats.ByCategory))
	for c, v := range stats.ByCategory {
		if v <= 0 {
			continue
		}
		share := CategoryShare{Category: c, Amount: v}
		if stats.Total > 0 {
			share.Percent = utils.Round2(v / stats.Total * 100)
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})
	if len(shares) > 5 {
		shares = shares[:5]
	}
	stats.TopCategories = shares
	return stats
}

// CalculateCashflowStats projects balances and summarizes the trailing six
// months. The trailing averages divide by a fixed 6 regardless of how many of
// those months hold data; plans younger than six months therefore understate
// the average. Interop with previously persisted dashboards depends on this.
func CalculateCashflowStats(entries []CashflowEntry, accounts []BankAccount, docs []Document, expenses []Expense, now time.Time) CashflowStats {
	now = now.UTC()
	var stats CashflowStats

	for _, a := range accounts {
		stats.CurrentBalance += a.Balance
	}

	project := func(days int) float64 {
		balance := stats.CurrentBalance
		horizon := now.AddDate(0, 0, days)
		for _, e := range entries {
			if e.State == EntryCancelled {
				continue
			}
			if !e.Date.After(now) || e.Date.After(horizon) {
				continue
			}
			balance += signedAmount(e)
		}
		return utils.Round2(balance)
	}
	stats.ProjectedBalance30 = project(30)
	stats.ProjectedBalance90 = project(90)

	windowStart := now.AddDate(0, -6, 0)
	flows := map[string]*MonthlyFlow{}
	var income6, expense6 float64
	for _, e := range entries {
		if e.State == EntryCancelled || e.Date.IsZero() {
			continue
		}
		if e.Date.Before(windowStart) || e.Date.After(now) {
			continue
		}
		key := monthKey(e.Date)
		f, ok := flows[key]
		if !ok {
			f = &MonthlyFlow{Month: key}
			flows[key] = f
		}
		switch e.Type {
		case CashflowIncome:
			f.Income += e.Amount
			income6 += e.Amount
		case CashflowExpense, CashflowTax:
			f.Expense += e.Amount
			expense6 += e.Amount
		}
	}
	// Fixed divisor, not the count of months with data.
	stats.AverageIncome6M = utils.Round2(income6 / 6)
	stats.AverageExpense6M = utils.Round2(expense6 / 6)

	keys := make([]string, 0, len(flows))
	for k := range flows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f := flows[k]
		f.Income = utils.Round2(f.Income)
		f.Expense = utils.Round2(f.Expense)
		f.Net = utils.Round2(f.Income - f.Expense)
		stats.Monthly = append(stats.Monthly, *f)
	}

	horizon30 := now.AddDate(0, 0, 30)
	for _, d := range docs {
		if d.Status == StatusPaid || d.DueDate.IsZero() {
			continue
		}
		if d.DueDate.After(now) && !d.DueDate.After(horizon30) {
			stats.UpcomingInvoices++
			stats.UpcomingInvoiceSum += d.Total - d.AmountPaid
		}
	}
	for _, e := range expenses {
		if e.Status == ExpenseCancelled || e.Status == ExpensePaid || e.ExpenseDate.IsZero() {
			continue
		}
		if e.ExpenseDate.After(now) && !e.ExpenseDate.After(horizon30) {
			stats.UpcomingExpenses++
			stats.UpcomingExpenseSum += e.Amount
		}
	}
	stats.CurrentBalance = utils.Round2(stats.CurrentBalance)
	stats.UpcomingInvoiceSum = utils.Round2(stats.UpcomingInvoiceSum)
	stats.UpcomingExpenseSum = utils.Round2(stats.UpcomingExpenseSum)
	return stats
}
