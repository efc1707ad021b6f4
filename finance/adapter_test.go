package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizplan-backend/finance"
	"bizplan-backend/models"
)

func TestDocumentDefaultsOnNil(t *testing.T) {
	doc := finance.DocumentToUI(nil)

	assert.NotEmpty(t, doc.Id)
	assert.Equal(t, finance.DocumentInvoice, doc.Type)
	assert.Equal(t, finance.StatusDraft, doc.Status)
	assert.NotNil(t, doc.Items)
	assert.NotNil(t, doc.Payments)
	assert.False(t, doc.IssueDate.IsZero())
	assert.Equal(t, doc.IssueDate.AddDate(0, 0, 30), doc.DueDate)

	svc := finance.DocumentToService(nil)
	assert.NotEmpty(t, svc.Id)
	assert.NotEmpty(t, svc.CreatedAt)
	assert.NotEmpty(t, svc.UpdatedAt)
	_, err := time.Parse(time.RFC3339, svc.UpdatedAt)
	assert.NoError(t, err)
}

func TestDocumentTotalsInvariant(t *testing.T) {
	doc := finance.DocumentToUI(nil)
	doc.Items = []finance.InvoiceItem{
		{Description: "dev", Quantity: 2, UnitPrice: 100, TaxRate: 0.2, Discount: 10},
		{Description: "hosting", Quantity: 1, UnitPrice: 50, TaxRate: 0.2},
	}

	svc := finance.DocumentToService(&doc)
	// 2*100*0.9 = 180, plus 50 => 230 net; tax 20% => 46
	assert.InDelta(t, 230.0, svc.Subtotal, 1e-9)
	assert.InDelta(t, 46.0, svc.TaxAmount, 1e-9)
	assert.InDelta(t, svc.Subtotal+svc.TaxAmount, svc.Total, 1e-9)

	back := finance.DocumentToUI(&svc)
	assert.InDelta(t, back.Subtotal+back.TaxAmount, back.Total, 1e-9)
	assert.InDelta(t, svc.Total, back.Total, 1e-9)
}

func TestDocumentRoundTrip(t *testing.T) {
	issue := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	doc := finance.Document{
		Id:             "doc-1",
		BusinessPlanId: "plan-1",
		Type:           finance.DocumentQuote,
		Status:         finance.StatusSent,
		DocumentNumber: "Q-2026-001",
		IssueDate:      issue,
		DueDate:        issue.AddDate(0, 0, 30),
		ClientName:     "Acme SARL",
		ClientEmail:    "billing@acme.example",
		Items: []finance.InvoiceItem{
			{Id: "item-1", Description: "audit", Quantity: 3, UnitPrice: 400, TaxRate: 0.2},
		},
		PaymentMethod: finance.PayCheck,
		Notes:         "net 30",
	}

	svc := finance.DocumentToService(&doc)
	back := finance.DocumentToUI(&svc)

	assert.Equal(t, doc.Id, back.Id)
	assert.Equal(t, doc.BusinessPlanId, back.BusinessPlanId)
	assert.Equal(t, doc.Type, back.Type)
	assert.Equal(t, doc.Status, back.Status)
	assert.Equal(t, doc.DocumentNumber, back.DocumentNumber)
	assert.True(t, doc.IssueDate.Equal(back.IssueDate))
	assert.True(t, doc.DueDate.Equal(back.DueDate))
	assert.Equal(t, doc.ClientName, back.ClientName)
	assert.Equal(t, doc.PaymentMethod, back.PaymentMethod)
	require.Len(t, back.Items, 1)
	assert.Equal(t, doc.Items[0], back.Items[0])
}

func TestEnumRoundTrips(t *testing.T) {
	for _, s := range finance.DocumentStatuses {
		assert.Equal(t, s, finance.ParseDocumentStatus(string(s)))
	}
	for _, m := range finance.PaymentMethods {
		assert.Equal(t, m, finance.ParsePaymentMethod(string(m)))
	}
	for _, m := range finance.ExpensePaymentMethods {
		assert.Equal(t, m, finance.ParseExpensePaymentMethod(string(m)))
	}
	for _, v := range finance.ExpenseTypes {
		assert.Equal(t, v, finance.ParseExpenseType(string(v)))
	}
	for _, v := range finance.ExpenseStatuses {
		assert.Equal(t, v, finance.ParseExpenseStatus(string(v)))
	}
	for _, v := range finance.ExpenseCategories {
		assert.Equal(t, v, finance.ParseExpenseCategory(string(v)))
	}
	for _, v := range finance.CashflowEntryTypes {
		assert.Equal(t, v, finance.ParseCashflowEntryType(string(v)))
	}
	for _, v := range finance.CashflowEntryStates {
		assert.Equal(t, v, finance.ParseCashflowEntryState(string(v)))
	}
	for _, v := range finance.BankAccountTypes {
		assert.Equal(t, v, finance.ParseBankAccountType(string(v)))
	}
}

func TestUnknownEnumValuesDegradeToDefaults(t *testing.T) {
	assert.Equal(t, finance.StatusDraft, finance.ParseDocumentStatus("garbage"))
	assert.Equal(t, finance.DocumentInvoice, finance.ParseDocumentType(""))
	assert.Equal(t, finance.CategoryOther, finance.ParseExpenseCategory("not-a-category"))
	assert.Equal(t, finance.EntryProjected, finance.ParseCashflowEntryState("??"))
	assert.Equal(t, finance.AccountChecking, finance.ParseBankAccountType(""))
}

func TestExpenseRoundTrip(t *testing.T) {
	date := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	exp := finance.Expense{
		Id:            "exp-1",
		Label:         "IDE licence",
		Type:          finance.ExpenseRecurring,
		Category:      finance.CategorySoftware,
		Status:        finance.ExpensePaid,
		Amount:        24.99,
		TaxRate:       0.2,
		PaymentMethod: finance.ExpensePayCompanyCard,
		ExpenseDate:   date,
		Recurring:     true,
		VendorName:    "JetForge",
	}

	svc := finance.ExpenseToService(&exp)
	back := finance.ExpenseToUI(&svc)

	assert.Equal(t, exp.Id, back.Id)
	assert.Equal(t, exp.Category, back.Category)
	assert.Equal(t, exp.Status, back.Status)
	assert.Equal(t, exp.Type, back.Type)
	assert.InDelta(t, exp.Amount, back.Amount, 1e-9)
	assert.True(t, exp.ExpenseDate.Equal(back.ExpenseDate))
	assert.True(t, back.Recurring)
}

func TestExpenseTotalWithTaxPrecedence(t *testing.T) {
	// Explicit taxAmount wins over everything.
	e := finance.Expense{Amount: 100, TaxAmount: 7, TaxRate: 0.2, Tax1Rate: 0.1}
	assert.InDelta(t, 107.0, e.TotalWithTax(), 1e-9)

	// Then the general rate.
	e = finance.Expense{Amount: 100, TaxRate: 0.2, Tax1Rate: 0.1}
	assert.InDelta(t, 120.0, e.TotalWithTax(), 1e-9)

	// Then the itemized taxes.
	e = finance.Expense{Amount: 100, Tax1Rate: 0.05, Tax2Rate: 0.09975}
	assert.InDelta(t, 114.975, e.TotalWithTax(), 1e-9)

	e = finance.Expense{Amount: 100}
	assert.InDelta(t, 100.0, e.TotalWithTax(), 1e-9)
}

func TestBudgetUsageDerivation(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := models.ServiceExpenseBudget{
		Id:          "bud-1",
		Category:    string(finance.CategoryTravel),
		PeriodStart: start.Format(time.RFC3339),
		PeriodEnd:   start.AddDate(0, 3, 0).Format(time.RFC3339),
		Amount:      1000,
	}
	expenses := []finance.Expense{
		{Category: finance.CategoryTravel, Amount: 300, ExpenseDate: start.AddDate(0, 1, 0)},
		{Category: finance.CategoryTravel, Amount: 100, ExpenseDate: start.AddDate(0, 1, 5), Status: finance.ExpenseCancelled},
		{Category: finance.CategoryMeals, Amount: 50, ExpenseDate: start.AddDate(0, 1, 0)},
		{Category: finance.CategoryTravel, Amount: 400, ExpenseDate: start.AddDate(1, 0, 0)}, // outside period
	}

	b := finance.BudgetToUI(&svc, expenses)
	assert.InDelta(t, 300.0, b.Spent, 1e-9)
	assert.InDelta(t, 700.0, b.Remaining, 1e-9)
	assert.InDelta(t, 30.0, b.PercentUsed, 1e-9)
}

func TestForecastBalanceWalk(t *testing.T) {
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	f := finance.CashflowForecast{
		InitialBalance: 1000,
		Entries: []finance.CashflowEntry{
			{Type: finance.CashflowIncome, Amount: 500, Date: day},
			{Type: finance.CashflowExpense, Amount: 300, Date: day.AddDate(0, 0, 1)},
			{Type: finance.CashflowIncome, Amount: 200, Date: day.AddDate(0, 0, 2)},
		},
	}

	svc := finance.ForecastToService(&f)
	assert.InDelta(t, 1400.0, svc.FinalBalance, 1e-9)
	assert.InDelta(t, 1200.0, svc.LowestBalance, 1e-9)
	assert.InDelta(t, 1500.0, svc.HighestBalance, 1e-9)
	assert.InDelta(t, 400.0, svc.NetChange, 1e-9)
}

func TestForecastDerivedFieldsNeverTrusted(t *testing.T) {
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	svc := models.ServiceCashflowForecast{
		Id:             "fc-1",
		InitialBalance: 100,
		// Entries deliberately out of date order; stored balances are lies.
		Entries: []models.ServiceCashflowEntry{
			{Id: "e2", Type: "expense", Amount: 30, Date: day.AddDate(0, 0, 5).Format(time.RFC3339)},
			{Id: "e1", Type: "income", Amount: 50, Date: day.Format(time.RFC3339)},
		},
		FinalBalance:   9999,
		LowestBalance:  -9999,
		HighestBalance: 9999,
	}

	f := finance.ForecastToUI(&svc)
	assert.InDelta(t, 120.0, f.FinalBalance, 1e-9)
	assert.InDelta(t, 120.0, f.LowestBalance, 1e-9)
	assert.InDelta(t, 150.0, f.HighestBalance, 1e-9)
	assert.InDelta(t, 20.0, f.NetChange, 1e-9)
}

func TestForecastWithoutEntriesKeepsInitialBalance(t *testing.T) {
	f := finance.CashflowForecast{InitialBalance: 250}
	svc := finance.ForecastToService(&f)
	assert.InDelta(t, 250.0, svc.FinalBalance, 1e-9)
	assert.InDelta(t, 250.0, svc.LowestBalance, 1e-9)
	assert.InDelta(t, 250.0, svc.HighestBalance, 1e-9)
	assert.InDelta(t, 0.0, svc.NetChange, 1e-9)
}

func TestScenarioRoundTripKeepsAssumptions(t *testing.T) {
	s := finance.ScenarioToUI(nil)
	s.Name = "worst case"
	s.Assumptions = map[string]string{"churn": "high", "pricing": "-20%"}
	s.IsFavorite = true

	svc := finance.ScenarioToService(&s)
	back := finance.ScenarioToUI(&svc)
	assert.Equal(t, s.Name, back.Name)
	assert.Equal(t, s.Assumptions, back.Assumptions)
	assert.True(t, back.IsFavorite)
}

func TestBankAccountRoundTrip(t *testing.T) {
	a := finance.BankAccount{
		Id:        "acc-1",
		Name:      "Main",
		Type:      finance.AccountBusiness,
		Balance:   1234.56,
		Currency:  "EUR",
		IsPrimary: true,
	}
	svc := finance.BankAccountToService(&a)
	back := finance.BankAccountToUI(&svc)
	assert.Equal(t, a.Id, back.Id)
	assert.Equal(t, a.Type, back.Type)
	assert.InDelta(t, a.Balance, back.Balance, 1e-9)
	assert.True(t, back.IsPrimary)
}

func TestNewIDUsesPrefix(t *testing.T) {
	id := finance.NewID("doc")
	assert.Regexp(t, `^doc-\d+-[0-9a-f]{8}$`, id)
	assert.NotEqual(t, id, finance.NewID("doc"))
}
