package finance_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizplan-backend/finance"
	"bizplan-backend/models"
)

// memStore is an in-memory PlanStore for exercising the manager's
// read-modify-write cycle without a database.
type memStore struct {
	mu      sync.Mutex
	plans   map[string]*models.BusinessPlan
	failing bool
	updates int
}

func newMemStore() *memStore {
	return &memStore{plans: map[string]*models.BusinessPlan{}}
}

func (s *memStore) Get(_ context.Context, id string) (*models.BusinessPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %s: %w", id, finance.ErrPlanNotFound)
	}
	return plan.Clone(), nil
}

func (s *memStore) Update(_ context.Context, id string, plan *models.BusinessPlan) (*models.BusinessPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return nil, errors.New("store unavailable")
	}
	s.plans[id] = plan.Clone()
	s.updates++
	return plan.Clone(), nil
}

func seedPlan(t *testing.T, store *memStore, id string) {
	t.Helper()
	seedPlanTree(t, store, id, models.NewFinancesData())
}

func seedPlanTree(t *testing.T, store *memStore, id string, tree models.FinancesData) {
	t.Helper()
	plan := &models.BusinessPlan{Id: id, UserId: "user-1", Name: "Freelance plan"}
	require.NoError(t, plan.SetFinancesTree(tree))
	store.plans[id] = plan
}

func loadedManager(t *testing.T) (*finance.Manager, *memStore) {
	t.Helper()
	store := newMemStore()
	seedPlan(t, store, "plan-1")
	mgr := finance.NewManager(store)
	require.NoError(t, mgr.Load(context.Background(), "plan-1"))
	return mgr, store
}

func TestManagerRequiresLoadedPlan(t *testing.T) {
	mgr := finance.NewManager(newMemStore())

	_, err := mgr.SaveInvoice(context.Background(), finance.Document{})
	assert.ErrorIs(t, err, finance.ErrNoPlanLoaded)

	err = mgr.DeleteExpense(context.Background(), "whatever")
	assert.ErrorIs(t, err, finance.ErrNoPlanLoaded)

	_, err = mgr.MonthlyReport(2026, 5)
	assert.ErrorIs(t, err, finance.ErrNoPlanLoaded)

	assert.Empty(t, mgr.Invoices())
	assert.Empty(t, mgr.Expenses())
}

func TestManagerLoadUnknownPlan(t *testing.T) {
	mgr := finance.NewManager(newMemStore())
	err := mgr.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, finance.ErrPlanNotFound)
}

func TestSaveInvoiceAssignsIDAndPersists(t *testing.T) {
	mgr, store := loadedManager(t)
	ctx := context.Background()

	saved, err := mgr.SaveInvoice(ctx, finance.Document{
		ClientName: "Acme SARL",
		Items:      []finance.InvoiceItem{{Description: "dev", Quantity: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.Id)
	assert.Equal(t, "plan-1", saved.BusinessPlanId)
	assert.InDelta(t, 100.0, saved.Total, 1e-9)
	require.Len(t, mgr.Invoices(), 1)

	// A fresh manager over the same store sees the write.
	other := finance.NewManager(store)
	require.NoError(t, other.Load(ctx, "plan-1"))
	require.Len(t, other.Invoices(), 1)
	assert.Equal(t, saved.Id, other.Invoices()[0].Id)
}

func TestSaveInvoiceUpsertsByID(t *testing.T) {
	mgr, _ := loadedManager(t)
	ctx := context.Background()

	saved, err := mgr.SaveInvoice(ctx, finance.Document{ClientName: "first"})
	require.NoError(t, err)

	saved.ClientName = "renamed"
	again, err := mgr.SaveInvoice(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.Id, again.Id)

	invoices := mgr.Invoices()
	require.Len(t, invoices, 1)
	assert.Equal(t, "renamed", invoices[0].ClientName)
}

func TestDeleteInvoice(t *testing.T) {
	mgr, _ := loadedManager(t)
	ctx := context.Background()

	saved, err := mgr.SaveInvoice(ctx, finance.Document{ClientName: "Acme"})
	require.NoError(t, err)

	require.NoError(t, mgr.DeleteInvoice(ctx, saved.Id))
	assert.Empty(t, mgr.Invoices())

	// Deleting an absent id is a no-op, not an error.
	require.NoError(t, mgr.DeleteInvoice(ctx, "gone"))
}

func TestAddPaymentTransitions(t *testing.T) {
	mgr, _ := loadedManager(t)
	ctx := context.Background()

	doc, err := mgr.SaveInvoice(ctx, finance.Document{
		Status: finance.StatusSent,
		Items:  []finance.InvoiceItem{{Description: "dev", Quantity: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)
	require.InDelta(t, 100.0, doc.Total, 1e-9)

	day := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	doc, err = mgr.AddPayment(ctx, doc.Id, finance.Payment{
		Amount: 40, Date: day, Method: finance.PayBankTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, finance.StatusPartiallyPaid, doc.Status)
	assert.InDelta(t, 40.0, doc.AmountPaid, 1e-9)
	assert.InDelta(t, 60.0, doc.RemainingAmount, 1e-9)
	require.Len(t, doc.Payments, 1)
	assert.NotEmpty(t, doc.Payments[0].Id)

	doc, err = mgr.AddPayment(ctx, doc.Id, finance.Payment{
		Amount: 60, Date: day.AddDate(0, 0, 5), Method: finance.PayCheck,
	})
	require.NoError(t, err)
	assert.Equal(t, finance.StatusPaid, doc.Status)
	assert.InDelta(t, 100.0, doc.AmountPaid, 1e-9)
	assert.InDelta(t, 0.0, doc.RemainingAmount, 1e-9)
	assert.True(t, doc.LastPaymentDate.Equal(day.AddDate(0, 0, 5)))
}

func TestWritesFromSeparateManagersBothSurvive(t *testing.T) {
	store := newMemStore()
	seedPlan(t, store, "plan-1")
	ctx := context.Background()

	first := finance.NewManager(store)
	require.NoError(t, first.Load(ctx, "plan-1"))
	second := finance.NewManager(store)
	require.NoError(t, second.Load(ctx, "plan-1"))

	// The second manager loaded before the first's write; its mutation must
	// stage from the store's current state, not from its stale snapshot.
	_, err := first.SaveInvoice(ctx, finance.Document{ClientName: "Acme"})
	require.NoError(t, err)
	_, err = second.SaveExpense(ctx, finance.Expense{Label: "Rent", Amount: 900})
	require.NoError(t, err)

	fresh := finance.NewManager(store)
	require.NoError(t, fresh.Load(ctx, "plan-1"))
	assert.Len(t, fresh.Invoices(), 1)
	assert.Len(t, fresh.Expenses(), 1)
	// The manager that wrote last also sees both.
	assert.Len(t, second.Invoices(), 1)
}

func TestAddPaymentLastPaymentDateAcrossZones(t *testing.T) {
	store := newMemStore()
	tree := models.NewFinancesData()
	tree.Documents = append(tree.Documents, models.ServiceDocument{
		Id: "doc-1", Type: "invoice", Status: "sent",
		Items: []models.ServiceInvoiceItem{{Id: "item-1", Quantity: 1, UnitPrice: 100}},
		Payments: []models.ServicePayment{
			// 21:00 UTC, written with a zone offset by an older client.
			{Id: "pay-1", Amount: 30, Date: "2026-07-01T23:00:00+02:00"},
		},
	})
	seedPlanTree(t, store, "plan-1", tree)

	mgr := finance.NewManager(store)
	ctx := context.Background()
	require.NoError(t, mgr.Load(ctx, "plan-1"))

	// Later instant, but lexicographically smaller than the offset string.
	payDate := time.Date(2026, 7, 1, 22, 0, 0, 0, time.UTC)
	doc, err := mgr.AddPayment(ctx, "doc-1", finance.Payment{Amount: 30, Date: payDate})
	require.NoError(t, err)

	assert.True(t, doc.LastPaymentDate.Equal(payDate),
		"last payment date should be the later instant, got %s", doc.LastPaymentDate)
	assert.Equal(t, finance.StatusPartiallyPaid, doc.Status)
	assert.InDelta(t, 60.0, doc.AmountPaid, 1e-9)
}

func TestAddPaymentUsesItemTotalsNotPersistedRollup(t *testing.T) {
	store := newMemStore()
	tree := models.NewFinancesData()
	tree.Documents = append(tree.Documents, models.ServiceDocument{
		Id: "doc-1", Type: "invoice", Status: "sent",
		Items: []models.ServiceInvoiceItem{{Id: "item-1", Quantity: 1, UnitPrice: 100}},
		// Legacy rollup disagreeing with the items.
		Total: 0,
	})
	seedPlanTree(t, store, "plan-1", tree)

	mgr := finance.NewManager(store)
	ctx := context.Background()
	require.NoError(t, mgr.Load(ctx, "plan-1"))

	doc, err := mgr.AddPayment(ctx, "doc-1", finance.Payment{
		Amount: 40, Date: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Against the stale zero total a 40 payment would have read as paid in
	// full; the recomputed item total keeps it partial.
	assert.Equal(t, finance.StatusPartiallyPaid, doc.Status)
	assert.InDelta(t, 100.0, doc.Total, 1e-9)
	assert.InDelta(t, 60.0, doc.RemainingAmount, 1e-9)
}

func TestAddPaymentUnknownDocument(t *testing.T) {
	mgr, store := loadedManager(t)
	before := store.updates

	_, err := mgr.AddPayment(context.Background(), "missing", finance.Payment{Amount: 10})
	assert.ErrorIs(t, err, finance.ErrDocumentNotFound)
	// Nothing was written.
	assert.Equal(t, before, store.updates)
}

func TestSaveBankAccountPrimaryIsExclusive(t *testing.T) {
	mgr, _ := loadedManager(t)
	ctx := context.Background()

	first, err := mgr.SaveBankAccount(ctx, finance.BankAccount{
		Name: "Main", Type: finance.AccountChecking, IsPrimary: true,
	})
	require.NoError(t, err)

	_, err = mgr.SaveBankAccount(ctx, finance.BankAccount{
		Name: "Savings", Type: finance.AccountSavings, IsPrimary: true,
	})
	require.NoError(t, err)

	var primaries int
	for _, a := range mgr.BankAccounts() {
		if a.IsPrimary {
			primaries++
			assert.Equal(t, "Savings", a.Name)
		}
		if a.Id == first.Id {
			assert.False(t, a.IsPrimary)
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestPersistFailureLeavesStateUntouched(t *testing.T) {
	mgr, store := loadedManager(t)
	ctx := context.Background()

	saved, err := mgr.SaveExpense(ctx, finance.Expense{
		Label: "Rent", Category: finance.CategoryRent, Amount: 900,
	})
	require.NoError(t, err)
	require.Len(t, mgr.Expenses(), 1)
	assert.False(t, mgr.Dirty())

	store.failing = true
	mgr.MarkDirty()

	_, err = mgr.SaveExpense(ctx, finance.Expense{
		Label: "Hosting", Category: finance.CategorySoftware, Amount: 80,
	})
	require.Error(t, err)

	// In-memory state and the dirty flag survive the failed write.
	expenses := mgr.Expenses()
	require.Len(t, expenses, 1)
	assert.Equal(t, saved.Id, expenses[0].Id)
	assert.True(t, mgr.Dirty())

	// A successful write clears the flag again.
	store.failing = false
	_, err = mgr.SaveExpense(ctx, finance.Expense{
		Label: "Hosting", Category: finance.CategorySoftware, Amount: 80,
	})
	require.NoError(t, err)
	assert.Len(t, mgr.Expenses(), 2)
	assert.False(t, mgr.Dirty())
}

func TestStatsRefreshAfterMutation(t *testing.T) {
	mgr, _ := loadedManager(t)
	ctx := context.Background()

	_, err := mgr.SaveInvoice(ctx, finance.Document{
		Status: finance.StatusSent,
		Items:  []finance.InvoiceItem{{Quantity: 1, UnitPrice: 250}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 250.0, mgr.InvoiceStats().TotalOutstanding, 1e-9)

	_, err = mgr.SaveExpense(ctx, finance.Expense{
		Category: finance.CategoryTravel, Amount: 120,
		ExpenseDate: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.InDelta(t, 120.0, mgr.ExpenseStats().Total, 1e-9)

	_, err = mgr.SaveBankAccount(ctx, finance.BankAccount{Name: "Main", Balance: 5000})
	require.NoError(t, err)
	assert.InDelta(t, 5000.0, mgr.CashflowStats().CurrentBalance, 1e-9)
}

func TestBudgetUsageTracksExpenses(t *testing.T) {
	mgr, _ := loadedManager(t)
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := mgr.SaveExpense(ctx, finance.Expense{
		Category: finance.CategoryTravel, Amount: 300,
		ExpenseDate: start.AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	budget, err := mgr.SaveBudget(ctx, finance.ExpenseBudget{
		Category:    finance.CategoryTravel,
		PeriodStart: start,
		PeriodEnd:   start.AddDate(0, 6, 0),
		Amount:      1000,
	})
	require.NoError(t, err)
	assert.InDelta(t, 300.0, budget.Spent, 1e-9)
	assert.InDelta(t, 700.0, budget.Remaining, 1e-9)
	assert.InDelta(t, 30.0, budget.PercentUsed, 1e-9)
}

func TestManagerMonthlyReport(t *testing.T) {
	mgr, _ := loadedManager(t)
	ctx := context.Background()

	_, err := mgr.SaveCashflowEntry(ctx, finance.CashflowEntry{
		Type: finance.CashflowIncome, State: finance.EntryCompleted,
		Amount: 1500, Date: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	report, err := mgr.MonthlyReport(2026, 5)
	require.NoError(t, err)
	assert.InDelta(t, 1500.0, report.Income, 1e-9)
	assert.Equal(t, 1, report.EntryCount)
}

func TestForecastLifecycle(t *testing.T) {
	mgr, _ := loadedManager(t)
	ctx := context.Background()

	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	saved, err := mgr.SaveForecast(ctx, finance.CashflowForecast{
		Name:           "Q2 runway",
		InitialBalance: 1000,
		Entries: []finance.CashflowEntry{
			{Type: finance.CashflowIncome, Amount: 500, Date: day},
			{Type: finance.CashflowExpense, Amount: 300, Date: day.AddDate(0, 0, 1)},
			{Type: finance.CashflowIncome, Amount: 200, Date: day.AddDate(0, 0, 2)},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1400.0, saved.FinalBalance, 1e-9)
	assert.InDelta(t, 1200.0, saved.LowestBalance, 1e-9)
	assert.InDelta(t, 1500.0, saved.HighestBalance, 1e-9)

	require.NoError(t, mgr.DeleteForecast(ctx, saved.Id))
	assert.Empty(t, mgr.Forecasts())
}

func TestScenarioLifecycle(t *testing.T) {
	mgr, _ := loadedManager(t)
	ctx := context.Background()

	saved, err := mgr.SaveScenario(ctx, finance.CashflowScenario{
		Name:        "pessimistic",
		Assumptions: map[string]string{"revenue": "-30%"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.Id)
	assert.Equal(t, "-30%", saved.Assumptions["revenue"])

	require.NoError(t, mgr.DeleteScenario(ctx, saved.Id))
	assert.Empty(t, mgr.Scenarios())
}

func TestManagerFilterViews(t *testing.T) {
	mgr, _ := loadedManager(t)
	ctx := context.Background()

	_, err := mgr.SaveInvoice(ctx, finance.Document{ClientName: "Acme", Status: finance.StatusSent})
	require.NoError(t, err)
	_, err = mgr.SaveInvoice(ctx, finance.Document{ClientName: "Borealis", Status: finance.StatusPaid})
	require.NoError(t, err)

	got := mgr.FilterInvoices(finance.InvoiceFilter{
		Statuses: []finance.DocumentStatus{finance.StatusSent},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].ClientName)
}
