package finance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"bizplan-backend/logger"
	"bizplan-backend/models"
	"bizplan-backend/utils"
)

// PlanStore is the persistence boundary: a whole-record get/update keyed by
// business-plan id. Implementations must return an error wrapping
// ErrPlanNotFound when the id does not exist.
type PlanStore interface {
	Get(ctx context.Context, id string) (*models.BusinessPlan, error)
	Update(ctx context.Context, id string, plan *models.BusinessPlan) (*models.BusinessPlan, error)
}

// Manager owns the in-memory state for one loaded business plan's finances.
// Every mutation follows the same cycle: stage a copy of the plan, apply the
// change to its finances tree, persist the whole record, and only on success
// swap in the new state and recompute the aggregates. A failed persist leaves
// the in-memory collections and the dirty flag exactly as they were.
type Manager struct {
	store PlanStore
	log   zerolog.Logger

	mu   sync.RWMutex
	plan *models.BusinessPlan
	data models.FinancesData

	invoices  []Document
	expenses  []Expense
	budgets   []ExpenseBudget
	entries   []CashflowEntry
	accounts  []BankAccount
	forecasts []CashflowForecast
	scenarios []CashflowScenario

	invoiceStats  InvoiceStats
	expenseStats  ExpenseStats
	cashflowStats CashflowStats

	dirty bool
}

func NewManager(store PlanStore) *Manager {
	return &Manager{
		store: store,
		log:   logger.WithComponent("finance"),
		data:  models.NewFinancesData(),
	}
}

// Load fetches the plan and rebuilds every presentation collection and
// aggregate from its finances tree.
func (m *Manager) Load(ctx context.Context, planID string) error {
	plan, err := m.store.Get(ctx, planID)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", planID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.plan = plan
	m.data = plan.FinancesTree()
	m.refreshLocked()
	m.dirty = false
	return nil
}

// refreshLocked reconverts every family and recomputes the aggregates from
// the current service tree. Caller holds m.mu.
func (m *Manager) refreshLocked() {
	m.invoices = make([]Document, 0, len(m.data.Documents))
	for i := range m.data.Documents {
		m.invoices = append(m.invoices, DocumentToUI(&m.data.Documents[i]))
	}
	m.expenses = make([]Expense, 0, len(m.data.Expenses))
	for i := range m.data.Expenses {
		m.expenses = append(m.expenses, ExpenseToUI(&m.data.Expenses[i]))
	}
	m.budgets = make([]ExpenseBudget, 0, len(m.data.Budgets))
	for i := range m.data.Budgets {
		m.budgets = append(m.budgets, BudgetToUI(&m.data.Budgets[i], m.expenses))
	}
	m.entries = make([]CashflowEntry, 0, len(m.data.CashflowEntries))
	for i := range m.data.CashflowEntries {
		m.entries = append(m.entries, CashflowEntryToUI(&m.data.CashflowEntries[i]))
	}
	m.accounts = make([]BankAccount, 0, len(m.data.BankAccounts))
	for i := range m.data.BankAccounts {
		m.accounts = append(m.accounts, BankAccountToUI(&m.data.BankAccounts[i]))
	}
	m.forecasts = make([]CashflowForecast, 0, len(m.data.Forecasts))
	for i := range m.data.Forecasts {
		m.forecasts = append(m.forecasts, ForecastToUI(&m.data.Forecasts[i]))
	}
	m.scenarios = make([]CashflowScenario, 0, len(m.data.Scenarios))
	for i := range m.data.Scenarios {
		m.scenarios = append(m.scenarios, ScenarioToUI(&m.data.Scenarios[i]))
	}

	m.invoiceStats = CalculateInvoiceStats(m.invoices)
	m.expenseStats = CalculateExpenseStats(m.expenses)
	m.cashflowStats = CalculateCashflowStats(m.entries, m.accounts, m.invoices, m.expenses, time.Now())
}

// mutate runs the read-modify-write cycle. apply edits the staged finances
// tree; returning an error aborts before any persistence attempt.
func (m *Manager) mutate(ctx context.Context, apply func(tree *models.FinancesData) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.plan == nil {
		return ErrNoPlanLoaded
	}
	planID := m.plan.Id

	unlock := lockPlan(planID)
	defer unlock()

	// Stage from a fresh store read, not from the snapshot taken at Load time:
	// another manager may have persisted the plan since, and staging from the
	// stale copy would drop its write.
	current, err := m.store.Get(ctx, planID)
	if err != nil {
		return fmt.Errorf("reload plan %s: %w", planID, err)
	}

	staged := current.Clone()
	tree := staged.FinancesTree()
	if err := apply(&tree); err != nil {
		return err
	}
	if err := staged.SetFinancesTree(tree); err != nil {
		return fmt.Errorf("encode finances: %w", err)
	}

	persisted, err := m.store.Update(ctx, staged.Id, staged)
	if err != nil {
		m.log.Error().Err(err).Str("plan_id", staged.Id).Msg("persist failed")
		return fmt.Errorf("persist plan %s: %w", staged.Id, err)
	}

	m.plan = persisted
	m.data = persisted.FinancesTree()
	m.refreshLocked()
	m.dirty = false
	return nil
}

func upsertByID[T any](list []T, id string, rec T, idOf func(T) string) []T {
	for i := range list {
		if idOf(list[i]) == id {
			list[i] = rec
			return list
		}
	}
	return append(list, rec)
}

func removeByID[T any](list []T, id string, idOf func(T) string) []T {
	out := list[:0]
	for _, v := range list {
		if idOf(v) != id {
			out = append(out, v)
		}
	}
	return out
}

// ---- Invoices / quotes

func (m *Manager) SaveInvoice(ctx context.Context, doc Document) (Document, error) {
	svc := DocumentToService(&doc)
	err := m.mutate(ctx, func(tree *models.FinancesData) error {
		svc.BusinessPlanId = m.plan.Id
		tree.Documents = upsertByID(tree.Documents, svc.Id, svc,
			func(d models.ServiceDocument) string { return d.Id })
		return nil
	})
	if err != nil {
		return Document{}, err
	}
	return m.invoiceByID(svc.Id)
}

func (m *Manager) DeleteInvoice(ctx context.Context, id string) error {
	return m.mutate(ctx, func(tree *models.FinancesData) error {
		tree.Documents = removeByID(tree.Documents, id,
			func(d models.ServiceDocument) string { return d.Id })
		return nil
	})
}

// AddPayment appends a payment to the target document and rederives its
// payment-tracking fields. The total is recomputed from the items, since the
// persisted rollup of a legacy blob may disagree with them. Status becomes
// paid once the payment sum covers the total, partially_paid while something
// is paid, and is otherwise left unchanged.
func (m *Manager) AddPayment(ctx context.Context, documentID string, payment Payment) (Document, error) {
	err := m.mutate(ctx, func(tree *models.FinancesData) error {
		for i := range tree.Documents {
			doc := &tree.Documents[i]
			if doc.Id != documentID {
				continue
			}
			payment.DocumentId = documentID
			if payment.Id == "" {
				payment.Id = NewID("pay")
			}
			if payment.Date.IsZero() {
				payment.Date = time.Now().UTC()
			}
			doc.Payments = append(doc.Payments, PaymentToService(&payment))

			items := make([]InvoiceItem, 0, len(doc.Items))
			for _, it := range doc.Items {
				items = append(items, itemToUI(it))
			}
			doc.Subtotal, doc.TaxAmount, doc.Total = ComputeDocumentTotals(items)

			var paid float64
			var last time.Time
			for _, p := range doc.Payments {
				paid += p.Amount
				// Persisted dates may carry zone offsets; compare instants,
				// not strings.
				if d := parseDate(p.Date); d.After(last) {
					last = d
				}
			}
			doc.AmountPaid = utils.Round2(paid)
			doc.RemainingAmount = utils.Round2(doc.Total - paid)
			doc.LastPaymentDate = formatDate(last)
			switch {
			case paid > 0 && paid >= doc.Total:
				doc.Status = string(StatusPaid)
			case paid > 0:
				doc.Status = string(StatusPartiallyPaid)
			}
			return nil
		}
		return fmt.Errorf("add payment to %s: %w", documentID, ErrDocumentNotFound)
	})
	if err != nil {
		return Document{}, err
	}
	return m.invoiceByID(documentID)
}

func (m *Manager) invoiceByID(id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.invoices {
		if d.Id == id {
			return d, nil
		}
	}
	return Document{}, fmt.Errorf("invoice %s: %w", id, ErrDocumentNotFound)
}

// ---- Expenses and budgets

func (m *Manager) SaveExpense(ctx context.Context, expense Expense) (Expense, error) {
	svc := ExpenseToService(&expense)
	err := m.mutate(ctx, func(tree *models.FinancesData) error {
		svc.BusinessPlanId = m.plan.Id
		tree.Expenses = upsertByID(tree.Expenses, svc.Id, svc,
			func(e models.ServiceExpense) string { return e.Id })
		return nil
	})
	if err != nil {
		return Expense{}, err
	}
	return ExpenseToUI(&svc), nil
}

func (m *Manager) DeleteExpense(ctx context.Context, id string) error {
	return m.mutate(ctx, func(tree *models.FinancesData) error {
		tree.Expenses = removeByID(tree.Expenses, id,
			func(e models.ServiceExpense) string { return e.Id })
		return nil
	})
}

func (m *Manager) SaveBudget(ctx context.Context, budget ExpenseBudget) (ExpenseBudget, error) {
	svc := BudgetToService(&budget)
	err := m.mutate(ctx, func(tree *models.FinancesData) error {
		svc.BusinessPlanId = m.plan.Id
		tree.Budgets = upsertByID(tree.Budgets, svc.Id, svc,
			func(b models.ServiceExpenseBudget) string { return b.Id })
		return nil
	})
	if err != nil {
		return ExpenseBudget{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return BudgetToUI(&svc, m.expenses), nil
}

func (m *Manager) DeleteBudget(ctx context.Context, id string) error {
	return m.mutate(ctx, func(tree *models.FinancesData) error {
		tree.Budgets = removeByID(tree.Budgets, id,
			func(b models.ServiceExpenseBudget) string { return b.Id })
		return nil
	})
}

// ---- Cashflow entries, accounts, forecasts, scenarios

func (m *Manager) SaveCashflowEntry(ctx context.Context, entry CashflowEntry) (CashflowEntry, error) {
	svc := CashflowEntryToService(&entry)
	err := m.mutate(ctx, func(tree *models.FinancesData) error {
		svc.BusinessPlanId = m.plan.Id
		tree.CashflowEntries = upsertByID(tree.CashflowEntries, svc.Id, svc,
			func(e models.ServiceCashflowEntry) string { return e.Id })
		return nil
	})
	if err != nil {
		return CashflowEntry{}, err
	}
	return CashflowEntryToUI(&svc), nil
}

func (m *Manager) DeleteCashflowEntry(ctx context.Context, id string) error {
	return m.mutate(ctx, func(tree *models.FinancesData) error {
		tree.CashflowEntries = removeByID(tree.CashflowEntries, id,
			func(e models.ServiceCashflowEntry) string { return e.Id })
		return nil
	})
}

// SaveBankAccount upserts the account; when it claims the primary flag, every
// other account loses it in the same write.
func (m *Manager) SaveBankAccount(ctx context.Context, account BankAccount) (BankAccount, error) {
	svc := BankAccountToService(&account)
	err := m.mutate(ctx, func(tree *models.FinancesData) error {
		svc.BusinessPlanId = m.plan.Id
		if svc.IsPrimary {
			for i := range tree.BankAccounts {
				if tree.BankAccounts[i].Id != svc.Id {
					tree.BankAccounts[i].IsPrimary = false
				}
			}
		}
		tree.BankAccounts = upsertByID(tree.BankAccounts, svc.Id, svc,
			func(a models.ServiceBankAccount) string { return a.Id })
		return nil
	})
	if err != nil {
		return BankAccount{}, err
	}
	return BankAccountToUI(&svc), nil
}

func (m *Manager) DeleteBankAccount(ctx context.Context, id string) error {
	return m.mutate(ctx, func(tree *models.FinancesData) error {
		tree.BankAccounts = removeByID(tree.BankAccounts, id,
			func(a models.ServiceBankAccount) string { return a.Id })
		return nil
	})
}

func (m *Manager) SaveForecast(ctx context.Context, forecast CashflowForecast) (CashflowForecast, error) {
	svc := ForecastToService(&forecast)
	err := m.mutate(ctx, func(tree *models.FinancesData) error {
		svc.BusinessPlanId = m.plan.Id
		tree.Forecasts = upsertByID(tree.Forecasts, svc.Id, svc,
			func(f models.ServiceCashflowForecast) string { return f.Id })
		return nil
	})
	if err != nil {
		return CashflowForecast{}, err
	}
	return ForecastToUI(&svc), nil
}

func (m *Manager) DeleteForecast(ctx context.Context, id string) error {
	return m.mutate(ctx, func(tree *models.FinancesData) error {
		tree.Forecasts = removeByID(tree.Forecasts, id,
			func(f models.ServiceCashflowForecast) string { return f.Id })
		return nil
	})
}

func (m *Manager) SaveScenario(ctx context.Context, scenario CashflowScenario) (CashflowScenario, error) {
	svc := ScenarioToService(&scenario)
	err := m.mutate(ctx, func(tree *models.FinancesData) error {
		svc.BusinessPlanId = m.plan.Id
		tree.Scenarios = upsertByID(tree.Scenarios, svc.Id, svc,
			func(s models.ServiceCashflowScenario) string { return s.Id })
		return nil
	})
	if err != nil {
		return CashflowScenario{}, err
	}
	return ScenarioToUI(&svc), nil
}

func (m *Manager) DeleteScenario(ctx context.Context, id string) error {
	return m.mutate(ctx, func(tree *models.FinancesData) error {
		tree.Scenarios = removeByID(tree.Scenarios, id,
			func(s models.ServiceCashflowScenario) string { return s.Id })
		return nil
	})
}

// ---- Read-only views

func (m *Manager) Plan() *models.BusinessPlan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.plan == nil {
		return nil
	}
	return m.plan.Clone()
}

func (m *Manager) Invoices() []Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Document, len(m.invoices))
	copy(out, m.invoices)
	return out
}

func (m *Manager) Expenses() []Expense {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Expense, len(m.expenses))
	copy(out, m.expenses)
	return out
}

func (m *Manager) Budgets() []ExpenseBudget {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ExpenseBudget, len(m.budgets))
	copy(out, m.budgets)
	return out
}

func (m *Manager) CashflowEntries() []CashflowEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]CashflowEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Manager) BankAccounts() []BankAccount {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]BankAccount, len(m.accounts))
	copy(out, m.accounts)
	return out
}

func (m *Manager) Forecasts() []CashflowForecast {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]CashflowForecast, len(m.forecasts))
	copy(out, m.forecasts)
	return out
}

func (m *Manager) Scenarios() []CashflowScenario {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]CashflowScenario, len(m.scenarios))
	copy(out, m.scenarios)
	return out
}

func (m *Manager) InvoiceStats() InvoiceStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.invoiceStats
}

func (m *Manager) ExpenseStats() ExpenseStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.expenseStats
}

func (m *Manager) CashflowStats() CashflowStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cashflowStats
}

// FilterInvoices applies the filter to the loaded collection.
func (m *Manager) FilterInvoices(f InvoiceFilter) []Document {
	return FilterInvoices(m.Invoices(), f)
}

// FilterExpenses applies the filter to the loaded collection.
func (m *Manager) FilterExpenses(f ExpenseFilter) []Expense {
	return FilterExpenses(m.Expenses(), f)
}

// MonthlyReport summarizes one calendar month of the loaded plan's cashflow.
func (m *Manager) MonthlyReport(year, month int) (MonthlyReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.plan == nil {
		return MonthlyReport{}, ErrNoPlanLoaded
	}
	return BuildMonthlyReport(year, month, m.entries, m.accounts), nil
}

// MarkDirty records that the caller holds unsaved form state; a successful
// mutation clears it, a failed one leaves it set.
func (m *Manager) MarkDirty() {
	m.mu.Lock()
	m.dirty = true
	m.mu.Unlock()
}

func (m *Manager) Dirty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirty
}
