package models

import "encoding/json"

// The finances sub-tree of a business plan is persisted as one JSON document.
// Every struct in this file is a "service shape": enum fields are plain strings,
// dates are RFC3339 strings, and no derived/UI-only fields appear. The typed
// counterparts live in the finance package; the adapter there is the only
// component allowed to translate between the two.
//
// Field names inside the JSON tree are camelCase because previously persisted
// plans used that convention; they are a compatibility contract.

type FinancesData struct {
	Documents       []ServiceDocument         `json:"documents"`
	Expenses        []ServiceExpense          `json:"expenses"`
	Budgets         []ServiceExpenseBudget    `json:"budgets"`
	CashflowEntries []ServiceCashflowEntry    `json:"cashflowEntries"`
	BankAccounts    []ServiceBankAccount      `json:"bankAccounts"`
	Forecasts       []ServiceCashflowForecast `json:"forecasts"`
	Scenarios       []ServiceCashflowScenario `json:"scenarios"`
}

// NewFinancesData returns an empty skeleton with every sub-collection present
// as a non-nil empty sequence, so a freshly created plan round-trips as
// `{"documents":[],...}` rather than nulls.
func NewFinancesData() FinancesData {
	return FinancesData{
		Documents:       []ServiceDocument{},
		Expenses:        []ServiceExpense{},
		Budgets:         []ServiceExpenseBudget{},
		CashflowEntries: []ServiceCashflowEntry{},
		BankAccounts:    []ServiceBankAccount{},
		Forecasts:       []ServiceCashflowForecast{},
		Scenarios:       []ServiceCashflowScenario{},
	}
}

// Normalize replaces nil sub-collections with empty ones. Malformed persisted
// trees (missing keys, explicit nulls) degrade to empty sequences, never to an
// error.
func (f *FinancesData) Normalize() {
	if f.Documents == nil {
		f.Documents = []ServiceDocument{}
	}
	if f.Expenses == nil {
		f.Expenses = []ServiceExpense{}
	}
	if f.Budgets == nil {
		f.Budgets = []ServiceExpenseBudget{}
	}
	if f.CashflowEntries == nil {
		f.CashflowEntries = []ServiceCashflowEntry{}
	}
	if f.BankAccounts == nil {
		f.BankAccounts = []ServiceBankAccount{}
	}
	if f.Forecasts == nil {
		f.Forecasts = []ServiceCashflowForecast{}
	}
	if f.Scenarios == nil {
		f.Scenarios = []ServiceCashflowScenario{}
	}
}

// ParseFinancesData decodes a persisted finances blob. Each collection is
// decoded independently: a missing, null or malformed collection degrades to
// an empty sequence without taking its siblings down with it. Only a blob
// that is not a JSON object at all yields the full empty skeleton.
func ParseFinancesData(raw []byte) FinancesData {
	if len(raw) == 0 {
		return NewFinancesData()
	}
	var tree map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tree); err != nil {
		return NewFinancesData()
	}
	return FinancesData{
		Documents:       decodeCollection[ServiceDocument](tree, "documents"),
		Expenses:        decodeCollection[ServiceExpense](tree, "expenses"),
		Budgets:         decodeCollection[ServiceExpenseBudget](tree, "budgets"),
		CashflowEntries: decodeCollection[ServiceCashflowEntry](tree, "cashflowEntries"),
		BankAccounts:    decodeCollection[ServiceBankAccount](tree, "bankAccounts"),
		Forecasts:       decodeCollection[ServiceCashflowForecast](tree, "forecasts"),
		Scenarios:       decodeCollection[ServiceCashflowScenario](tree, "scenarios"),
	}
}

func decodeCollection[T any](tree map[string]json.RawMessage, key string) []T {
	raw, ok := tree[key]
	if !ok {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []T{}
	}
	return out
}

type ServiceInvoiceItem struct {
	Id          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TaxRate     float64 `json:"taxRate"`
	Discount    float64 `json:"discount"` // percent, 0..100
}

type ServicePayment struct {
	Id          string  `json:"id"`
	DocumentId  string  `json:"documentId"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Method      string  `json:"method"`
	Reference   string  `json:"reference"`
	Note        string  `json:"note"`
	ReceiptSent bool    `json:"receiptSent"`
}

// ServiceDocument is an invoice or a quote.
type ServiceDocument struct {
	Id              string               `json:"id"`
	BusinessPlanId  string               `json:"businessPlanId"`
	Type            string               `json:"type"`
	Status          string               `json:"status"`
	DocumentNumber  string               `json:"documentNumber"`
	IssueDate       string               `json:"issueDate"`
	DueDate         string               `json:"dueDate"`
	ValidUntil      string               `json:"validUntil"`
	ClientName      string               `json:"clientName"`
	ClientEmail     string               `json:"clientEmail"`
	ClientAddress   string               `json:"clientAddress"`
	CompanyName     string               `json:"companyName"`
	CompanyAddress  string               `json:"companyAddress"`
	Items           []ServiceInvoiceItem `json:"items"`
	Payments        []ServicePayment     `json:"payments"`
	Subtotal        float64              `json:"subtotal"`
	TaxAmount       float64              `json:"taxAmount"`
	Total           float64              `json:"total"`
	AmountPaid      float64              `json:"amountPaid"`
	RemainingAmount float64              `json:"remainingAmount"`
	LastPaymentDate string               `json:"lastPaymentDate"`
	PaymentMethod   string               `json:"paymentMethod"`
	ReminderCount   int                  `json:"reminderCount"`
	RiskFlag        bool                 `json:"riskFlag"`
	Notes           string               `json:"notes"`
	CreatedAt       string               `json:"createdAt"`
	UpdatedAt       string               `json:"updatedAt"`
}

type ServiceExpense struct {
	Id                  string  `json:"id"`
	BusinessPlanId      string  `json:"businessPlanId"`
	Label               string  `json:"label"`
	Type                string  `json:"type"`
	Category            string  `json:"category"`
	Status              string  `json:"status"`
	Amount              float64 `json:"amount"`
	TaxAmount           float64 `json:"taxAmount"`
	TaxRate             float64 `json:"taxRate"`
	Tax1Name            string  `json:"tax1Name"`
	Tax1Rate            float64 `json:"tax1Rate"`
	Tax2Name            string  `json:"tax2Name"`
	Tax2Rate            float64 `json:"tax2Rate"`
	PaymentMethod       string  `json:"paymentMethod"`
	ExpenseDate         string  `json:"expenseDate"`
	Recurring           bool    `json:"recurring"`
	RecurrenceFrequency string  `json:"recurrenceFrequency"`
	RecurrenceEndDate   string  `json:"recurrenceEndDate"`
	VendorName          string  `json:"vendorName"`
	Notes               string  `json:"notes"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// ServiceExpenseBudget persists only the envelope; spent/remaining/percentUsed
// are recomputed from matching expenses on the way out and never stored.
type ServiceExpenseBudget struct {
	Id             string  `json:"id"`
	BusinessPlanId string  `json:"businessPlanId"`
	Category       string  `json:"category"`
	PeriodStart    string  `json:"periodStart"`
	PeriodEnd      string  `json:"periodEnd"`
	Amount         float64 `json:"amount"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

type ServiceCashflowEntry struct {
	Id                   string  `json:"id"`
	BusinessPlanId       string  `json:"businessPlanId"`
	Type                 string  `json:"type"`
	State                string  `json:"state"`
	Amount               float64 `json:"amount"`
	Date                 string  `json:"date"`
	Label                string  `json:"label"`
	Category             string  `json:"category"`
	SourceAccountId      string  `json:"sourceAccountId"`
	DestinationAccountId string  `json:"destinationAccountId"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

type ServiceBankAccount struct {
	Id             string  `json:"id"`
	BusinessPlanId string  `json:"businessPlanId"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Balance        float64 `json:"balance"`
	Currency       string  `json:"currency"`
	Iban           string  `json:"iban"`
	IsPrimary      bool    `json:"isPrimary"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ServiceCashflowForecast persists the derived balances alongside the entries,
// but readers must not trust them: the adapter recomputes every derived figure
// from initialBalance and the entry sequence.
type ServiceCashflowForecast struct {
	Id             string                 `json:"id"`
	BusinessPlanId string                 `json:"businessPlanId"`
	Name           string                 `json:"name"`
	StartDate      string                 `json:"startDate"`
	EndDate        string                 `json:"endDate"`
	InitialBalance float64                `json:"initialBalance"`
	Entries        []ServiceCashflowEntry `json:"entries"`
	FinalBalance   float64                `json:"finalBalance"`
	LowestBalance  float64                `json:"lowestBalance"`
	HighestBalance float64                `json:"highestBalance"`
	NetChange      float64                `json:"netChange"`
	CreatedAt      string                 `json:"createdAt"`
	UpdatedAt      string                 `json:"updatedAt"`
}

type ServiceCashflowScenario struct {
	Id             string                 `json:"id"`
	BusinessPlanId string                 `json:"businessPlanId"`
	Name           string                 `json:"name"`
	Assumptions    map[string]string      `json:"assumptions"`
	IsFavorite     bool                   `json:"isFavorite"`
	StartDate      string                 `json:"startDate"`
	EndDate        string                 `json:"endDate"`
	InitialBalance float64                `json:"initialBalance"`
	Entries        []ServiceCashflowEntry `json:"entries"`
	FinalBalance   float64                `json:"finalBalance"`
	LowestBalance  float64                `json:"lowestBalance"`
	HighestBalance float64                `json:"highestBalance"`
	NetChange      float64                `json:"netChange"`
	CreatedAt      string                 `json:"createdAt"`
	UpdatedAt      string                 `json:"updatedAt"`
}
