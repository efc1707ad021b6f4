package finance

import "time"

// Presentation shapes: typed enums, time.Time dates, derived fields included.
// These are the records the API serves and the forms edit; the adapter in this
// package is the only component that builds them from service shapes (and
// back). Derived fields (budget usage, forecast balances) are always
// recomputed on conversion and never round-trip from input.

type InvoiceItem struct {
	Id          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TaxRate     float64 `json:"taxRate"`  // fraction, e.g. 0.2
	Discount    float64 `json:"discount"` // percent, 0..100
}

type Payment struct {
	Id          string        `json:"id"`
	DocumentId  string        `json:"documentId"`
	Amount      float64       `json:"amount"`
	Date        time.Time     `json:"date"`
	Method      PaymentMethod `json:"method"`
	Reference   string        `json:"reference"`
	Note        string        `json:"note"`
	ReceiptSent bool          `json:"receiptSent"`
}

type Document struct {
	Id             string         `json:"id"`
	BusinessPlanId string         `json:"businessPlanId"`
	Type           DocumentType   `json:"type"`
	Status         DocumentStatus `json:"status"`
	DocumentNumber string         `json:"documentNumber"`
	IssueDate      time.Time      `json:"issueDate"`
	DueDate        time.Time      `json:"dueDate"`
	ValidUntil     time.Time      `json:"validUntil"`
	ClientName     string         `json:"clientName"`
	ClientEmail    string         `json:"clientEmail"`
	ClientAddress  string         `json:"clientAddress"`
	CompanyName    string         `json:"companyName"`
	CompanyAddress string         `json:"companyAddress"`
	Items          []InvoiceItem  `json:"items"`
	Payments       []Payment      `json:"payments"`

	// Monetary rollups, recomputed from Items by the adapter.
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`

	// Payment tracking.
	AmountPaid      float64       `json:"amountPaid"`
	RemainingAmount float64       `json:"remainingAmount"`
	LastPaymentDate time.Time     `json:"lastPaymentDate"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	ReminderCount   int           `json:"reminderCount"`
	RiskFlag        bool          `json:"riskFlag"`

	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Expense struct {
	Id             string               `json:"id"`
	BusinessPlanId string               `json:"businessPlanId"`
	Label          string               `json:"label"`
	Type           ExpenseType          `json:"type"`
	Category       ExpenseCategory      `json:"category"`
	Status         ExpenseStatus        `json:"status"`
	Amount         float64              `json:"amount"`
	TaxAmount      float64              `json:"taxAmount"`
	TaxRate        float64              `json:"taxRate"`
	Tax1Name       string               `json:"tax1Name"`
	Tax1Rate       float64              `json:"tax1Rate"`
	Tax2Name       string               `json:"tax2Name"`
	Tax2Rate       float64              `json:"tax2Rate"`
	PaymentMethod  ExpensePaymentMethod `json:"paymentMethod"`
	ExpenseDate    time.Time            `json:"expenseDate"`

	Recurring           bool      `json:"recurring"`
	RecurrenceFrequency string    `json:"recurrenceFrequency"`
	RecurrenceEndDate   time.Time `json:"recurrenceEndDate"`

	VendorName string    `json:"vendorName"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TotalWithTax resolves the expense's gross amount. Precedence: explicit
// taxAmount, then the general taxRate, then the itemized tax1/tax2 rates.
func (e Expense) TotalWithTax() float64 {
	switch {
	case e.TaxAmount != 0:
		return e.Amount + e.TaxAmount
	case e.TaxRate != 0:
		return e.Amount * (1 + e.TaxRate)
	case e.Tax1Rate != 0 || e.Tax2Rate != 0:
		return e.Amount * (1 + e.Tax1Rate + e.Tax2Rate)
	default:
		return e.Amount
	}
}

type ExpenseBudget struct {
	Id             string          `json:"id"`
	BusinessPlanId string          `json:"businessPlanId"`
	Category       ExpenseCategory `json:"category"`
	PeriodStart    time.Time       `json:"periodStart"`
	PeriodEnd      time.Time       `json:"periodEnd"`
	Amount         float64         `json:"amount"`

	// Derived from matching expenses, never persisted.
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percentUsed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CashflowEntry struct {
	Id                   string             `json:"id"`
	BusinessPlanId       string             `json:"businessPlanId"`
	Type                 CashflowEntryType  `json:"type"`
	State                CashflowEntryState `json:"state"`
	Amount               float64            `json:"amount"`
	Date                 time.Time          `json:"date"`
	Label                string             `json:"label"`
	Category             string             `json:"category"`
	SourceAccountId      string             `json:"sourceAccountId"`
	DestinationAccountId string             `json:"destinationAccountId"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

type BankAccount struct {
	Id             string          `json:"id"`
	BusinessPlanId string          `json:"businessPlanId"`
	Name           string          `json:"name"`
	Type           BankAccountType `json:"type"`
	Balance        float64         `json:"balance"`
	Currency       string          `json:"currency"`
	Iban           string          `json:"iban"`
	IsPrimary      bool            `json:"isPrimary"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type CashflowForecast struct {
	Id             string          `json:"id"`
	BusinessPlanId string          `json:"businessPlanId"`
	Name           string          `json:"name"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	InitialBalance float64         `json:"initialBalance"`
	Entries        []CashflowEntry `json:"entries"`

	// Derived by replaying entries in ascending date order.
	FinalBalance   float64 `json:"finalBalance"`
	LowestBalance  float64 `json:"lowestBalance"`
	HighestBalance float64 `json:"highestBalance"`
	NetChange      float64 `json:"netChange"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CashflowScenario struct {
	Id             string            `json:"id"`
	BusinessPlanId string            `json:"businessPlanId"`
	Name           string            `json:"name"`
	Assumptions    map[string]string `json:"assumptions"`
	IsFavorite     bool              `json:"isFavorite"`
	StartDate      time.Time         `json:"startDate"`
	EndDate        time.Time         `json:"endDate"`
	InitialBalance float64           `json:"initialBalance"`
	Entries        []CashflowEntry   `json:"entries"`

	FinalBalance   float64 `json:"finalBalance"`
	LowestBalance  float64 `json:"lowestBalance"`
	HighestBalance float64 `json:"highestBalance"`
	NetChange      float64 `json:"netChange"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
