package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"bizplan-backend/models"
	"bizplan-backend/utils"
)

// The adapter is total: every XToUI / XToService accepts nil and malformed
// input and always produces a well-formed record. No function in this file
// returns an error.

// NewID builds a best-effort unique id: family prefix, epoch millis and a
// short random fragment. Uniqueness is not cryptographic; collisions within a
// session are not a handled case.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// parseDate accepts RFC3339 or bare dates; anything else degrades to the zero
// time, which downstream computations treat as "unknown".
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

// parseDateOr substitutes a default for missing/unparseable dates.
func parseDateOr(s string, def time.Time) time.Time {
	if t := parseDate(s); !t.IsZero() {
		return t
	}
	return def
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ComputeDocumentTotals derives the monetary rollups from the item lines:
// line net = quantity x unitPrice x (1 - discount%), tax applied per item.
// total = subtotal + taxAmount always holds for the returned triple.
func ComputeDocumentTotals(items []InvoiceItem) (subtotal, taxAmount, total float64) {
	for _, it := range items {
		line := it.Quantity * it.UnitPrice * (1 - it.Discount/100)
		subtotal += line
		taxAmount += line * it.TaxRate
	}
	subtotal = utils.Round2(subtotal)
	taxAmount = utils.Round2(taxAmount)
	total = utils.Round2(subtotal + taxAmount)
	return subtotal, taxAmount, total
}

func itemToUI(svc models.ServiceInvoiceItem) InvoiceItem {
	id := svc.Id
	if id == "" {
		id = NewID("item")
	}
	return InvoiceItem{
		Id:          id,
		Description: svc.Description,
		Quantity:    svc.Quantity,
		UnitPrice:   svc.UnitPrice,
		TaxRate:     svc.TaxRate,
		Discount:    svc.Discount,
	}
}

func itemToService(ui InvoiceItem) models.ServiceInvoiceItem {
	id := ui.Id
	if id == "" {
		id = NewID("item")
	}
	return models.ServiceInvoiceItem{
		Id:          id,
		Description: ui.Description,
		Quantity:    ui.Quantity,
		UnitPrice:   ui.UnitPrice,
		TaxRate:     ui.TaxRate,
		Discount:    ui.Discount,
	}
}

func PaymentToUI(svc *models.ServicePayment) Payment {
	now := time.Now().UTC()
	if svc == nil {
		return Payment{
			Id:     NewID("pay"),
			Date:   now,
			Method: PayBankTransfer,
		}
	}
	id := svc.Id
	if id == "" {
		id = NewID("pay")
	}
	return Payment{
		Id:          id,
		DocumentId:  svc.DocumentId,
		Amount:      svc.Amount,
		Date:        parseDateOr(svc.Date, now),
		Method:      ParsePaymentMethod(svc.Method),
		Reference:   svc.Reference,
		Note:        svc.Note,
		ReceiptSent: svc.ReceiptSent,
	}
}

func PaymentToService(ui *Payment) models.ServicePayment {
	if ui == nil {
		def := PaymentToUI(nil)
		ui = &def
	}
	id := ui.Id
	if id == "" {
		id = NewID("pay")
	}
	return models.ServicePayment{
		Id:          id,
		DocumentId:  ui.DocumentId,
		Amount:      ui.Amount,
		Date:        formatDate(ui.Date),
		Method:      string(ui.Method),
		Reference:   ui.Reference,
		Note:        ui.Note,
		ReceiptSent: ui.ReceiptSent,
	}
}

// DocumentToUI converts a persisted document; nil yields a fresh draft
// invoice due 30 days after issue.
func DocumentToUI(svc *models.ServiceDocument) Document {
	now := time.Now().UTC()
	if svc == nil {
		return Document{
			Id:            NewID("doc"),
			Type:          DocumentInvoice,
			Status:        StatusDraft,
			IssueDate:     now,
			DueDate:       now.AddDate(0, 0, 30),
			Items:         []InvoiceItem{},
			Payments:      []Payment{},
			PaymentMethod: PayBankTransfer,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}

	items := make([]InvoiceItem, 0, len(svc.Items))
	for _, it := range svc.Items {
		items = append(items, itemToUI(it))
	}
	payments := make([]Payment, 0, len(svc.Payments))
	for _, p := range svc.Payments {
		p := p
		payments = append(payments, PaymentToUI(&p))
	}

	id := svc.Id
	if id == "" {
		id = NewID("doc")
	}
	issue := parseDateOr(svc.IssueDate, now)
	subtotal, taxAmount, total := ComputeDocumentTotals(items)

	return Document{
		Id:              id,
		BusinessPlanId:  svc.BusinessPlanId,
		Type:            ParseDocumentType(svc.Type),
		Status:          ParseDocumentStatus(svc.Status),
		DocumentNumber:  svc.DocumentNumber,
		IssueDate:       issue,
		DueDate:         parseDateOr(svc.DueDate, issue.AddDate(0, 0, 30)),
		ValidUntil:      parseDate(svc.ValidUntil),
		ClientName:      svc.ClientName,
		ClientEmail:     svc.ClientEmail,
		ClientAddress:   svc.ClientAddress,
		CompanyName:     svc.CompanyName,
		CompanyAddress:  svc.CompanyAddress,
		Items:           items,
		Payments:        payments,
		Subtotal:        subtotal,
		TaxAmount:       taxAmount,
		Total:           total,
		AmountPaid:      svc.AmountPaid,
		RemainingAmount: utils.Round2(total - svc.AmountPaid),
		LastPaymentDate: parseDate(svc.LastPaymentDate),
		PaymentMethod:   ParsePaymentMethod(svc.PaymentMethod),
		ReminderCount:   svc.ReminderCount,
		RiskFlag:        svc.RiskFlag,
		Notes:           svc.Notes,
		CreatedAt:       parseDateOr(svc.CreatedAt, now),
		UpdatedAt:       parseDateOr(svc.UpdatedAt, now),
	}
}

// DocumentToService converts back for persistence. Totals are recomputed from
// the items; updatedAt is always stamped with the current time.
func DocumentToService(ui *Document) models.ServiceDocument {
	now := time.Now().UTC()
	if ui == nil {
		def := DocumentToUI(nil)
		ui = &def
	}

	items := make([]models.ServiceInvoiceItem, 0, len(ui.Items))
	uiItems := make([]InvoiceItem, 0, len(ui.Items))
	for _, it := range ui.Items {
		items = append(items, itemToService(it))
		uiItems = append(uiItems, it)
	}
	payments := make([]models.ServicePayment, 0, len(ui.Payments))
	for _, p := range ui.Payments {
		p := p
		payments = append(payments, PaymentToService(&p))
	}

	id := ui.Id
	if id == "" {
		id = NewID("doc")
	}
	subtotal, taxAmount, total := ComputeDocumentTotals(uiItems)
	created := ui.CreatedAt
	if created.IsZero() {
		created = now
	}

	return models.ServiceDocument{
		Id:              id,
		BusinessPlanId:  ui.BusinessPlanId,
		Type:            string(ui.Type),
		Status:          string(ui.Status),
		DocumentNumber:  ui.DocumentNumber,
		IssueDate:       formatDate(ui.IssueDate),
		DueDate:         formatDate(ui.DueDate),
		ValidUntil:      formatDate(ui.ValidUntil),
		ClientName:      ui.ClientName,
		ClientEmail:     ui.ClientEmail,
		ClientAddress:   ui.ClientAddress,
		CompanyName:     ui.CompanyName,
		CompanyAddress:  ui.CompanyAddress,
		Items:           items,
		Payments:        payments,
		Subtotal:        subtotal,
		TaxAmount:       taxAmount,
		Total:           total,
		AmountPaid:      utils.Round2(ui.AmountPaid),
		RemainingAmount: utils.Round2(total - ui.AmountPaid),
		LastPaymentDate: formatDate(ui.LastPaymentDate),
		PaymentMethod:   string(ui.PaymentMethod),
		ReminderCount:   ui.ReminderCount,
		RiskFlag:        ui.RiskFlag,
		Notes:           ui.Notes,
		CreatedAt:       formatDate(created),
		UpdatedAt:       formatDate(now),
	}
}

func ExpenseToUI(svc *models.ServiceExpense) Expense {
	now := time.Now().UTC()
	if svc == nil {
		return Expense{
			Id:            NewID("exp"),
			Type:          ExpenseOneTime,
			Category:      CategoryOther,
			Status:        ExpenseDraft,
			PaymentMethod: ExpensePayBankTransfer,
			ExpenseDate:   now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}
	id := svc.Id
	if id == "" {
		id = NewID("exp")
	}
	return Expense{
		Id:                  id,
		BusinessPlanId:      svc.BusinessPlanId,
		Label:               svc.Label,
		Type:                ParseExpenseType(svc.Type),
		Category:            ParseExpenseCategory(svc.Category),
		Status:              ParseExpenseStatus(svc.Status),
		Amount:              svc.Amount,
		TaxAmount:           svc.TaxAmount,
		TaxRate:             svc.TaxRate,
		Tax1Name:            svc.Tax1Name,
		Tax1Rate:            svc.Tax1Rate,
		Tax2Name:            svc.Tax2Name,
		Tax2Rate:            svc.Tax2Rate,
		PaymentMethod:       ParseExpensePaymentMethod(svc.PaymentMethod),
		ExpenseDate:         parseDateOr(svc.ExpenseDate, now),
		Recurring:           svc.Recurring,
		RecurrenceFrequency: svc.RecurrenceFrequency,
		RecurrenceEndDate:   parseDate(svc.RecurrenceEndDate),
		VendorName:          svc.VendorName,
		Notes:               svc.Notes,
		CreatedAt:           parseDateOr(svc.CreatedAt, now),
		UpdatedAt:           parseDateOr(svc.UpdatedAt, now),
	}
}

func ExpenseToService(ui *Expense) models.ServiceExpense {
	now := time.Now().UTC()
	if ui == nil {
		def := ExpenseToUI(nil)
		ui = &def
	}
	id := ui.Id
	if id == "" {
		id = NewID("exp")
	}
	created := ui.CreatedAt
	if created.IsZero() {
		created = now
	}
	return models.ServiceExpense{
		Id:                  id,
		BusinessPlanId:      ui.BusinessPlanId,
		Label:               ui.Label,
		Type:                string(ui.Type),
		Category:            string(ui.Category),
		Status:              string(ui.Status),
		Amount:              utils.Round2(ui.Amount),
		TaxAmount:           utils.Round2(ui.TaxAmount),
		TaxRate:             ui.TaxRate,
		Tax1Name:            ui.Tax1Name,
		Tax1Rate:            ui.Tax1Rate,
		Tax2Name:            ui.Tax2Name,
		Tax2Rate:            ui.Tax2Rate,
		PaymentMethod:       string(ui.PaymentMethod),
		ExpenseDate:         formatDate(ui.ExpenseDate),
		Recurring:           ui.Recurring,
		RecurrenceFrequency: ui.RecurrenceFrequency,
		RecurrenceEndDate:   formatDate(ui.RecurrenceEndDate),
		VendorName:          ui.VendorName,
		Notes:               ui.Notes,
		CreatedAt:           formatDate(created),
		UpdatedAt:           formatDate(now),
	}
}

// BudgetToUI converts the persisted envelope and derives usage from the
// expenses that fall in the budget's category and period (cancelled excluded).
func BudgetToUI(svc *models.ServiceExpenseBudget, expenses []Expense) ExpenseBudget {
	now := time.Now().UTC()
	var b ExpenseBudget
	if svc == nil {
		b = ExpenseBudget{
			Id:          NewID("bud"),
			Category:    CategoryOther,
			PeriodStart: now,
			PeriodEnd:   now.AddDate(0, 1, 0),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	} else {
		id := svc.Id
		if id == "" {
			id = NewID("bud")
		}
		b = ExpenseBudget{
			Id:             id,
			BusinessPlanId: svc.BusinessPlanId,
			Category:       ParseExpenseCategory(svc.Category),
			PeriodStart:    parseDateOr(svc.PeriodStart, now),
			PeriodEnd:      parseDateOr(svc.PeriodEnd, now.AddDate(0, 1, 0)),
			Amount:         svc.Amount,
			CreatedAt:      parseDateOr(svc.CreatedAt, now),
			UpdatedAt:      parseDateOr(svc.UpdatedAt, now),
		}
	}

	for _, e := range expenses {
		if e.Status == ExpenseCancelled || e.Category != b.Category {
			continue
		}
		if e.ExpenseDate.Before(b.PeriodStart) || e.ExpenseDate.After(b.PeriodEnd) {
			continue
		}
		b.Spent += e.Amount
	}
	b.Spent = utils.Round2(b.Spent)
	b.Remaining = utils.Round2(b.Amount - b.Spent)
	if b.Amount > 0 {
		b.PercentUsed = utils.Round2(b.Spent / b.Amount * 100)
	}
	return b
}

func BudgetToService(ui *ExpenseBudget) models.ServiceExpenseBudget {
	now := time.Now().UTC()
	if ui == nil {
		def := BudgetToUI(nil, nil)
		ui = &def
	}
	id := ui.Id
	if id == "" {
		id = NewID("bud")
	}
	created := ui.CreatedAt
	if created.IsZero() {
		created = now
	}
	return models.ServiceExpenseBudget{
		Id:             id,
		BusinessPlanId: ui.BusinessPlanId,
		Category:       string(ui.Category),
		PeriodStart:    formatDate(ui.PeriodStart),
		PeriodEnd:      formatDate(ui.PeriodEnd),
		Amount:         utils.Round2(ui.Amount),
		CreatedAt:      formatDate(created),
		UpdatedAt:      formatDate(now),
	}
}
