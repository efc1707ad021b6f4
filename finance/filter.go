package finance

import (
	"strings"
	"time"
)

// Filters AND-combine every provided criterion; an absent criterion leaves
// that axis unconstrained. Both filter functions are pure and preserve the
// input order.

type InvoiceFilter struct {
	Types     []DocumentType   `json:"types"`
	Statuses  []DocumentStatus `json:"statuses"`
	From      *time.Time       `json:"from"`
	To        *time.Time       `json:"to"`
	MinAmount *float64         `json:"minAmount"`
	MaxAmount *float64         `json:"maxAmount"`
	Search    string           `json:"search"`
}

type ExpenseFilter struct {
	Categories []ExpenseCategory `json:"categories"`
	Statuses   []ExpenseStatus   `json:"statuses"`
	From       *time.Time        `json:"from"`
	To         *time.Time        `json:"to"`
	MinAmount  *float64          `json:"minAmount"`
	MaxAmount  *float64          `json:"maxAmount"`
	Recurring  *bool             `json:"recurring"`
	Search     string            `json:"search"`
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// FilterInvoices returns the documents matching every provided criterion.
// Date and amount bounds are inclusive; search is a case-insensitive
// substring match over document number, client name, client email and notes.
func FilterInvoices(docs []Document, f InvoiceFilter) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if len(f.Types) > 0 && !containsType(f.Types, d.Type) {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, d.Status) {
			continue
		}
		if f.From != nil && d.IssueDate.Before(*f.From) {
			continue
		}
		if f.To != nil && d.IssueDate.After(*f.To) {
			continue
		}
		if f.MinAmount != nil && d.Total < *f.MinAmount {
			continue
		}
		if f.MaxAmount != nil && d.Total > *f.MaxAmount {
			continue
		}
		if f.Search != "" &&
			!containsFold(d.DocumentNumber, f.Search) &&
			!containsFold(d.ClientName, f.Search) &&
			!containsFold(d.ClientEmail, f.Search) &&
			!containsFold(d.Notes, f.Search) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FilterExpenses works like FilterInvoices; search covers label, vendor name
// and notes.
func FilterExpenses(expenses []Expense, f ExpenseFilter) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if len(f.Categories) > 0 && !containsCategory(f.Categories, e.Category) {
			continue
		}
		if len(f.Statuses) > 0 && !containsExpenseStatus(f.Statuses, e.Status) {
			continue
		}
		if f.From != nil && e.ExpenseDate.Before(*f.From) {
			continue
		}
		if f.To != nil && e.ExpenseDate.After(*f.To) {
			continue
		}
		if f.MinAmount != nil && e.Amount < *f.MinAmount {
			continue
		}
		if f.MaxAmount != nil && e.Amount > *f.MaxAmount {
			continue
		}
		if f.Recurring != nil && e.Recurring != *f.Recurring {
			continue
		}
		if f.Search != "" &&
			!containsFold(e.Label, f.Search) &&
			!containsFold(e.VendorName, f.Search) &&
			!containsFold(e.Notes, f.Search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func containsType(set []DocumentType, v DocumentType) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsStatus(set []DocumentStatus, v DocumentStatus) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsCategory(set []ExpenseCategory, v ExpenseCategory) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsExpenseStatus(set []ExpenseStatus, v ExpenseStatus) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
