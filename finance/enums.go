package finance

// Enum string values are a compatibility contract with previously persisted
// plans: never rename an identifier, only append. Every ParseX function is
// total — an unknown string maps to the family's canonical default, never to
// an error.

type DocumentType string

const (
	DocumentInvoice DocumentType = "invoice"
	DocumentQuote   DocumentType = "quote"
)

func ParseDocumentType(s string) DocumentType {
	switch s {
	case string(DocumentQuote):
		return DocumentQuote
	default:
		return DocumentInvoice
	}
}

type DocumentStatus string

const (
	StatusDraft         DocumentStatus = "draft"
	StatusSent          DocumentStatus = "sent"
	StatusAccepted      DocumentStatus = "accepted"
	StatusRejected      DocumentStatus = "rejected"
	StatusPartiallyPaid DocumentStatus = "partially_paid"
	StatusPaid          DocumentStatus = "paid"
	StatusOverdue       DocumentStatus = "overdue"
	StatusDispute       DocumentStatus = "dispute"
	StatusCollection    DocumentStatus = "collection"
)

// DocumentStatuses lists the full vocabulary in lifecycle order. Aggregations
// zero-fill per-status counts over this slice.
var DocumentStatuses = []DocumentStatus{
	StatusDraft, StatusSent, StatusAccepted, StatusRejected,
	StatusPartiallyPaid, StatusPaid, StatusOverdue, StatusDispute, StatusCollection,
}

func ParseDocumentStatus(s string) DocumentStatus {
	switch s {
	case string(StatusSent):
		return StatusSent
	case string(StatusAccepted):
		return StatusAccepted
	case string(StatusRejected):
		return StatusRejected
	case string(StatusPartiallyPaid):
		return StatusPartiallyPaid
	case string(StatusPaid):
		return StatusPaid
	case string(StatusOverdue):
		return StatusOverdue
	case string(StatusDispute):
		return StatusDispute
	case string(StatusCollection):
		return StatusCollection
	default:
		return StatusDraft
	}
}

// PaymentMethod covers invoice payments.
type PaymentMethod string

const (
	PayBankTransfer PaymentMethod = "bank_transfer"
	PayCreditCard   PaymentMethod = "credit_card"
	PayCheck        PaymentMethod = "check"
	PayCash         PaymentMethod = "cash"
	PayPaypal       PaymentMethod = "paypal"
	PayDirectDebit  PaymentMethod = "direct_debit"
)

var PaymentMethods = []PaymentMethod{
	PayBankTransfer, PayCreditCard, PayCheck, PayCash, PayPaypal, PayDirectDebit,
}

func ParsePaymentMethod(s string) PaymentMethod {
	switch s {
	case string(PayCreditCard):
		return PayCreditCard
	case string(PayCheck):
		return PayCheck
	case string(PayCash):
		return PayCash
	case string(PayPaypal):
		return PayPaypal
	case string(PayDirectDebit):
		return PayDirectDebit
	default:
		return PayBankTransfer
	}
}

// ExpensePaymentMethod overlaps PaymentMethod but is a distinct set: expenses
// know company cards and debit cards, not paypal or direct debit.
type ExpensePaymentMethod string

const (
	ExpensePayBankTransfer ExpensePaymentMethod = "bank_transfer"
	ExpensePayCreditCard   ExpensePaymentMethod = "credit_card"
	ExpensePayDebitCard    ExpensePaymentMethod = "debit_card"
	ExpensePayCash         ExpensePaymentMethod = "cash"
	ExpensePayCheck        ExpensePaymentMethod = "check"
	ExpensePayCompanyCard  ExpensePaymentMethod = "company_card"
)

var ExpensePaymentMethods = []ExpensePaymentMethod{
	ExpensePayBankTransfer, ExpensePayCreditCard, ExpensePayDebitCard,
	ExpensePayCash, ExpensePayCheck, ExpensePayCompanyCard,
}

func ParseExpensePaymentMethod(s string) ExpensePaymentMethod {
	switch s {
	case string(ExpensePayCreditCard):
		return ExpensePayCreditCard
	case string(ExpensePayDebitCard):
		return ExpensePayDebitCard
	case string(ExpensePayCash):
		return ExpensePayCash
	case string(ExpensePayCheck):
		return ExpensePayCheck
	case string(ExpensePayCompanyCard):
		return ExpensePayCompanyCard
	default:
		return ExpensePayBankTransfer
	}
}

type ExpenseType string

const (
	ExpenseOneTime      ExpenseType = "one_time"
	ExpenseRecurring    ExpenseType = "recurring"
	ExpenseReimbursable ExpenseType = "reimbursable"
	ExpenseMileage      ExpenseType = "mileage"
)

var ExpenseTypes = []ExpenseType{
	ExpenseOneTime, ExpenseRecurring, ExpenseReimbursable, ExpenseMileage,
}

func ParseExpenseType(s string) ExpenseType {
	switch s {
	case string(ExpenseRecurring):
		return ExpenseRecurring
	case string(ExpenseReimbursable):
		return ExpenseReimbursable
	case string(ExpenseMileage):
		return ExpenseMileage
	default:
		return ExpenseOneTime
	}
}

type ExpenseStatus string

const (
	ExpenseDraft      ExpenseStatus = "draft"
	ExpensePending    ExpenseStatus = "pending"
	ExpensePaid       ExpenseStatus = "paid"
	ExpenseRejected   ExpenseStatus = "rejected"
	ExpenseReimbursed ExpenseStatus = "reimbursed"
	ExpenseCancelled  ExpenseStatus = "cancelled"
)

var ExpenseStatuses = []ExpenseStatus{
	ExpenseDraft, ExpensePending, ExpensePaid,
	ExpenseRejected, ExpenseReimbursed, ExpenseCancelled,
}

func ParseExpenseStatus(s string) ExpenseStatus {
	switch s {
	case string(ExpensePending):
		return ExpensePending
	case string(ExpensePaid):
		return ExpensePaid
	case string(ExpenseRejected):
		return ExpenseRejected
	case string(ExpenseReimbursed):
		return ExpenseReimbursed
	case string(ExpenseCancelled):
		return ExpenseCancelled
	default:
		return ExpenseDraft
	}
}

type ExpenseCategory string

const (
	CategoryRent                 ExpenseCategory = "rent"
	CategoryUtilities            ExpenseCategory = "utilities"
	CategoryInsurance            ExpenseCategory = "insurance"
	CategorySoftware             ExpenseCategory = "software"
	CategoryHardware             ExpenseCategory = "hardware"
	CategoryOfficeSupplies       ExpenseCategory = "office_supplies"
	CategoryTravel               ExpenseCategory = "travel"
	CategoryMeals                ExpenseCategory = "meals"
	CategoryMarketing            ExpenseCategory = "marketing"
	CategoryProfessionalServices ExpenseCategory = "professional_services"
	CategoryTelecommunications   ExpenseCategory = "telecommunications"
	CategoryTraining             ExpenseCategory = "training"
	CategoryBankFees             ExpenseCategory = "bank_fees"
	CategoryTaxes                ExpenseCategory = "taxes"
	CategoryOther                ExpenseCategory = "other"
)

var ExpenseCategories = []ExpenseCategory{
	CategoryRent, CategoryUtilities, CategoryInsurance, CategorySoftware,
	CategoryHardware, CategoryOfficeSupplies, CategoryTravel, CategoryMeals,
	CategoryMarketing, CategoryProfessionalServices, CategoryTelecommunications,
	CategoryTraining, CategoryBankFees, CategoryTaxes, CategoryOther,
}

func ParseExpenseCategory(s string) ExpenseCategory {
	for _, c := range ExpenseCategories {
		if s == string(c) {
			return c
		}
	}
	return CategoryOther
}

type CashflowEntryType string

const (
	CashflowIncome   CashflowEntryType = "income"
	CashflowExpense  CashflowEntryType = "expense"
	CashflowTax      CashflowEntryType = "tax"
	CashflowTransfer CashflowEntryType = "transfer"
)

var CashflowEntryTypes = []CashflowEntryType{
	CashflowIncome, CashflowExpense, CashflowTax, CashflowTransfer,
}

func ParseCashflowEntryType(s string) CashflowEntryType {
	switch s {
	case string(CashflowExpense):
		return CashflowExpense
	case string(CashflowTax):
		return CashflowTax
	case string(CashflowTransfer):
		return CashflowTransfer
	default:
		return CashflowIncome
	}
}

type CashflowEntryState string

const (
	EntryProjected CashflowEntryState = "projected"
	EntryConfirmed CashflowEntryState = "confirmed"
	EntryCompleted CashflowEntryState = "completed"
	EntryCancelled CashflowEntryState = "cancelled"
)

var CashflowEntryStates = []CashflowEntryState{
	EntryProjected, EntryConfirmed, EntryCompleted, EntryCancelled,
}

func ParseCashflowEntryState(s string) CashflowEntryState {
	switch s {
	case string(EntryConfirmed):
		return EntryConfirmed
	case string(EntryCompleted):
		return EntryCompleted
	case string(EntryCancelled):
		return EntryCancelled
	default:
		return EntryProjected
	}
}

type BankAccountType string

const (
	AccountChecking   BankAccountType = "checking"
	AccountSavings    BankAccountType = "savings"
	AccountBusiness   BankAccountType = "business"
	AccountInvestment BankAccountType = "investment"
	AccountCreditLine BankAccountType = "credit_line"
	AccountCash       BankAccountType = "cash"
)

var BankAccountTypes = []BankAccountType{
	AccountChecking, AccountSavings, AccountBusiness,
	AccountInvestment, AccountCreditLine, AccountCash,
}

func ParseBankAccountType(s string) BankAccountType {
	switch s {
	case string(AccountSavings):
		return AccountSavings
	case string(AccountBusiness):
		return AccountBusiness
	case string(AccountInvestment):
		return AccountInvestment
	case string(AccountCreditLine):
		return AccountCreditLine
	case string(AccountCash):
		return AccountCash
	default:
		return AccountChecking
	}
}
