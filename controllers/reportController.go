package controllers

import (
	"time"

	"bizplan-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// GetFinanceOverview returns every finances collection of the plan plus the
// derived dashboard aggregates in one response.
func GetFinanceOverview(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"invoices":      mgr.Invoices(),
		"expenses":      mgr.Expenses(),
		"budgets":       mgr.Budgets(),
		"entries":       mgr.CashflowEntries(),
		"accounts":      mgr.BankAccounts(),
		"forecasts":     mgr.Forecasts(),
		"scenarios":     mgr.Scenarios(),
		"invoiceStats":  mgr.InvoiceStats(),
		"expenseStats":  mgr.ExpenseStats(),
		"cashflowStats": mgr.CashflowStats(),
		"message":       "success",
	})
}

// GetMonthlyReport summarizes one calendar month of cashflow. Note that the
// starting balance reflects the accounts' current balances, not a historical
// reconstruction; the response carries a balanceBasis marker for that.
func GetMonthlyReport(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	year := utils.ParseIntDefault(c.Params("year"), now.Year())
	month := utils.ParseIntDefault(c.Params("month"), int(now.Month()))
	if month < 1 || month > 12 {
		return fiber.NewError(fiber.StatusBadRequest, "month must be between 1 and 12")
	}

	report, err := mgr.MonthlyReport(year, month)
	if err != nil {
		return err
	}
	return c.JSON(report)
}
