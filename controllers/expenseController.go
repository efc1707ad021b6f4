package controllers

import (
	"bizplan-backend/finance"

	"github.com/gofiber/fiber/v2"
)

// GetExpenses lists the plan's expenses, optionally filtered via query
// params: category, status (comma-separated), from, to, min_amount,
// max_amount, recurring, q.
func GetExpenses(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}

	filter := finance.ExpenseFilter{
		From:      queryDate(c, "from"),
		To:        queryDate(c, "to"),
		MinAmount: queryFloat(c, "min_amount"),
		MaxAmount: queryFloat(c, "max_amount"),
		Recurring: queryBool(c, "recurring"),
		Search:    c.Query("q"),
	}
	for _, s := range queryList(c, "category") {
		filter.Categories = append(filter.Categories, finance.ParseExpenseCategory(s))
	}
	for _, s := range queryList(c, "status") {
		filter.Statuses = append(filter.Statuses, finance.ParseExpenseStatus(s))
	}

	return c.JSON(fiber.Map{
		"expenses": mgr.FilterExpenses(filter),
		"stats":    mgr.ExpenseStats(),
		"message":  "success",
	})
}

func SaveExpense(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}

	var expense finance.Expense
	if err := c.BodyParser(&expense); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	saved, err := mgr.SaveExpense(c.Context(), expense)
	if err != nil {
		return err
	}
	return c.JSON(saved)
}

func DeleteExpense(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	if err := mgr.DeleteExpense(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// GetBudgets returns the budget envelopes with usage derived from the
// current expenses.
func GetBudgets(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"budgets": mgr.Budgets(),
		"message": "success",
	})
}

func SaveBudget(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}

	var budget finance.ExpenseBudget
	if err := c.BodyParser(&budget); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	saved, err := mgr.SaveBudget(c.Context(), budget)
	if err != nil {
		return err
	}
	return c.JSON(saved)
}

func DeleteBudget(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	if err := mgr.DeleteBudget(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
