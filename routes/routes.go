package routes

import (
	"github.com/gofiber/fiber/v2"

	"bizplan-backend/controllers"
	"bizplan-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard for mutating requests
	protected.Use(middlewares.Idempotency())

	// Profile
	protected.Get("/profile", controllers.GetProfile)
	protected.Put("/profile", controllers.UpdateProfile)

	// Business plans
	protected.Post("/plan", controllers.CreatePlan)
	protected.Get("/plans", controllers.GetPlans)
	protected.Get("/plan/:id", controllers.GetPlan)
	protected.Put("/plan/:id", controllers.UpdatePlan)
	protected.Delete("/plan/:id", controllers.DeletePlan)

	// Finances overview + monthly report
	protected.Get("/plans/:planId/finances", controllers.GetFinanceOverview)
	protected.Get("/plans/:planId/reports/:year/:month", controllers.GetMonthlyReport)

	// Invoices & quotes (upsert model with payments)
	protected.Get("/plans/:planId/invoices", controllers.GetInvoices)
	protected.Get("/plans/:planId/invoices/:id", controllers.GetInvoice)
	protected.Put("/plans/:planId/invoices", controllers.SaveInvoice)
	protected.Delete("/plans/:planId/invoices/:id", controllers.DeleteInvoice)
	protected.Post("/plans/:planId/invoices/:id/payments", controllers.CreatePayment)
	protected.Get("/plans/:planId/invoices/:id/payments", controllers.ListPayments)

	// Expenses & budgets
	protected.Get("/plans/:planId/expenses", controllers.GetExpenses)
	protected.Put("/plans/:planId/expenses", controllers.SaveExpense)
	protected.Delete("/plans/:planId/expenses/:id", controllers.DeleteExpense)
	protected.Get("/plans/:planId/budgets", controllers.GetBudgets)
	protected.Put("/plans/:planId/budgets", controllers.SaveBudget)
	protected.Delete("/plans/:planId/budgets/:id", controllers.DeleteBudget)

	// Cashflow: entries, bank accounts, forecasts, scenarios
	protected.Get("/plans/:planId/cashflow", controllers.GetCashflow)
	protected.Put("/plans/:planId/cashflow/entries", controllers.SaveCashflowEntry)
	protected.Delete("/plans/:planId/cashflow/entries/:id", controllers.DeleteCashflowEntry)
	protected.Put("/plans/:planId/accounts", controllers.SaveBankAccount)
	protected.Delete("/plans/:planId/accounts/:id", controllers.DeleteBankAccount)
	protected.Get("/plans/:planId/forecasts", controllers.GetForecasts)
	protected.Put("/plans/:planId/forecasts", controllers.SaveForecast)
	protected.Delete("/plans/:planId/forecasts/:id", controllers.DeleteForecast)
	protected.Put("/plans/:planId/scenarios", controllers.SaveScenario)
	protected.Delete("/plans/:planId/scenarios/:id", controllers.DeleteScenario)

	// Simulators (pure computation, no persistence)
	protected.Post("/simulators/fiscal", controllers.SimulateFiscal)
	protected.Post("/simulators/pricing", controllers.SimulatePricing)
}
