package controllers

import (
	"bizplan-backend/finance"

	"github.com/gofiber/fiber/v2"
)

func GetCashflow(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"entries":  mgr.CashflowEntries(),
		"accounts": mgr.BankAccounts(),
		"stats":    mgr.CashflowStats(),
		"message":  "success",
	})
}

func SaveCashflowEntry(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}

	var entry finance.CashflowEntry
	if err := c.BodyParser(&entry); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	saved, err := mgr.SaveCashflowEntry(c.Context(), entry)
	if err != nil {
		return err
	}
	return c.JSON(saved)
}

func DeleteCashflowEntry(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	if err := mgr.DeleteCashflowEntry(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// SaveBankAccount upserts an account; claiming isPrimary demotes every other
// account in the same write.
func SaveBankAccount(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}

	var account finance.BankAccount
	if err := c.BodyParser(&account); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	saved, err := mgr.SaveBankAccount(c.Context(), account)
	if err != nil {
		return err
	}
	return c.JSON(saved)
}

func DeleteBankAccount(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	if err := mgr.DeleteBankAccount(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func GetForecasts(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"forecasts": mgr.Forecasts(),
		"scenarios": mgr.Scenarios(),
		"message":   "success",
	})
}

func SaveForecast(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}

	var forecast finance.CashflowForecast
	if err := c.BodyParser(&forecast); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	saved, err := mgr.SaveForecast(c.Context(), forecast)
	if err != nil {
		return err
	}
	return c.JSON(saved)
}

func DeleteForecast(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	if err := mgr.DeleteForecast(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func SaveScenario(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}

	var scenario finance.CashflowScenario
	if err := c.BodyParser(&scenario); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	saved, err := mgr.SaveScenario(c.Context(), scenario)
	if err != nil {
		return err
	}
	return c.JSON(saved)
}

func DeleteScenario(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	if err := mgr.DeleteScenario(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
