package controllers

import (
	"bizplan-backend/finance"
	"bizplan-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SimulateFiscal estimates social contributions, income tax and take-home
// income from a yearly revenue figure.
func SimulateFiscal(c *fiber.Ctx) error {
	var in finance.FiscalInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	return c.JSON(finance.SimulateFiscal(in))
}

// SimulatePricing blends hourly, package and subscription revenue.
func SimulatePricing(c *fiber.Ctx) error {
	var in finance.PricingInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	return c.JSON(finance.SimulatePricing(in))
}
