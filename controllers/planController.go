package controllers

import (
	"encoding/json"

	"bizplan-backend/database"
	"bizplan-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// planSection validates that a submitted section is a JSON object; the
// backend does not interpret form-owned sections beyond that.
func planSection(raw json.RawMessage) (datatypes.JSON, error) {
	if len(raw) == 0 {
		return datatypes.JSON([]byte(`{}`)), nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "section must be a JSON object")
	}
	return datatypes.JSON(raw), nil
}

type createPlanDTO struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Pitch          json.RawMessage `json:"pitch"`
	ServicesOffer  json.RawMessage `json:"services_offer"`
	MarketAnalysis json.RawMessage `json:"market_analysis"`
	ActionPlan     json.RawMessage `json:"action_plan"`
}

func CreatePlan(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var dto createPlanDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return err
	}

	plan := models.BusinessPlan{
		UserId: userID,
		Name:   dto.Name,
	}
	var err error
	if plan.Pitch, err = planSection(dto.Pitch); err != nil {
		return err
	}
	if plan.ServicesOffer, err = planSection(dto.ServicesOffer); err != nil {
		return err
	}
	if plan.MarketAnalysis, err = planSection(dto.MarketAnalysis); err != nil {
		return err
	}
	if plan.ActionPlan, err = planSection(dto.ActionPlan); err != nil {
		return err
	}

	// Start with the empty finances skeleton so the tree always round-trips.
	if err := plan.SetFinancesTree(models.NewFinancesData()); err != nil {
		return err
	}

	if err := database.DB.Create(&plan).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create business plan")
	}
	return c.JSON(plan)
}

func GetPlans(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var plans []models.BusinessPlan
	database.DB.Where("user_id = ?", userID).Order("created_at").Find(&plans)
	return c.JSON(fiber.Map{
		"plans":   plans,
		"message": "success",
	})
}

func GetPlan(c *fiber.Ctx) error {
	plan, err := ownedPlan(c)
	if err != nil {
		return err
	}
	return c.JSON(plan)
}

type updatePlanDTO struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Pitch          *json.RawMessage `json:"pitch"`
	ServicesOffer  *json.RawMessage `json:"services_offer"`
	MarketAnalysis *json.RawMessage `json:"market_analysis"`
	ActionPlan     *json.RawMessage `json:"action_plan"`
}

// UpdatePlan patches plan metadata and sections; absent fields stay as-is.
// The finances tree is never writable through this endpoint.
func UpdatePlan(c *fiber.Ctx) error {
	plan, err := ownedPlan(c)
	if err != nil {
		return err
	}

	var dto updatePlanDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return err
	}

	if dto.Name != nil {
		plan.Name = *dto.Name
	}
	sections := []struct {
		raw *json.RawMessage
		dst *datatypes.JSON
	}{
		{dto.Pitch, &plan.Pitch},
		{dto.ServicesOffer, &plan.ServicesOffer},
		{dto.MarketAnalysis, &plan.MarketAnalysis},
		{dto.ActionPlan, &plan.ActionPlan},
	}
	for _, s := range sections {
		if s.raw == nil {
			continue
		}
		section, err := planSection(*s.raw)
		if err != nil {
			return err
		}
		*s.dst = section
	}

	if err := database.DB.Save(plan).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update business plan")
	}
	return c.JSON(plan)
}

func DeletePlan(c *fiber.Ctx) error {
	plan, err := ownedPlan(c)
	if err != nil {
		return err
	}
	if err := database.DB.Delete(&models.BusinessPlan{}, "id = ?", plan.Id).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete business plan")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
