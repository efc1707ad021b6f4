package controllers

import (
	"strconv"
	"strings"
	"time"

	"bizplan-backend/database"
	"bizplan-backend/finance"
	"bizplan-backend/middlewares"
	"bizplan-backend/models"

	"github.com/gofiber/fiber/v2"
)

func bindAndValidate(c *fiber.Ctx, dst interface{}) error {
	return middlewares.BindAndValidate(c, dst)
}

// ownedPlan fetches the :planId plan and enforces that the authenticated
// user owns it. Foreign plans read as 404, not 403, to avoid leaking ids.
func ownedPlan(c *fiber.Ctx) (*models.BusinessPlan, error) {
	userID, _ := c.Locals("userID").(string)
	planID := c.Params("planId")
	if planID == "" {
		planID = c.Params("id")
	}

	plan, err := database.NewPlanStore().Get(c.Context(), planID)
	if err != nil {
		return nil, err
	}
	if plan.UserId != userID {
		return nil, fiber.NewError(fiber.StatusNotFound, "business plan not found")
	}
	return plan, nil
}

// loadManager builds a finance manager for the owned :planId plan.
func loadManager(c *fiber.Ctx) (*finance.Manager, error) {
	plan, err := ownedPlan(c)
	if err != nil {
		return nil, err
	}
	mgr := finance.NewManager(database.NewPlanStore())
	if err := mgr.Load(c.Context(), plan.Id); err != nil {
		return nil, err
	}
	return mgr, nil
}

func queryFloat(c *fiber.Ctx, key string) *float64 {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func queryDate(c *fiber.Ctx, key string) *time.Time {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func queryBool(c *fiber.Ctx, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// queryList splits a comma-separated query value, dropping empty parts.
func queryList(c *fiber.Ctx, key string) []string {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
