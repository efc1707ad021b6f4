package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bizplan-backend/finance"
	"bizplan-backend/models"
)

// PlanStore is the GORM-backed implementation of the finance.PlanStore
// boundary: one row per plan, whole-record get and replace.
type PlanStore struct {
	db *gorm.DB
}

func NewPlanStore() *PlanStore {
	return &PlanStore{db: DB}
}

// NewPlanStoreWith allows injecting a session or transaction.
func NewPlanStoreWith(db *gorm.DB) *PlanStore {
	return &PlanStore{db: db}
}

func (s *PlanStore) Get(ctx context.Context, id string) (*models.BusinessPlan, error) {
	var plan models.BusinessPlan
	err := s.db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("plan %s: %w", id, finance.ErrPlanNotFound)
		}
		return nil, err
	}
	return &plan, nil
}

// Update replaces the whole record and returns the persisted state.
// Last-write-wins: there is no version check at this boundary.
func (s *PlanStore) Update(ctx context.Context, id string, plan *models.BusinessPlan) (*models.BusinessPlan, error) {
	plan.Id = id
	if err := s.db.WithContext(ctx).Save(plan).Error; err != nil {
		return nil, err
	}
	var persisted models.BusinessPlan
	if err := s.db.WithContext(ctx).First(&persisted, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &persisted, nil
}
