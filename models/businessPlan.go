package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BusinessPlan is the unit of persistence: one row per plan, every section a
// JSON document. Mutations replace the whole record (read-modify-write), there
// is no field-level persistence of the finances tree.
type BusinessPlan struct {
	Id     string `json:"id" gorm:"primaryKey"`
	UserId string `json:"-" gorm:"index;not null"`
	User   User   `json:"-" gorm:"foreignKey:UserId;references:Id"`

	Name string `json:"name" gorm:"not null"`

	// Form-owned sections: the backend treats them as opaque JSON objects.
	Pitch          datatypes.JSON `json:"pitch" gorm:"type:jsonb"`
	ServicesOffer  datatypes.JSON `json:"services_offer" gorm:"type:jsonb"`
	MarketAnalysis datatypes.JSON `json:"market_analysis" gorm:"type:jsonb"`
	ActionPlan     datatypes.JSON `json:"action_plan" gorm:"type:jsonb"`

	// Finances sub-tree, service shape (see models/finances.go).
	Finances datatypes.JSON `json:"finances" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (plan *BusinessPlan) BeforeCreate(tx *gorm.DB) (err error) {
	if plan.Id == "" {
		// UUID version 4
		plan.Id = uuid.NewString()
	}
	return
}

// FinancesTree decodes the finances column. A missing or malformed column
// degrades to the empty skeleton, never to an error.
func (plan *BusinessPlan) FinancesTree() FinancesData {
	return ParseFinancesData(plan.Finances)
}

// SetFinancesTree encodes the tree back into the finances column.
func (plan *BusinessPlan) SetFinancesTree(data FinancesData) error {
	data.Normalize()
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	plan.Finances = datatypes.JSON(raw)
	return nil
}

// Clone returns a deep copy via JSON round-trip, so callers can stage changes
// without touching the loaded record until the store confirms the write.
func (plan *BusinessPlan) Clone() *BusinessPlan {
	raw, err := json.Marshal(plan)
	if err != nil {
		cp := *plan
		return &cp
	}
	var cp BusinessPlan
	if err := json.Unmarshal(raw, &cp); err != nil {
		cp = *plan
	}
	cp.Id = plan.Id
	cp.UserId = plan.UserId
	return &cp
}
