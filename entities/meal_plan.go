package entities

import (
	"github.com/google/uuid"
	"time"
)

type MealPlan struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OwnerID     uuid.UUID `gorm:"index" json:"owner_id"`
	Name        string    `json:"name"`
	Ingredients string    `json:"ingredients"` // one line per ingredient, see pkg/ingredient
	Date        time.Time `json:"date"`
	MealSlot    string    `json:"meal_slot"` // "Breakfast", "Lunch", "Dinner", "Snack"

	Timestamp
}

// MealSettlement marks a meal plan's ingredients as processed into the
// consumption ledger for a given business date, exactly once.
type MealSettlement struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OwnerID        uuid.UUID `gorm:"index" json:"owner_id"`
	MealPlanID     uuid.UUID `gorm:"uniqueIndex:idx_settlement_plan_date,priority:1" json:"meal_plan_id"`
	SettlementDate time.Time `gorm:"uniqueIndex:idx_settlement_plan_date,priority:2" json:"settlement_date"`

	MealPlan *MealPlan `gorm:"foreignKey:MealPlanID"`
	Timestamp
}
