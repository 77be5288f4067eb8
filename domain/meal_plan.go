package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateMealPlan = "meal plan created successfully"
	MessageSuccessUpdateMealPlan = "meal plan updated successfully"
	MessageSuccessDeleteMealPlan = "meal plan deleted successfully"
	MessageSuccessGetMealPlans   = "meal plans retrieved successfully"
	MessageSuccessSettleMealPlan = "meal plan settled successfully"

	MessageFailedCreateMealPlan = "failed to create meal plan"
	MessageFailedUpdateMealPlan = "failed to update meal plan"
	MessageFailedDeleteMealPlan = "failed to delete meal plan"
	MessageFailedGetMealPlans   = "failed to retrieve meal plans"
	MessageFailedSettleMealPlan = "failed to settle meal plan"

	ErrMealPlanNotFound     = errors.New("meal plan not found")
	ErrInvalidMealPlanDate  = errors.New("invalid meal plan date")
	ErrMealPlanNotDue       = errors.New("meal plan date is not in the past")
	ErrUnresolvedIngredient = errors.New("no matching item or reservation for ingredient")
)

// Ingredient line outcome statuses reported by apply/restore.
const (
	OutcomeApplied  = "applied"
	OutcomePartial  = "partial"
	OutcomeRestored = "restored"
	OutcomeSkipped  = "skipped"
)

type (
	CreateMealPlanRequest struct {
		Name        string `json:"name" validate:"required"`
		Ingredients string `json:"ingredients" validate:"required"`
		Date        string `json:"date" validate:"required"`
		MealSlot    string `json:"meal_slot" validate:"required,oneof=Breakfast Lunch Dinner Snack"`
	}

	UpdateMealPlanRequest struct {
		Name        string `json:"name" validate:"omitempty"`
		Ingredients string `json:"ingredients" validate:"omitempty"`
		Date        string `json:"date" validate:"omitempty"`
		MealSlot    string `json:"meal_slot" validate:"omitempty,oneof=Breakfast Lunch Dinner Snack"`
	}

	// IngredientOutcome reports what happened to a single ingredient line
	// during apply or restore. Batches never fail opaquely; every line gets
	// one of these.
	IngredientOutcome struct {
		Line      int    `json:"line"`
		Name      string `json:"name"`
		Requested int    `json:"requested"`
		Applied   int    `json:"applied"`
		Status    string `json:"status"`
		Reason    string `json:"reason,omitempty"`
	}

	MealPlanResponse struct {
		ID          string              `json:"id"`
		Name        string              `json:"name"`
		Ingredients string              `json:"ingredients"`
		Date        time.Time           `json:"date"`
		MealSlot    string              `json:"meal_slot"`
		Outcomes    []IngredientOutcome `json:"outcomes,omitempty"`
		CreatedAt   time.Time           `json:"created_at"`
	}

	SettleMealPlanResponse struct {
		MealPlanID     string              `json:"meal_plan_id"`
		SettlementDate time.Time           `json:"settlement_date"`
		AlreadySettled bool                `json:"already_settled"`
		Outcomes       []IngredientOutcome `json:"outcomes,omitempty"`
	}
)
