package mealplan

import (
	"Pantry-Ledger/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	MealPlanRepository interface {
		CreateMealPlan(ctx context.Context, mealPlan *entities.MealPlan) error
		GetMealPlanByID(ctx context.Context, id string) (*entities.MealPlan, error)
		DeleteMealPlan(ctx context.Context, id string) error
		GetMealPlans(ctx context.Context, ownerID string, page, limit int) ([]*entities.MealPlan, int64, error)
		GetSettlement(ctx context.Context, mealPlanID string, settlementDate time.Time) (*entities.MealSettlement, error)
		ApplyChangeSets(ctx context.Context, changeSets ...*ChangeSet) error
	}

	mealPlanRepository struct {
		db *gorm.DB
	}
)

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) CreateMealPlan(ctx context.Context, mealPlan *entities.MealPlan) error {
	return r.db.WithContext(ctx).Create(mealPlan).Error
}

func (r *mealPlanRepository) GetMealPlanByID(ctx context.Context, id string) (*entities.MealPlan, error) {
	var mealPlan entities.MealPlan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&mealPlan).Error; err != nil {
		return nil, err
	}
	return &mealPlan, nil
}

func (r *mealPlanRepository) DeleteMealPlan(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MealPlan{}).Error
}

func (r *mealPlanRepository) GetMealPlans(ctx context.Context, ownerID string, page, limit int) ([]*entities.MealPlan, int64, error) {
	var mealPlans []*entities.MealPlan
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.MealPlan{}).Where("owner_id = ?", ownerID)
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("date asc").Offset(offset).Limit(limit).Find(&mealPlans).Error; err != nil {
		return nil, 0, err
	}

	return mealPlans, count, nil
}

func (r *mealPlanRepository) GetSettlement(ctx context.Context, mealPlanID string, settlementDate time.Time) (*entities.MealSettlement, error) {
	var settlement entities.MealSettlement
	if err := r.db.WithContext(ctx).
		Where("meal_plan_id = ? AND settlement_date = ?", mealPlanID, settlementDate).
		First(&settlement).Error; err != nil {
		return nil, err
	}
	return &settlement, nil
}

// ApplyChangeSets persists the engine's output atomically. Change sets are
// applied in order; within each one creates run before updates and deletes so
// a row restored by one set can be consumed again by the next.
func (r *mealPlanRepository) ApplyChangeSets(ctx context.Context, changeSets ...*ChangeSet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cs := range changeSets {
			if cs == nil || cs.Empty() {
				continue
			}
			if err := applyChangeSet(tx, cs); err != nil {
				return err
			}
		}
		return nil
	})
}

func applyChangeSet(tx *gorm.DB, cs *ChangeSet) error {
	for _, plan := range cs.PlanUpdates {
		if err := tx.Save(plan).Error; err != nil {
			return err
		}
	}
	for _, item := range cs.ItemCreates {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
	}
	for _, reservation := range cs.ReservationCreates {
		if err := tx.Create(reservation).Error; err != nil {
			return err
		}
	}
	for _, item := range cs.ItemUpdates {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
	}
	for _, reservation := range cs.ReservationUpdates {
		if err := tx.Save(reservation).Error; err != nil {
			return err
		}
	}
	if len(cs.ItemDeletes) > 0 {
		if err := tx.Where("id IN ?", cs.ItemDeletes).Delete(&entities.FoodItem{}).Error; err != nil {
			return err
		}
	}
	if len(cs.ReservationDeletes) > 0 {
		if err := tx.Where("id IN ?", cs.ReservationDeletes).Delete(&entities.Reservation{}).Error; err != nil {
			return err
		}
	}
	for _, record := range cs.ConsumptionCreates {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
	}
	if len(cs.ConsumptionReversals) > 0 {
		if err := tx.Model(&entities.ConsumptionRecord{}).
			Where("id IN ?", cs.ConsumptionReversals).
			Update("reversed", true).Error; err != nil {
			return err
		}
	}
	if len(cs.SettlementDeletePlans) > 0 {
		if err := tx.Where("meal_plan_id IN ?", cs.SettlementDeletePlans).
			Delete(&entities.MealSettlement{}).Error; err != nil {
			return err
		}
	}
	for _, settlement := range cs.SettlementCreates {
		if err := tx.Create(settlement).Error; err != nil {
			return err
		}
	}
	return nil
}
