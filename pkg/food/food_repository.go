package food

import (
	"Pantry-Ledger/entities"
	"context"
	"errors"
	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		DeleteFoodItem(ctx context.Context, id string) error
		GetFoodItems(ctx context.Context, ownerID string, status string, page, limit int) ([]*entities.FoodItem, int64, error)
		GetFoodItemsByStatus(ctx context.Context, ownerID string, statuses []string) ([]*entities.FoodItem, error)

		// Consumption ledger (append-only; rows are flagged reversed, never deleted)
		RecordConsumption(ctx context.Context, foodItem *entities.FoodItem, record *entities.ConsumptionRecord) error
		GetConsumptionRecordsByMealPlan(ctx context.Context, mealPlanID string) ([]*entities.ConsumptionRecord, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(foodItem).Error
}

func (r *foodRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	var foodItem entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&foodItem).Error; err != nil {
		return nil, err
	}
	return &foodItem, nil
}

func (r *foodRepository) UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Save(foodItem).Error
}

func (r *foodRepository) DeleteFoodItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FoodItem{}).Error
}

func (r *foodRepository) GetFoodItems(ctx context.Context, ownerID string, status string, page, limit int) ([]*entities.FoodItem, int64, error) {
	var foodItems []*entities.FoodItem
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Model(&entities.FoodItem{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("expiry_date asc").Find(&foodItems).Error; err != nil {
		return nil, 0, err
	}

	return foodItems, count, nil
}

func (r *foodRepository) GetFoodItemsByStatus(ctx context.Context, ownerID string, statuses []string) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem

	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status IN ?", ownerID, statuses).
		Order("expiry_date asc").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}

	return foodItems, nil
}

// RecordConsumption commits the ledger append and the item decrement as one
// transaction. An item driven to zero is deleted, never stored at zero.
func (r *foodRepository) RecordConsumption(ctx context.Context, foodItem *entities.FoodItem, record *entities.ConsumptionRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if foodItem.Quantity == 0 {
			return tx.Where("id = ?", foodItem.ID).Delete(&entities.FoodItem{}).Error
		}
		return tx.Save(foodItem).Error
	})
}

func (r *foodRepository) GetConsumptionRecordsByMealPlan(ctx context.Context, mealPlanID string) ([]*entities.ConsumptionRecord, error) {
	var records []*entities.ConsumptionRecord
	if err := r.db.WithContext(ctx).
		Where("meal_plan_id = ?", mealPlanID).
		Order("created_at asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// IsNotFound reports whether err is the storage layer's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
