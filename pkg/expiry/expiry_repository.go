package expiry

import (
	"Pantry-Ledger/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ExpiryRepository interface {
		GetExpiredCandidates(ctx context.Context, ownerID string, before time.Time) ([]*entities.FoodItem, error)
		MarkExpired(ctx context.Context, ids []uuid.UUID) error
	}

	expiryRepository struct {
		db *gorm.DB
	}
)

func NewExpiryRepository(db *gorm.DB) ExpiryRepository {
	return &expiryRepository{db: db}
}

// GetExpiredCandidates returns rows whose expiry date is strictly before the
// boundary and whose state can still transition to expired. Rows already
// expired are excluded so the sweep stays monotonic.
func (r *expiryRepository) GetExpiredCandidates(ctx context.Context, ownerID string, before time.Time) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status IN ? AND expiry_date < ?",
			ownerID, []string{entities.StatusUnreserved, entities.StatusDonated}, before).
		Order("expiry_date asc").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *expiryRepository) MarkExpired(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entities.FoodItem{}).
		Where("id IN ?", ids).
		Update("status", entities.StatusExpired).Error
}
