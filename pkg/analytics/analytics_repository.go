package analytics

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

const topLimit = 3

type (
	// AnalyticsRepository aggregates the three terminal states over a time
	// window. Consumption is dated by when usage occurred, donations by when
	// they were recorded, expiry by the item's expiry date. Reversed
	// consumption rows never count.
	AnalyticsRepository interface {
		SumConsumed(ctx context.Context, ownerID string, start, end time.Time) (int, error)
		TopConsumed(ctx context.Context, ownerID string, start, end time.Time) ([]domain.NameCount, error)
		SumDonated(ctx context.Context, ownerID string, start, end time.Time) (int, error)
		TopDonated(ctx context.Context, ownerID string, start, end time.Time) ([]domain.NameCount, error)
		SumExpired(ctx context.Context, ownerID string, start, end time.Time) (int, error)
		TopExpired(ctx context.Context, ownerID string, start, end time.Time) ([]domain.NameCount, error)
	}

	analyticsRepository struct {
		db *gorm.DB
	}
)

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) consumedQuery(ctx context.Context, ownerID string, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.ConsumptionRecord{}).
		Where("owner_id = ? AND reversed = ? AND consumed_on >= ? AND consumed_on < ?", ownerID, false, start, end)
}

func (r *analyticsRepository) SumConsumed(ctx context.Context, ownerID string, start, end time.Time) (int, error) {
	return sumQuantity(r.consumedQuery(ctx, ownerID, start, end))
}

func (r *analyticsRepository) TopConsumed(ctx context.Context, ownerID string, start, end time.Time) ([]domain.NameCount, error) {
	return topByName(r.consumedQuery(ctx, ownerID, start, end))
}

func (r *analyticsRepository) donatedQuery(ctx context.Context, ownerID string, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.DonationRecord{}).
		Where("owner_id = ? AND created_at >= ? AND created_at < ?", ownerID, start, end)
}

func (r *analyticsRepository) SumDonated(ctx context.Context, ownerID string, start, end time.Time) (int, error) {
	return sumQuantity(r.donatedQuery(ctx, ownerID, start, end))
}

func (r *analyticsRepository) TopDonated(ctx context.Context, ownerID string, start, end time.Time) ([]domain.NameCount, error) {
	return topByName(r.donatedQuery(ctx, ownerID, start, end))
}

func (r *analyticsRepository) expiredQuery(ctx context.Context, ownerID string, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.FoodItem{}).
		Where("owner_id = ? AND status = ? AND expiry_date >= ? AND expiry_date < ?",
			ownerID, entities.StatusExpired, start, end)
}

func (r *analyticsRepository) SumExpired(ctx context.Context, ownerID string, start, end time.Time) (int, error) {
	return sumQuantity(r.expiredQuery(ctx, ownerID, start, end))
}

func (r *analyticsRepository) TopExpired(ctx context.Context, ownerID string, start, end time.Time) ([]domain.NameCount, error) {
	return topByName(r.expiredQuery(ctx, ownerID, start, end))
}

func sumQuantity(query *gorm.DB) (int, error) {
	var result struct {
		Total int
	}
	if err := query.Select("COALESCE(SUM(quantity), 0) as total").Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

func topByName(query *gorm.DB) ([]domain.NameCount, error) {
	var top []domain.NameCount
	if err := query.
		Select("name, SUM(quantity) as quantity").
		Group("name").
		Order("quantity desc").
		Limit(topLimit).
		Scan(&top).Error; err != nil {
		return nil, err
	}
	return top, nil
}
