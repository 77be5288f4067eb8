package donation

import (
	"Pantry-Ledger/entities"
	"context"

	"gorm.io/gorm"
)

type (
	DonationRepository interface {
		CreateDonationRecord(ctx context.Context, record *entities.DonationRecord) error
		GetUserDonations(ctx context.Context, ownerID string, page, limit int) ([]*entities.DonationRecord, int64, error)
		GetDonationByID(ctx context.Context, id string) (*entities.DonationRecord, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateDonationRecord(ctx context.Context, record *entities.DonationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *donationRepository) GetUserDonations(ctx context.Context, ownerID string, page, limit int) ([]*entities.DonationRecord, int64, error) {
	var records []*entities.DonationRecord
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.DonationRecord{}).Where("owner_id = ?", ownerID)
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("DonatedItem").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, count, nil
}

func (r *donationRepository) GetDonationByID(ctx context.Context, id string) (*entities.DonationRecord, error) {
	var record entities.DonationRecord
	if err := r.db.WithContext(ctx).
		Preload("DonatedItem").
		Where("id = ?", id).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
