package reservation

import (
	"Pantry-Ledger/entities"
	"context"
	"gorm.io/gorm"
)

type (
	ReservationRepository interface {
		CreateReservation(ctx context.Context, reservation *entities.Reservation) error
		GetReservationByID(ctx context.Context, id string) (*entities.Reservation, error)
		GetReservationByOrigin(ctx context.Context, ownerID string, originItemID string) (*entities.Reservation, error)
		UpdateReservation(ctx context.Context, reservation *entities.Reservation) error
		DeleteReservation(ctx context.Context, id string) error
		GetReservations(ctx context.Context, ownerID string) ([]*entities.Reservation, error)
	}

	reservationRepository struct {
		db *gorm.DB
	}
)

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) CreateReservation(ctx context.Context, reservation *entities.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) GetReservationByID(ctx context.Context, id string) (*entities.Reservation, error) {
	var reservation entities.Reservation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) GetReservationByOrigin(ctx context.Context, ownerID string, originItemID string) (*entities.Reservation, error) {
	var reservation entities.Reservation
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND origin_item_id = ?", ownerID, originItemID).
		First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) UpdateReservation(ctx context.Context, reservation *entities.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

func (r *reservationRepository) DeleteReservation(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Reservation{}).Error
}

func (r *reservationRepository) GetReservations(ctx context.Context, ownerID string) ([]*entities.Reservation, error) {
	var reservations []*entities.Reservation
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}
