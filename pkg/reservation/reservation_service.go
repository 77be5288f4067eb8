package reservation

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/entities"
	"Pantry-Ledger/internal/utils/keylock"
	"Pantry-Ledger/pkg/food"
	"context"
	"github.com/google/uuid"
)

type (
	// ReservationService moves quantity between the unreserved and reserved
	// partitions of an origin item. Reserving decrements the origin row;
	// releasing puts the quantity back, recreating the origin row if it was
	// deleted at zero. Repeated reservations for one (owner, origin) merge
	// into a single row.
	ReservationService interface {
		Reserve(ctx context.Context, req domain.CreateReservationRequest, ownerID string) (domain.ReservationResponse, error)
		Patch(ctx context.Context, id string, req domain.PatchReservationRequest, ownerID string) error
		Delete(ctx context.Context, id string, ownerID string) error
		GetReservations(ctx context.Context, ownerID string) ([]domain.ReservationResponse, error)
	}

	reservationService struct {
		reservationRepository ReservationRepository
		foodRepository        food.FoodRepository
		locks                 *keylock.KeyLock
	}
)

func NewReservationService(reservationRepository ReservationRepository, foodRepository food.FoodRepository, locks *keylock.KeyLock) ReservationService {
	return &reservationService{
		reservationRepository: reservationRepository,
		foodRepository:        foodRepository,
		locks:                 locks,
	}
}

func (s *reservationService) Reserve(ctx context.Context, req domain.CreateReservationRequest, ownerID string) (domain.ReservationResponse, error) {
	s.locks.Lock(ownerID)
	defer s.locks.Unlock(ownerID)

	origin, err := s.foodRepository.GetFoodItemByID(ctx, req.OriginItemID)
	if err != nil {
		if food.IsNotFound(err) {
			return domain.ReservationResponse{}, domain.ErrFoodItemNotFound
		}
		return domain.ReservationResponse{}, err
	}

	if origin.OwnerID.String() != ownerID {
		return domain.ReservationResponse{}, domain.ErrUnauthorizedAccess
	}

	if origin.Status != entities.StatusUnreserved {
		return domain.ReservationResponse{}, domain.ErrItemImmutable
	}

	if req.Quantity > origin.Quantity {
		return domain.ReservationResponse{}, domain.ErrInsufficientStock
	}

	reservation, err := s.reservationRepository.GetReservationByOrigin(ctx, ownerID, req.OriginItemID)
	if err != nil {
		if !food.IsNotFound(err) {
			return domain.ReservationResponse{}, err
		}
		reservation = &entities.Reservation{
			ID:              uuid.New(),
			OwnerID:         origin.OwnerID,
			OriginItemID:    origin.ID,
			Name:            origin.Name,
			Quantity:        req.Quantity,
			Category:        origin.Category,
			StorageLocation: origin.StorageLocation,
			ExpiryDate:      origin.ExpiryDate,
		}
		if err := s.reservationRepository.CreateReservation(ctx, reservation); err != nil {
			return domain.ReservationResponse{}, err
		}
	} else {
		reservation.Quantity += req.Quantity
		if err := s.reservationRepository.UpdateReservation(ctx, reservation); err != nil {
			return domain.ReservationResponse{}, err
		}
	}

	origin.Quantity -= req.Quantity
	if origin.Quantity == 0 {
		err = s.foodRepository.DeleteFoodItem(ctx, origin.ID.String())
	} else {
		err = s.foodRepository.UpdateFoodItem(ctx, origin)
	}
	if err != nil {
		return domain.ReservationResponse{}, err
	}

	return toReservationResponse(reservation), nil
}

func (s *reservationService) Patch(ctx context.Context, id string, req domain.PatchReservationRequest, ownerID string) error {
	s.locks.Lock(ownerID)
	defer s.locks.Unlock(ownerID)

	reservation, err := s.reservationRepository.GetReservationByID(ctx, id)
	if err != nil {
		if food.IsNotFound(err) {
			return domain.ErrReservationNotFound
		}
		return err
	}

	if reservation.OwnerID.String() != ownerID {
		return domain.ErrUnauthorizedAccess
	}

	delta := req.Quantity - reservation.Quantity
	switch {
	case delta > 0:
		if err := s.takeFromOrigin(ctx, reservation, delta); err != nil {
			return err
		}
	case delta < 0:
		if err := s.releaseToOrigin(ctx, reservation, -delta); err != nil {
			return err
		}
	}

	reservation.Quantity = req.Quantity
	if reservation.Quantity <= 0 {
		return s.reservationRepository.DeleteReservation(ctx, id)
	}
	return s.reservationRepository.UpdateReservation(ctx, reservation)
}

func (s *reservationService) Delete(ctx context.Context, id string, ownerID string) error {
	s.locks.Lock(ownerID)
	defer s.locks.Unlock(ownerID)

	reservation, err := s.reservationRepository.GetReservationByID(ctx, id)
	if err != nil {
		if food.IsNotFound(err) {
			return domain.ErrReservationNotFound
		}
		return err
	}

	if reservation.OwnerID.String() != ownerID {
		return domain.ErrUnauthorizedAccess
	}

	if err := s.releaseToOrigin(ctx, reservation, reservation.Quantity); err != nil {
		return err
	}

	return s.reservationRepository.DeleteReservation(ctx, id)
}

func (s *reservationService) GetReservations(ctx context.Context, ownerID string) ([]domain.ReservationResponse, error) {
	reservations, err := s.reservationRepository.GetReservations(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Same-origin reservations are summed for display, never duplicated.
	byOrigin := make(map[uuid.UUID]*domain.ReservationResponse)
	var response []domain.ReservationResponse
	for _, reservation := range reservations {
		if summed, ok := byOrigin[reservation.OriginItemID]; ok {
			summed.Quantity += reservation.Quantity
			continue
		}
		converted := toReservationResponse(reservation)
		response = append(response, converted)
		byOrigin[reservation.OriginItemID] = &response[len(response)-1]
	}

	return response, nil
}

func (s *reservationService) takeFromOrigin(ctx context.Context, reservation *entities.Reservation, quantity int) error {
	origin, err := s.foodRepository.GetFoodItemByID(ctx, reservation.OriginItemID.String())
	if err != nil {
		if food.IsNotFound(err) {
			return domain.ErrInsufficientStock
		}
		return err
	}

	if quantity > origin.Quantity {
		return domain.ErrInsufficientStock
	}

	origin.Quantity -= quantity
	if origin.Quantity == 0 {
		return s.foodRepository.DeleteFoodItem(ctx, origin.ID.String())
	}
	return s.foodRepository.UpdateFoodItem(ctx, origin)
}

func (s *reservationService) releaseToOrigin(ctx context.Context, reservation *entities.Reservation, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	origin, err := s.foodRepository.GetFoodItemByID(ctx, reservation.OriginItemID.String())
	if err != nil {
		if !food.IsNotFound(err) {
			return err
		}
		// The origin row was deleted when driven to zero; rebuild it from the
		// reservation's copy of its fields.
		origin = &entities.FoodItem{
			ID:              reservation.OriginItemID,
			OwnerID:         reservation.OwnerID,
			Name:            reservation.Name,
			Quantity:        quantity,
			ExpiryDate:      reservation.ExpiryDate,
			Category:        reservation.Category,
			StorageLocation: reservation.StorageLocation,
			Status:          entities.StatusUnreserved,
		}
		return s.foodRepository.AddFoodItem(ctx, origin)
	}

	origin.Quantity += quantity
	return s.foodRepository.UpdateFoodItem(ctx, origin)
}

func toReservationResponse(reservation *entities.Reservation) domain.ReservationResponse {
	return domain.ReservationResponse{
		ID:              reservation.ID.String(),
		OriginItemID:    reservation.OriginItemID.String(),
		Name:            reservation.Name,
		Quantity:        reservation.Quantity,
		Category:        reservation.Category,
		StorageLocation: reservation.StorageLocation,
		ExpiryDate:      reservation.ExpiryDate,
	}
}
