package donation

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/entities"
	"Pantry-Ledger/internal/utils/keylock"
	"Pantry-Ledger/pkg/food"
	"context"

	"github.com/google/uuid"
)

type (
	// DonationService moves quantity out of the unreserved partition into the
	// terminal donated state. The donated amount becomes its own immutable
	// food item row, traceable to its origin, plus a donation record carrying
	// the pickup details.
	DonationService interface {
		CreateDonation(ctx context.Context, req domain.CreateDonationRequest, ownerID string) (domain.DonationResponse, error)
		GetUserDonations(ctx context.Context, ownerID string, page, limit int) ([]domain.DonationResponse, int64, error)
		GetDonationByID(ctx context.Context, id string, ownerID string) (domain.DonationResponse, error)
	}

	donationService struct {
		donationRepository DonationRepository
		foodRepository     food.FoodRepository
		locks              *keylock.KeyLock
	}
)

func NewDonationService(donationRepository DonationRepository, foodRepository food.FoodRepository, locks *keylock.KeyLock) DonationService {
	return &donationService{
		donationRepository: donationRepository,
		foodRepository:     foodRepository,
		locks:              locks,
	}
}

func (s *donationService) CreateDonation(ctx context.Context, req domain.CreateDonationRequest, ownerID string) (domain.DonationResponse, error) {
	s.locks.Lock(ownerID)
	defer s.locks.Unlock(ownerID)

	origin, err := s.foodRepository.GetFoodItemByID(ctx, req.FoodItemID)
	if err != nil {
		if food.IsNotFound(err) {
			return domain.DonationResponse{}, domain.ErrFoodItemNotFound
		}
		return domain.DonationResponse{}, err
	}

	if origin.OwnerID.String() != ownerID {
		return domain.DonationResponse{}, domain.ErrUnauthorizedAccess
	}

	if origin.Status != entities.StatusUnreserved {
		return domain.DonationResponse{}, domain.ErrItemImmutable
	}

	if req.Quantity > origin.Quantity {
		return domain.DonationResponse{}, domain.ErrInsufficientStock
	}

	originID := origin.ID
	donated := &entities.FoodItem{
		ID:              uuid.New(),
		OwnerID:         origin.OwnerID,
		Name:            origin.Name,
		Quantity:        req.Quantity,
		Unit:            origin.Unit,
		ExpiryDate:      origin.ExpiryDate,
		Category:        origin.Category,
		StorageLocation: origin.StorageLocation,
		Status:          entities.StatusDonated,
		OriginItemID:    &originID,
	}
	if err := s.foodRepository.AddFoodItem(ctx, donated); err != nil {
		return domain.DonationResponse{}, err
	}

	record := &entities.DonationRecord{
		ID:            uuid.New(),
		OwnerID:       origin.OwnerID,
		OriginItemID:  origin.ID,
		DonatedItemID: &donated.ID,
		Name:          origin.Name,
		Quantity:      req.Quantity,
		Location:      req.Location,
		Availability:  req.Availability,
		Notes:         req.Notes,
	}
	if err := s.donationRepository.CreateDonationRecord(ctx, record); err != nil {
		return domain.DonationResponse{}, err
	}

	origin.Quantity -= req.Quantity
	if origin.Quantity == 0 {
		err = s.foodRepository.DeleteFoodItem(ctx, origin.ID.String())
	} else {
		err = s.foodRepository.UpdateFoodItem(ctx, origin)
	}
	if err != nil {
		return domain.DonationResponse{}, err
	}

	return toDonationResponse(record), nil
}

func (s *donationService) GetUserDonations(ctx context.Context, ownerID string, page, limit int) ([]domain.DonationResponse, int64, error) {
	records, count, err := s.donationRepository.GetUserDonations(ctx, ownerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.DonationResponse, 0, len(records))
	for _, record := range records {
		response = append(response, toDonationResponse(record))
	}

	return response, count, nil
}

func (s *donationService) GetDonationByID(ctx context.Context, id string, ownerID string) (domain.DonationResponse, error) {
	record, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if food.IsNotFound(err) {
			return domain.DonationResponse{}, domain.ErrDonationNotFound
		}
		return domain.DonationResponse{}, err
	}

	if record.OwnerID.String() != ownerID {
		return domain.DonationResponse{}, domain.ErrUnauthorizedAccess
	}

	return toDonationResponse(record), nil
}

func toDonationResponse(record *entities.DonationRecord) domain.DonationResponse {
	return domain.DonationResponse{
		ID:           record.ID.String(),
		OriginItemID: record.OriginItemID.String(),
		Name:         record.Name,
		Quantity:     record.Quantity,
		Location:     record.Location,
		Availability: record.Availability,
		Notes:        record.Notes,
		CreatedAt:    record.CreatedAt,
	}
}
