package food

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/entities"
	"Pantry-Ledger/internal/utils/calendar"
	"Pantry-Ledger/internal/utils/keylock"
	"Pantry-Ledger/internal/utils/storage"
	"context"
	"fmt"
	"github.com/google/uuid"
	"time"
)

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, ownerID string) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, ownerID string) error
		DeleteFoodItem(ctx context.Context, id string, ownerID string) error
		GetFoodItems(ctx context.Context, ownerID string, status string, page, limit int) ([]domain.FoodItemResponse, int64, error)
		GetFoodItemByID(ctx context.Context, id string, ownerID string) (domain.FoodItemResponse, error)
		ConsumeFoodItem(ctx context.Context, id string, req domain.ConsumeFoodItemRequest, ownerID string) error
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, ownerID string) error
	}

	foodService struct {
		foodRepository FoodRepository
		s3             storage.AwsS3
		locks          *keylock.KeyLock
		clock          calendar.Clock
	}
)

func NewFoodService(foodRepository FoodRepository, s3 storage.AwsS3, locks *keylock.KeyLock, clock calendar.Clock) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		s3:             s3,
		locks:          locks,
		clock:          clock,
	}
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, ownerID string) (domain.FoodItemResponse, error) {
	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
	}

	if req.Quantity <= 0 {
		return domain.FoodItemResponse{}, domain.ErrInvalidQuantity
	}

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrParseUUID
	}

	foodItem := &entities.FoodItem{
		ID:              uuid.New(),
		OwnerID:         ownerUUID,
		Name:            req.Name,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		ExpiryDate:      expiryDate,
		Category:        req.Category,
		StorageLocation: req.StorageLocation,
		Notes:           req.Notes,
		Status:          entities.StatusUnreserved,
	}

	if err := s.foodRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(foodItem), nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, ownerID string) error {
	s.locks.Lock(ownerID)
	defer s.locks.Unlock(ownerID)

	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return domain.ErrFoodItemNotFound
		}
		return err
	}

	if foodItem.OwnerID.String() != ownerID {
		return domain.ErrUnauthorizedAccess
	}

	if foodItem.Status != entities.StatusUnreserved {
		return domain.ErrItemImmutable
	}

	if req.Name != "" {
		foodItem.Name = req.Name
	}
	if req.Quantity > 0 {
		foodItem.Quantity = req.Quantity
	}
	if req.Unit != "" {
		foodItem.Unit = req.Unit
	}
	if req.Category != "" {
		foodItem.Category = req.Category
	}
	if req.StorageLocation != "" {
		foodItem.StorageLocation = req.StorageLocation
	}
	if req.Notes != "" {
		foodItem.Notes = req.Notes
	}
	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.ErrInvalidExpiryDate
		}
		foodItem.ExpiryDate = expiryDate
	}

	return s.foodRepository.UpdateFoodItem(ctx, foodItem)
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id string, ownerID string) error {
	s.locks.Lock(ownerID)
	defer s.locks.Unlock(ownerID)

	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return domain.ErrFoodItemNotFound
		}
		return err
	}

	if foodItem.OwnerID.String() != ownerID {
		return domain.ErrUnauthorizedAccess
	}

	if foodItem.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(foodItem.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.foodRepository.DeleteFoodItem(ctx, id)
}

func (s *foodService) GetFoodItems(ctx context.Context, ownerID string, status string, page, limit int) ([]domain.FoodItemResponse, int64, error) {
	foodItems, count, err := s.foodRepository.GetFoodItems(ctx, ownerID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, item := range foodItems {
		response = append(response, toFoodItemResponse(item))
	}

	return response, count, nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string, ownerID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return domain.FoodItemResponse{}, domain.ErrFoodItemNotFound
		}
		return domain.FoodItemResponse{}, err
	}

	if foodItem.OwnerID.String() != ownerID {
		return domain.FoodItemResponse{}, domain.ErrUnauthorizedAccess
	}

	return toFoodItemResponse(foodItem), nil
}

// ConsumeFoodItem records manual usage: the quantity moves from the
// unreserved partition into the consumption ledger. The row is deleted when
// driven to zero, never persisted at zero.
func (s *foodService) ConsumeFoodItem(ctx context.Context, id string, req domain.ConsumeFoodItemRequest, ownerID string) error {
	s.locks.Lock(ownerID)
	defer s.locks.Unlock(ownerID)

	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return domain.ErrFoodItemNotFound
		}
		return err
	}

	if foodItem.OwnerID.String() != ownerID {
		return domain.ErrUnauthorizedAccess
	}

	if foodItem.Status != entities.StatusUnreserved {
		return domain.ErrItemNotConsumable
	}

	if req.Quantity > foodItem.Quantity {
		return domain.ErrInsufficientStock
	}

	record := &entities.ConsumptionRecord{
		ID:              uuid.New(),
		OwnerID:         foodItem.OwnerID,
		OriginItemID:    foodItem.ID,
		Name:            foodItem.Name,
		Quantity:        req.Quantity,
		Category:        foodItem.Category,
		StorageLocation: foodItem.StorageLocation,
		ExpiryDate:      foodItem.ExpiryDate,
		ConsumedOn:      s.clock.Now(),
	}

	foodItem.Quantity -= req.Quantity
	return s.foodRepository.RecordConsumption(ctx, foodItem, record)
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, ownerID string) error {
	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, req.FoodItemID)
	if err != nil {
		if IsNotFound(err) {
			return domain.ErrFoodItemNotFound
		}
		return err
	}

	if foodItem.OwnerID.String() != ownerID {
		return domain.ErrUnauthorizedAccess
	}

	fileName := fmt.Sprintf("food-item-%s", foodItem.ID.String())
	var objectKey string
	var uploadErr error

	if existingKey := s.s3.GetObjectKeyFromLink(foodItem.ImageURL); existingKey != "" {
		objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "food-items", storage.AllowImage...)
	}
	if uploadErr != nil {
		return uploadErr
	}

	foodItem.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	return s.foodRepository.UpdateFoodItem(ctx, foodItem)
}

func toFoodItemResponse(item *entities.FoodItem) domain.FoodItemResponse {
	return domain.FoodItemResponse{
		ID:              item.ID.String(),
		Name:            item.Name,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		ExpiryDate:      item.ExpiryDate,
		Category:        item.Category,
		StorageLocation: item.StorageLocation,
		Notes:           item.Notes,
		Status:          item.Status,
		ImageURL:        item.ImageURL,
		CreatedAt:       item.CreatedAt,
	}
}
