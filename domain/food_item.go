package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddFoodItem     = "food item added successfully"
	MessageSuccessUpdateFoodItem  = "food item updated successfully"
	MessageSuccessDeleteFoodItem  = "food item deleted successfully"
	MessageSuccessGetFoodItems    = "food items retrieved successfully"
	MessageSuccessConsumeFoodItem = "food item consumed successfully"
	MessageSuccessUploadFoodImage = "food item image uploaded successfully"

	MessageFailedAddFoodItem     = "failed to add food item"
	MessageFailedUpdateFoodItem  = "failed to update food item"
	MessageFailedDeleteFoodItem  = "failed to delete food item"
	MessageFailedGetFoodItems    = "failed to retrieve food items"
	MessageFailedConsumeFoodItem = "failed to consume food item"
	MessageFailedUploadFoodImage = "failed to upload food item image"

	ErrFoodItemNotFound  = errors.New("food item not found")
	ErrInvalidExpiryDate = errors.New("invalid expiry date")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
	ErrItemNotConsumable = errors.New("food item is not consumable stock")
	ErrItemImmutable     = errors.New("donated and expired rows are immutable history")
	ErrInconsistentState = errors.New("origin item and reservation disagree on available quantity")
)

type (
	AddFoodItemRequest struct {
		Name            string `json:"name" validate:"required"`
		Quantity        int    `json:"quantity" validate:"required,min=1"`
		Unit            string `json:"unit"`
		ExpiryDate      string `json:"expiry_date" validate:"required"`
		Category        string `json:"category"`
		StorageLocation string `json:"storage_location"`
		Notes           string `json:"notes"`
	}

	UpdateFoodItemRequest struct {
		Name            string `json:"name" validate:"omitempty"`
		Quantity        int    `json:"quantity" validate:"omitempty,min=1"`
		Unit            string `json:"unit"`
		ExpiryDate      string `json:"expiry_date" validate:"omitempty"`
		Category        string `json:"category"`
		StorageLocation string `json:"storage_location"`
		Notes           string `json:"notes"`
	}

	ConsumeFoodItemRequest struct {
		Quantity int `json:"quantity" validate:"required,min=1"`
	}

	UploadFoodImageRequest struct {
		FoodItemID string                `json:"food_id" form:"food_id" validate:"required,uuid"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	FoodItemResponse struct {
		ID              string    `json:"id"`
		Name            string    `json:"name"`
		Quantity        int       `json:"quantity"`
		Unit            string    `json:"unit,omitempty"`
		ExpiryDate      time.Time `json:"expiry_date"`
		Category        string    `json:"category"`
		StorageLocation string    `json:"storage_location"`
		Notes           string    `json:"notes,omitempty"`
		Status          string    `json:"status"`
		ImageURL        string    `json:"image_url,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
	}
)
