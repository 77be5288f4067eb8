package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateDonation = "donation created successfully"
	MessageSuccessGetDonations   = "donations retrieved successfully"

	MessageFailedCreateDonation = "failed to create donation"
	MessageFailedGetDonations   = "failed to retrieve donations"

	ErrDonationNotFound = errors.New("donation not found")
)

type (
	CreateDonationRequest struct {
		FoodItemID   string `json:"food_item_id" validate:"required,uuid"`
		Quantity     int    `json:"quantity" validate:"required,min=1"`
		Location     string `json:"location" validate:"required"`
		Availability string `json:"availability"`
		Notes        string `json:"notes"`
	}

	DonationResponse struct {
		ID           string    `json:"id"`
		OriginItemID string    `json:"origin_item_id"`
		Name         string    `json:"name"`
		Quantity     int       `json:"quantity"`
		Location     string    `json:"location"`
		Availability string    `json:"availability"`
		Notes        string    `json:"notes,omitempty"`
		CreatedAt    time.Time `json:"created_at"`
	}
)
