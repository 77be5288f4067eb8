package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateReservation = "reservation created successfully"
	MessageSuccessPatchReservation  = "reservation updated successfully"
	MessageSuccessDeleteReservation = "reservation released successfully"
	MessageSuccessGetReservations   = "reservations retrieved successfully"

	MessageFailedCreateReservation = "failed to create reservation"
	MessageFailedPatchReservation  = "failed to update reservation"
	MessageFailedDeleteReservation = "failed to release reservation"
	MessageFailedGetReservations   = "failed to retrieve reservations"

	ErrReservationNotFound = errors.New("reservation not found")
)

type (
	CreateReservationRequest struct {
		OriginItemID string `json:"origin_item_id" validate:"required,uuid"`
		Quantity     int    `json:"quantity" validate:"required,min=1"`
	}

	// PatchReservationRequest sets the reservation to a new absolute
	// quantity; the difference is reserved from or released back to the
	// origin item. Zero or below releases everything and deletes the row.
	PatchReservationRequest struct {
		Quantity int `json:"quantity" validate:"min=0"`
	}

	ReservationResponse struct {
		ID              string    `json:"id"`
		OriginItemID    string    `json:"origin_item_id"`
		Name            string    `json:"name"`
		Quantity        int       `json:"quantity"`
		Category        string    `json:"category"`
		StorageLocation string    `json:"storage_location"`
		ExpiryDate      time.Time `json:"expiry_date"`
	}
)
