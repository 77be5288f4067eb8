package entities

import (
	"github.com/google/uuid"
	"time"
)

type FoodItem struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OwnerID         uuid.UUID  `gorm:"index" json:"owner_id"`
	Name            string     `json:"name"`
	Quantity        int        `json:"quantity"`
	Unit            string     `json:"unit,omitempty"`
	ExpiryDate      time.Time  `gorm:"index" json:"expiry_date"`
	Category        string     `json:"category"`
	StorageLocation string     `json:"storage_location"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `gorm:"index" json:"status"` // "Unreserved", "Donated", "Expired"
	OriginItemID    *uuid.UUID `json:"origin_item_id,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`

	Timestamp
}
