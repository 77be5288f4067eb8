package entities

import (
	"github.com/google/uuid"
	"time"
)

// Reservation is quantity split out of an origin item and earmarked for a
// planned meal. At most one row exists per (owner, origin); repeated
// reservations merge into it.
type Reservation struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OwnerID         uuid.UUID `gorm:"index:idx_reservation_owner_origin,priority:1" json:"owner_id"`
	OriginItemID    uuid.UUID `gorm:"index:idx_reservation_owner_origin,priority:2" json:"origin_item_id"`
	Name            string    `json:"name"`
	Quantity        int       `json:"quantity"`
	Category        string    `json:"category"`
	StorageLocation string    `json:"storage_location"`
	ExpiryDate      time.Time `json:"expiry_date"`

	OriginItem *FoodItem `gorm:"foreignKey:OriginItemID"`
	Timestamp
}
