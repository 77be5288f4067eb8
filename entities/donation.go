package entities

import (
	"github.com/google/uuid"
)

// DonationRecord is the ledger row for quantity given away. The donated stock
// itself lives on as a Status "Donated" FoodItem row (still sweepable into
// "Expired"); this record carries the quantity for analytics exactly once.
type DonationRecord struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OwnerID       uuid.UUID  `gorm:"index" json:"owner_id"`
	OriginItemID  uuid.UUID  `gorm:"index" json:"origin_item_id"`
	DonatedItemID *uuid.UUID `json:"donated_item_id,omitempty"`
	Name          string     `json:"name"`
	Quantity      int        `json:"quantity"`
	Location      string     `json:"location"`
	Availability  string     `json:"availability"`
	Notes         string     `json:"notes,omitempty"`

	DonatedItem *FoodItem `gorm:"foreignKey:DonatedItemID"`
	Timestamp
}
