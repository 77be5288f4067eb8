package entities

import (
	"github.com/google/uuid"
	"time"
)

// ConsumptionRecord is an append-only ledger row for quantity that has been
// used. Category, storage and expiry are denormalized from the origin item at
// consumption time so a later restore can rebuild deleted partitions without
// consulting rows that may no longer exist. Reversed rows stay in history but
// are excluded from conservation sums and analytics.
type ConsumptionRecord struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OwnerID         uuid.UUID  `gorm:"index:idx_consumption_owner_date,priority:1" json:"owner_id"`
	OriginItemID    uuid.UUID  `gorm:"index" json:"origin_item_id"`
	MealPlanID      *uuid.UUID `gorm:"index" json:"meal_plan_id,omitempty"`
	Name            string     `json:"name"`
	Quantity        int        `json:"quantity"`
	Category        string     `json:"category"`
	StorageLocation string     `json:"storage_location"`
	ExpiryDate      time.Time  `json:"expiry_date"`
	FromReserved    bool       `json:"from_reserved"`
	ConsumedOn      time.Time  `gorm:"index:idx_consumption_owner_date,priority:2" json:"consumed_on"`
	Reversed        bool       `json:"reversed"`

	Timestamp
}
