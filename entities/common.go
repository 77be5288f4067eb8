package entities

import (
	"time"
)

// FoodItem status values. Unreserved and Donated stock can still expire;
// Expired is terminal.
const (
	StatusUnreserved = "Unreserved"
	StatusDonated    = "Donated"
	StatusExpired    = "Expired"
)

type Timestamp struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
