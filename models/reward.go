package models

import (
	"time"
)

// RewardItem is a redeemable catalog entry. Redemptions spend points by
// appending a `redeemed` transaction; the catalog row itself never changes
// a balance.
type RewardItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	PointCost   int       `json:"point_cost" gorm:"not null"`
	Active      bool      `json:"active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (RewardItem) TableName() string {
	return "reward_items"
}
