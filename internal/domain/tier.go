package domain

import "time"

// UserTier is a loyalty tier definition. Higher TierOrder means higher tier.
// A tier is met when the user's bookings created within the trailing
// DurationMonths window count at least MinBookings and their payments sum to
// at least MinSpending.
type UserTier struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	TierOrder      int       `json:"tier_order" gorm:"not null;index"`
	MinSpending    float64   `json:"min_spending" gorm:"not null" validate:"gte=0"`
	MinBookings    int       `json:"min_bookings" gorm:"not null" validate:"gte=0"`
	DurationMonths int       `json:"duration_months" gorm:"not null" validate:"gt=0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (UserTier) TableName() string { return "user_tiers" }
