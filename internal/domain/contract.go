package domain

import "time"

// Contract is the signable agreement tied one-to-one to a booking.
// A booking is awaiting signature while SignedByUser is nil.
type Contract struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	BookingID     int64      `json:"booking_id" gorm:"uniqueIndex;not null"`
	SignedByUser  *time.Time `json:"signed_by_user,omitempty"`
	SignedByAdmin *time.Time `json:"signed_by_admin,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Contract) TableName() string { return "contracts" }
