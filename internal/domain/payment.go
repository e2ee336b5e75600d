package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// Payment records money received against a booking. Tier recomputation sums
// these per user over the tier's trailing window.
type Payment struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID int64         `json:"booking_id" gorm:"not null;index"`
	Amount    float64       `json:"amount" gorm:"not null" validate:"gt=0"`
	Method    PaymentMethod `json:"method" gorm:"type:varchar(16);not null;default:card"`
	CreatedAt time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
