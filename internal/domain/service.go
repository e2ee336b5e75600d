package domain

import "time"

type Service struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Price     float64   `json:"price" gorm:"not null" validate:"gte=0"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Service) TableName() string { return "services" }

type BookingServiceStatus string

const (
	ServicePending   BookingServiceStatus = "pending"
	ServiceConfirmed BookingServiceStatus = "confirmed"
	ServiceRejected  BookingServiceStatus = "rejected"
)

// CanTransitionService mirrors the booking state machine per attached service,
// allowing partial rejection without touching the parent booking.
func CanTransitionService(from, to BookingServiceStatus) bool {
	if from != ServicePending {
		return false
	}
	return to == ServiceConfirmed || to == ServiceRejected
}

// BookingService is an add-on attached to a booking. Price is snapshotted at
// attach time and never updated afterwards, so historical revenue stays stable
// when the catalog price changes.
type BookingService struct {
	ID           int64                `json:"id" gorm:"primaryKey"`
	BookingID    int64                `json:"booking_id" gorm:"not null;index"`
	ServiceID    int64                `json:"service_id" gorm:"not null;index"`
	Price        float64              `json:"price" gorm:"not null"`
	Quantity     int                  `json:"quantity" gorm:"not null;default:1"`
	Status       BookingServiceStatus `json:"status" gorm:"type:varchar(16);not null;default:pending;index"`
	RejectReason string               `json:"reject_reason,omitempty" gorm:"type:text"`
	StartDate    time.Time            `json:"start_date"`
	EndDate      time.Time            `json:"end_date"`
	CreatedAt    time.Time            `json:"created_at"`

	Service *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

func (BookingService) TableName() string { return "booking_services" }
