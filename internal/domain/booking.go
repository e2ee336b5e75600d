package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed from s.
// Confirmed is terminal too: a confirmed booking cannot be cancelled.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingConfirmed || s == BookingRejected || s == BookingCancelled
}

// Active means the booking still holds its room.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed
}

// CanTransitionBooking is the booking state machine: pending may move to
// confirmed, rejected or cancelled; everything else is frozen.
func CanTransitionBooking(from, to BookingStatus) bool {
	if from != BookingPending {
		return false
	}
	return to == BookingConfirmed || to == BookingRejected || to == BookingCancelled
}

type Booking struct {
	ID         int64         `json:"id" gorm:"primaryKey"`
	UserID     int64         `json:"user_id" gorm:"not null;index" validate:"required"`
	RoomID     int64         `json:"room_id" gorm:"not null;index" validate:"required"`
	StartDate  time.Time     `json:"start_date" gorm:"not null" validate:"required"`
	EndDate    time.Time     `json:"end_date" gorm:"not null" validate:"required"`
	TotalPrice float64       `json:"total_price" gorm:"not null" validate:"gte=0"`
	Status     BookingStatus `json:"status" gorm:"type:varchar(16);not null;default:pending;index"`
	// RejectReason is set when the booking is rejected by an admin or by the
	// moderation sweep.
	RejectReason string    `json:"reject_reason,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	User     *User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Room     *Room            `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Services []BookingService `json:"services,omitempty" gorm:"foreignKey:BookingID"`
	Contract *Contract        `json:"contract,omitempty" gorm:"foreignKey:BookingID"`
	Payments []Payment        `json:"payments,omitempty" gorm:"foreignKey:BookingID"`
}

func (Booking) TableName() string { return "bookings" }
