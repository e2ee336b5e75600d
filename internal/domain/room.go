package domain

import "time"

// RoomStatus is the administrative lifecycle of a room.
type RoomStatus string

const (
	RoomActive           RoomStatus = "active"
	RoomInactive         RoomStatus = "inactive"
	RoomUnderMaintenance RoomStatus = "under_maintenance"
	RoomRetired          RoomStatus = "retired"
)

// RoomCondition is the operational occupancy flag, distinct from RoomStatus.
// A room is booked iff exactly one active (pending or confirmed) booking
// holds it.
type RoomCondition string

const (
	ConditionAvailable RoomCondition = "available"
	ConditionBooked    RoomCondition = "booked"
)

type RoomType struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	BasePrice float64   `json:"base_price" gorm:"not null" validate:"required,gte=0"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RoomType) TableName() string { return "room_types" }

type Room struct {
	ID               int64         `json:"id" gorm:"primaryKey"`
	RoomTypeID       int64         `json:"room_type_id" gorm:"not null;index" validate:"required"`
	Number           string        `json:"number" gorm:"uniqueIndex;not null" validate:"required"`
	Status           RoomStatus    `json:"status" gorm:"type:varchar(24);not null;default:active"`
	CurrentCondition RoomCondition `json:"current_condition" gorm:"type:varchar(16);not null;default:available"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	RoomType *RoomType `json:"room_type,omitempty" gorm:"foreignKey:RoomTypeID"`
}

func (Room) TableName() string { return "rooms" }
