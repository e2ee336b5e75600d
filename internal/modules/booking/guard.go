package booking

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resortbooking/internal/domain"
)

// TryReserve locks the room row, verifies it can be booked, and flips its
// condition to booked. It must run inside the same transaction as the booking
// insert so the check and the flip commit or roll back together.
func TryReserve(tx *gorm.DB, roomID int64) (*domain.Room, error) {
	var room domain.Room
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if room.Status != domain.RoomActive {
		return nil, ErrRoomUnavailable
	}
	if room.CurrentCondition == domain.ConditionBooked {
		return nil, ErrRoomConflict
	}

	res := tx.Model(&domain.Room{}).Where("id = ?", roomID).
		Update("current_condition", domain.ConditionBooked)
	if res.Error != nil {
		return nil, res.Error
	}
	room.CurrentCondition = domain.ConditionBooked
	return &room, nil
}

// Release flips the room back to available. Called when the booking holding
// the room exits to a terminal non-confirmed status (cancel, reject).
func Release(tx *gorm.DB, roomID int64) error {
	return tx.Model(&domain.Room{}).Where("id = ?", roomID).
		Update("current_condition", domain.ConditionAvailable).Error
}
