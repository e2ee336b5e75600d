package admin

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resortbooking/internal/domain"
	"resortbooking/internal/pkg/clock"
)

// signContract sets one of the signature timestamps if it is still nil.
// Signing an already-signed side is a no-op, so retries are harmless.
func signContract(tx *gorm.DB, bookingID int64, column string, clk clock.Clock, out *domain.Contract) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("booking_id = ?", bookingID).
		First(out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	now := clk.Now()
	switch column {
	case "signed_by_user":
		if out.SignedByUser != nil {
			return nil
		}
		out.SignedByUser = &now
	case "signed_by_admin":
		if out.SignedByAdmin != nil {
			return nil
		}
		out.SignedByAdmin = &now
	}

	return tx.Model(&domain.Contract{}).Where("id = ?", out.ID).
		Update(column, now).Error
}
