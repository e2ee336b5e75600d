package reconcile

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"resortbooking/internal/domain"
	"resortbooking/internal/modules/tier"
	"resortbooking/internal/pkg/clock"
)

// TierSweep re-evaluates every customer's loyalty tier from their trailing
// booking/payment history. All assignments of one run share a transaction.
type TierSweep struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewTierSweep(db *gorm.DB, clk clock.Clock) *TierSweep {
	return &TierSweep{db: db, clock: clk}
}

func (s *TierSweep) Run(ctx context.Context) error {
	start := time.Now()
	now := s.clock.Now()

	var assigned, cleared int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tiers []domain.UserTier
		if err := tx.Order("tier_order desc").Find(&tiers).Error; err != nil {
			return err
		}

		var users []domain.User
		err := tx.Preload("Bookings").Preload("Bookings.Payments").
			Where("role = ?", domain.RoleCustomer).
			Find(&users).Error
		if err != nil {
			return err
		}

		for i := range users {
			u := &users[i]
			ranked := tier.Rank(now, u.Bookings, tiers)

			var newTierID *int64
			if ranked != nil {
				id := ranked.ID
				newTierID = &id
			}
			if tierIDEqual(u.TierID, newTierID) {
				continue
			}

			if err := tx.Model(&domain.User{}).Where("id = ?", u.ID).
				Update("tier_id", newTierID).Error; err != nil {
				return err
			}
			if newTierID != nil {
				assigned++
			} else {
				cleared++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("tier sweep completed: assigned=%d cleared=%d took=%v", assigned, cleared, time.Since(start))
	return nil
}

func tierIDEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
