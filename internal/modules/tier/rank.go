package tier

import (
	"sort"
	"time"

	"resortbooking/internal/domain"
)

// Rank picks the loyalty tier for a customer from their booking history.
//
// Tiers are evaluated highest first (tier_order descending). For each tier the
// bookings created within its trailing DurationMonths window (measured back
// from now) are counted and their payments summed; the first tier whose
// MinBookings and MinSpending are both met wins. First match wins: a lower
// tier matching under a more lenient window never displaces a higher one.
//
// Pure and deterministic given the same now and snapshot, so it is testable
// without a scheduler or database.
func Rank(now time.Time, bookings []domain.Booking, tiers []domain.UserTier) *domain.UserTier {
	ordered := make([]domain.UserTier, len(tiers))
	copy(ordered, tiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TierOrder > ordered[j].TierOrder
	})

	for i := range ordered {
		t := &ordered[i]
		cutoff := now.AddDate(0, -t.DurationMonths, 0)

		var count int
		var spend float64
		for _, b := range bookings {
			if b.CreatedAt.Before(cutoff) {
				continue
			}
			count++
			for _, p := range b.Payments {
				spend += p.Amount
			}
		}

		if count >= t.MinBookings && spend >= t.MinSpending {
			return t
		}
	}
	return nil
}
