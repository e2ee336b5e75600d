package reconcile

import (
	"time"

	"resortbooking/internal/domain"
)

// Moderation rule reasons, stored on rejected rows and carried in events.
const (
	reasonContractMissing  = "auto-rejected: no contract before stay start"
	reasonContractUnsigned = "auto-rejected: contract not signed within grace window"
	reasonServiceExpired   = "auto-rejected: service confirmation window lapsed"
)

// The contract-missing and service-expiry rules compare at day granularity;
// the unsigned-contract rule uses an hour-granularity duration. The split is
// deliberate and load-bearing: unifying the two would change which bookings
// get rejected at the boundaries.

// contractMissingDue reports whether a pending booking with no contract is
// stale: the stay was due to start (day granularity) and no admin ever issued
// a contract.
func contractMissingDue(now time.Time, b *domain.Booking) bool {
	if b.Contract != nil {
		return false
	}
	return !dateOnly(now).Before(dateOnly(b.StartDate))
}

// signatureOverdue reports whether the booking's contract exists but the
// customer failed to sign it within the grace window.
func signatureOverdue(now time.Time, b *domain.Booking, grace time.Duration) bool {
	if b.Contract == nil || b.Contract.SignedByUser != nil {
		return false
	}
	return now.Sub(b.Contract.CreatedAt) > grace
}

// serviceWindowLapsed reports whether a pending booking-service's own
// confirmation window has passed (day granularity on its end date),
// independent of the parent booking's fate.
func serviceWindowLapsed(now time.Time, bs *domain.BookingService) bool {
	return !dateOnly(now).Before(dateOnly(bs.EndDate))
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
