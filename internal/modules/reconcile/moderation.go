package reconcile

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"resortbooking/internal/domain"
	"resortbooking/internal/modules/admin"
	"resortbooking/internal/modules/events"
	"resortbooking/internal/pkg/clock"
)

// ModerationSweep auto-rejects stale pending bookings and booking-services.
// One invocation runs in a single transaction: either every rejection of the
// batch commits or none do. A failed run is simply retried at the next tick,
// since the same stale set is re-evaluated from scratch.
type ModerationSweep struct {
	db     *gorm.DB
	clock  clock.Clock
	grace  time.Duration
	events events.Publisher
}

func NewModerationSweep(db *gorm.DB, clk clock.Clock, grace time.Duration, publisher events.Publisher) *ModerationSweep {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ModerationSweep{db: db, clock: clk, grace: grace, events: publisher}
}

func (s *ModerationSweep) Run(ctx context.Context) error {
	start := time.Now()
	now := s.clock.Now()

	var rejectedBookings []domain.Booking
	var rejectedServices []domain.BookingService

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending []domain.Booking
		err := tx.Preload("Contract").Preload("Services").
			Where("status = ?", domain.BookingPending).
			Find(&pending).Error
		if err != nil {
			return err
		}

		for i := range pending {
			b := &pending[i]

			var reason string
			switch {
			case contractMissingDue(now, b):
				reason = reasonContractMissing
			case signatureOverdue(now, b, s.grace):
				reason = reasonContractUnsigned
			default:
				continue
			}

			if err := admin.RejectCascade(tx, b, reason); err != nil {
				return err
			}
			rejectedBookings = append(rejectedBookings, *b)
		}

		// Pending services are judged against their own end date regardless
		// of the parent booking's fate. Services cascade-rejected above are
		// no longer pending at this point in the transaction.
		var services []domain.BookingService
		if err := tx.Where("status = ?", domain.ServicePending).
			Find(&services).Error; err != nil {
			return err
		}
		for i := range services {
			bs := &services[i]
			if !serviceWindowLapsed(now, bs) {
				continue
			}
			err := tx.Model(&domain.BookingService{}).Where("id = ? AND status = ?", bs.ID, domain.ServicePending).
				Updates(map[string]interface{}{
					"status":        domain.ServiceRejected,
					"reject_reason": reasonServiceExpired,
				}).Error
			if err != nil {
				return err
			}
			bs.Status = domain.ServiceRejected
			bs.RejectReason = reasonServiceExpired
			rejectedServices = append(rejectedServices, *bs)
		}

		return nil
	})
	if err != nil {
		return err
	}

	for _, b := range rejectedBookings {
		s.events.Publish(events.Event{
			Type:      events.BookingRejected,
			BookingID: b.ID,
			UserID:    b.UserID,
			RoomID:    b.RoomID,
			Reason:    b.RejectReason,
			At:        now,
		})
	}
	for _, bs := range rejectedServices {
		s.events.Publish(events.Event{
			Type:      events.ServiceRejected,
			BookingID: bs.BookingID,
			ServiceID: bs.ServiceID,
			Reason:    bs.RejectReason,
			At:        now,
		})
	}

	log.Printf("moderation sweep completed: rejected_bookings=%d rejected_services=%d took=%v",
		len(rejectedBookings), len(rejectedServices), time.Since(start))
	return nil
}
