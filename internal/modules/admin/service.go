package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resortbooking/internal/domain"
	"resortbooking/internal/modules/booking"
	"resortbooking/internal/modules/events"
	"resortbooking/internal/pkg/clock"
	"resortbooking/internal/repository"
)

// Service is the admin action surface: confirm/reject transitions for
// bookings and booking-services, contract issuance and signing, and payment
// recording. Together with create/cancel and the reconciliation sweeps these
// are the only mutation entry points.
type Service struct {
	db        *gorm.DB
	bookings  *repository.BookingRepository
	contracts *repository.ContractRepository
	clock     clock.Clock
	events    events.Publisher
}

func NewService(db *gorm.DB, bookings *repository.BookingRepository, contracts *repository.ContractRepository, clk clock.Clock, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{db: db, bookings: bookings, contracts: contracts, clock: clk, events: publisher}
}

// ListPendingBookings is the moderation queue, oldest first.
func (s *Service) ListPendingBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListPending(ctx)
}

// GetBooking loads any booking regardless of owner.
func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetContract returns the contract attached to a booking, if one was issued.
func (s *Service) GetContract(ctx context.Context, bookingID int64) (*domain.Contract, error) {
	contract, err := s.contracts.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *Service) Confirm(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var b domain.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBooking(tx, bookingID, &b); err != nil {
			return err
		}
		if !domain.CanTransitionBooking(b.Status, domain.BookingConfirmed) {
			return ErrInvalidStatusTransition
		}
		if err := tx.Model(&domain.Booking{}).Where("id = ?", b.ID).
			Update("status", domain.BookingConfirmed).Error; err != nil {
			return err
		}
		b.Status = domain.BookingConfirmed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{
		Type:      events.BookingConfirmed,
		BookingID: b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		At:        s.clock.Now(),
	})

	return &b, nil
}

// Reject moves a pending booking to rejected, cascades the rejection to its
// still-pending services and releases the room, all in one transaction.
func (s *Service) Reject(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error) {
	var b domain.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBooking(tx, bookingID, &b); err != nil {
			return err
		}
		if !domain.CanTransitionBooking(b.Status, domain.BookingRejected) {
			return ErrInvalidStatusTransition
		}
		return rejectBookingCascade(tx, &b, reason)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{
		Type:      events.BookingRejected,
		BookingID: b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		Reason:    reason,
		At:        s.clock.Now(),
	})

	return &b, nil
}

func (s *Service) ConfirmService(ctx context.Context, id int64) (*domain.BookingService, error) {
	bs, err := s.transitionService(ctx, id, domain.ServiceConfirmed, "")
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{
		Type:      events.ServiceConfirmed,
		BookingID: bs.BookingID,
		ServiceID: bs.ServiceID,
		At:        s.clock.Now(),
	})
	return bs, nil
}

func (s *Service) RejectService(ctx context.Context, id int64, reason string) (*domain.BookingService, error) {
	bs, err := s.transitionService(ctx, id, domain.ServiceRejected, reason)
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{
		Type:      events.ServiceRejected,
		BookingID: bs.BookingID,
		ServiceID: bs.ServiceID,
		Reason:    reason,
		At:        s.clock.Now(),
	})
	return bs, nil
}

// CreateContract issues the signable contract for a pending booking. At most
// one contract exists per booking.
func (s *Service) CreateContract(ctx context.Context, bookingID int64) (*domain.Contract, error) {
	var contract domain.Contract

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		if err := lockBooking(tx, bookingID, &b); err != nil {
			return err
		}
		if b.Status != domain.BookingPending {
			return ErrInvalidStatusTransition
		}

		var existing int64
		if err := tx.Model(&domain.Contract{}).Where("booking_id = ?", bookingID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrContractExists
		}

		contract = domain.Contract{
			BookingID: bookingID,
			CreatedAt: s.clock.Now(),
		}
		return tx.Create(&contract).Error
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{
		Type:      events.ContractCreated,
		BookingID: bookingID,
		At:        s.clock.Now(),
	})

	return &contract, nil
}

// SignContractByUser records the customer signature. Only the booking owner
// may sign; a foreign booking id fails like a missing one. Signing twice is a
// no-op.
func (s *Service) SignContractByUser(ctx context.Context, userID, bookingID int64) (*domain.Contract, error) {
	var contract domain.Contract

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		err := tx.Where("id = ? AND user_id = ?", bookingID, userID).First(&b).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrForbidden
			}
			return err
		}
		return signContract(tx, bookingID, "signed_by_user", s.clock, &contract)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{
		Type:      events.ContractSigned,
		BookingID: bookingID,
		UserID:    userID,
		At:        s.clock.Now(),
	})

	return &contract, nil
}

func (s *Service) SignContractByAdmin(ctx context.Context, bookingID int64) (*domain.Contract, error) {
	var contract domain.Contract

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return signContract(tx, bookingID, "signed_by_admin", s.clock, &contract)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{
		Type:      events.ContractSigned,
		BookingID: bookingID,
		At:        s.clock.Now(),
	})

	return &contract, nil
}

// RecordPayment stores money received against a booking. These rows are the
// spend history the tier sweep evaluates.
func (s *Service) RecordPayment(ctx context.Context, bookingID int64, amount float64, method domain.PaymentMethod) (*domain.Payment, error) {
	if amount <= 0 {
		return nil, ErrValidation
	}

	var payment domain.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		if err := tx.First(&b, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		payment = domain.Payment{
			BookingID: bookingID,
			Amount:    amount,
			Method:    method,
			CreatedAt: s.clock.Now(),
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *Service) transitionService(ctx context.Context, id int64, to domain.BookingServiceStatus, reason string) (*domain.BookingService, error) {
	var bs domain.BookingService

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bs, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !domain.CanTransitionService(bs.Status, to) {
			return ErrInvalidStatusTransition
		}

		updates := map[string]interface{}{"status": to}
		if reason != "" {
			updates["reject_reason"] = reason
		}
		if err := tx.Model(&domain.BookingService{}).Where("id = ?", bs.ID).Updates(updates).Error; err != nil {
			return err
		}
		bs.Status = to
		bs.RejectReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bs, nil
}

func lockBooking(tx *gorm.DB, id int64, out *domain.Booking) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(out, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// rejectBookingCascade marks the booking rejected, rejects its pending
// services and releases the room. Shared with the moderation sweep so both
// paths stay atomic and identical.
func rejectBookingCascade(tx *gorm.DB, b *domain.Booking, reason string) error {
	if err := tx.Model(&domain.Booking{}).Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"status":        domain.BookingRejected,
			"reject_reason": reason,
		}).Error; err != nil {
		return err
	}

	if err := tx.Model(&domain.BookingService{}).
		Where("booking_id = ? AND status = ?", b.ID, domain.ServicePending).
		Updates(map[string]interface{}{
			"status":        domain.ServiceRejected,
			"reject_reason": reason,
		}).Error; err != nil {
		return err
	}

	if err := booking.Release(tx, b.RoomID); err != nil {
		return err
	}

	b.Status = domain.BookingRejected
	b.RejectReason = reason
	return nil
}

// RejectCascade is the moderation sweep's entry into the shared cascade.
func RejectCascade(tx *gorm.DB, b *domain.Booking, reason string) error {
	return rejectBookingCascade(tx, b, reason)
}
