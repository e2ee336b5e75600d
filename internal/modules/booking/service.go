package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resortbooking/internal/domain"
	"resortbooking/internal/modules/events"
	"resortbooking/internal/pkg/clock"
	"resortbooking/internal/repository"
)

// Service owns the booking aggregate: the booking row, its attached
// booking-services and its contract. All mutations run in one transaction so
// the room flip and the booking insert commit or roll back together.
type Service struct {
	db       *gorm.DB
	bookings *repository.BookingRepository
	clock    clock.Clock
	events   events.Publisher
}

func NewService(db *gorm.DB, bookings *repository.BookingRepository, clk clock.Clock, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		db:       db,
		bookings: bookings,
		clock:    clk,
		events:   publisher,
	}
}

type ServiceSelection struct {
	ServiceID int64
	Quantity  int
}

type CreateParams struct {
	UserID    int64
	RoomID    int64
	StartDate time.Time
	EndDate   time.Time
	Services  []ServiceSelection
}

func (s *Service) CreateBooking(ctx context.Context, p CreateParams) (*domain.Booking, error) {
	if p.EndDate.Before(p.StartDate) {
		return nil, ErrValidation
	}
	for _, sel := range p.Services {
		if sel.Quantity < 0 {
			return nil, ErrValidation
		}
	}

	var created domain.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := TryReserve(tx, p.RoomID)
		if err != nil {
			return err
		}

		var roomType domain.RoomType
		if err := tx.First(&roomType, room.RoomTypeID).Error; err != nil {
			return err
		}

		// Snapshot current catalog prices. Unknown or inactive service ids
		// are skipped rather than failing the booking.
		ids := make([]int64, 0, len(p.Services))
		for _, sel := range p.Services {
			ids = append(ids, sel.ServiceID)
		}
		var catalog []domain.Service
		if len(ids) > 0 {
			if err := tx.Where("id IN ? AND is_active = ?", ids, true).Find(&catalog).Error; err != nil {
				return err
			}
		}
		byID := make(map[int64]domain.Service, len(catalog))
		for _, svc := range catalog {
			byID[svc.ID] = svc
		}

		priced := make([]PricedService, 0, len(p.Services))
		attach := make([]domain.BookingService, 0, len(p.Services))
		for _, sel := range p.Services {
			svc, ok := byID[sel.ServiceID]
			if !ok {
				continue
			}
			qty := sel.Quantity
			if qty < 1 {
				qty = 1
			}
			priced = append(priced, PricedService{Price: svc.Price, Quantity: qty})
			attach = append(attach, domain.BookingService{
				ServiceID: svc.ID,
				Price:     svc.Price,
				Quantity:  qty,
				Status:    domain.ServicePending,
				StartDate: p.StartDate,
				EndDate:   p.EndDate,
			})
		}

		created = domain.Booking{
			UserID:     p.UserID,
			RoomID:     p.RoomID,
			StartDate:  p.StartDate,
			EndDate:    p.EndDate,
			TotalPrice: ComputeTotal(roomType.BasePrice, priced),
			Status:     domain.BookingPending,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		for i := range attach {
			attach[i].BookingID = created.ID
		}
		if len(attach) > 0 {
			if err := tx.Create(&attach).Error; err != nil {
				return err
			}
		}
		created.Services = attach

		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrRoomConflict
		}
		return nil, err
	}

	s.events.Publish(events.Event{
		Type:      events.BookingCreated,
		BookingID: created.ID,
		UserID:    created.UserID,
		RoomID:    created.RoomID,
		At:        s.clock.Now(),
	})

	return &created, nil
}

// CancelBooking cancels the caller's own pending booking and releases the
// room. A booking that does not exist and a booking owned by someone else are
// indistinguishable: both fail with ErrForbidden.
func (s *Service) CancelBooking(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	var cancelled domain.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", bookingID, userID).
			First(&b).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrForbidden
			}
			return err
		}

		switch b.Status {
		case domain.BookingPending:
			// fall through to cancel
		case domain.BookingConfirmed:
			return ErrForbidden
		default:
			return ErrAlreadyCancelled
		}

		if err := tx.Model(&domain.Booking{}).Where("id = ?", b.ID).
			Update("status", domain.BookingCancelled).Error; err != nil {
			return err
		}
		if err := Release(tx, b.RoomID); err != nil {
			return err
		}

		b.Status = domain.BookingCancelled
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{
		Type:      events.BookingCancelled,
		BookingID: cancelled.ID,
		UserID:    cancelled.UserID,
		RoomID:    cancelled.RoomID,
		At:        s.clock.Now(),
	})

	return &cancelled, nil
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) GetMyBooking(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetForUser(ctx, userID, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return b, nil
}
