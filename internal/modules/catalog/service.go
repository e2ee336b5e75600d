package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"resortbooking/internal/domain"
	"resortbooking/internal/repository"
)

// Service is the administrative inventory/pricing surface: room types, rooms,
// add-on services and tier definitions.
type Service struct {
	roomTypes *repository.RoomTypeRepository
	rooms     *repository.RoomRepository
	services  *repository.ServiceRepository
	tiers     *repository.TierRepository
}

func NewService(
	roomTypes *repository.RoomTypeRepository,
	rooms *repository.RoomRepository,
	services *repository.ServiceRepository,
	tiers *repository.TierRepository,
) *Service {
	return &Service{
		roomTypes: roomTypes,
		rooms:     rooms,
		services:  services,
		tiers:     tiers,
	}
}

func (s *Service) CreateRoomType(ctx context.Context, rt *domain.RoomType) error {
	if rt.Name == "" || rt.BasePrice < 0 {
		return ErrValidation
	}
	return mapUniqueError(s.roomTypes.Create(ctx, rt))
}

func (s *Service) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	return s.roomTypes.List(ctx)
}

func (s *Service) UpdateRoomTypePrice(ctx context.Context, id int64, price float64) error {
	if price < 0 {
		return ErrValidation
	}
	return mapNotFound(s.roomTypes.UpdateBasePrice(ctx, id, price))
}

func (s *Service) CreateRoom(ctx context.Context, room *domain.Room) error {
	if room.Number == "" || room.RoomTypeID == 0 {
		return ErrValidation
	}
	if room.Status == "" {
		room.Status = domain.RoomActive
	}
	if room.CurrentCondition == "" {
		room.CurrentCondition = domain.ConditionAvailable
	}
	return mapUniqueError(s.rooms.Create(ctx, room))
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}

func (s *Service) UpdateRoomStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	switch status {
	case domain.RoomActive, domain.RoomInactive, domain.RoomUnderMaintenance, domain.RoomRetired:
	default:
		return ErrValidation
	}
	return mapNotFound(s.rooms.UpdateStatus(ctx, id, status))
}

func (s *Service) CreateService(ctx context.Context, svc *domain.Service) error {
	if svc.Name == "" || svc.Price < 0 {
		return ErrValidation
	}
	svc.IsActive = true
	return mapUniqueError(s.services.Create(ctx, svc))
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx)
}

func (s *Service) UpdateServicePrice(ctx context.Context, id int64, price float64) error {
	if price < 0 {
		return ErrValidation
	}
	return mapNotFound(s.services.UpdatePrice(ctx, id, price))
}

func (s *Service) CreateTier(ctx context.Context, t *domain.UserTier) error {
	if t.Name == "" || t.DurationMonths <= 0 || t.MinSpending < 0 || t.MinBookings < 0 {
		return ErrValidation
	}
	return mapUniqueError(s.tiers.Create(ctx, t))
}

func (s *Service) ListTiers(ctx context.Context) ([]domain.UserTier, error) {
	return s.tiers.ListOrdered(ctx)
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func mapUniqueError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrNameTaken
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed") {
		return ErrNameTaken
	}
	return err
}
