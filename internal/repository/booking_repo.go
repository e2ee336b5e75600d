package repository

import (
	"context"

	"gorm.io/gorm"

	"resortbooking/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Contract").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetForUser loads a booking only if it belongs to userID. A missing row and a
// foreign row are indistinguishable to the caller.
func (r *BookingRepository) GetForUser(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Contract").
		Where("id = ? AND user_id = ?", id, userID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Contract").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) ListPending(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Contract").
		Where("status = ?", domain.BookingPending).
		Order("created_at").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
