package repository

import (
	"context"

	"gorm.io/gorm"

	"resortbooking/internal/domain"
)

type RoomTypeRepository struct {
	db *gorm.DB
}

func NewRoomTypeRepository(db *gorm.DB) *RoomTypeRepository {
	return &RoomTypeRepository{db: db}
}

func (r *RoomTypeRepository) Create(ctx context.Context, rt *domain.RoomType) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *RoomTypeRepository) List(ctx context.Context) ([]domain.RoomType, error) {
	var types []domain.RoomType
	if err := r.db.WithContext(ctx).Order("name").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *RoomTypeRepository) UpdateBasePrice(ctx context.Context, id int64, price float64) error {
	res := r.db.WithContext(ctx).Model(&domain.RoomType{}).Where("id = ?", id).Update("base_price", price)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
