package repository

import (
	"context"

	"gorm.io/gorm"

	"resortbooking/internal/domain"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Contract, error) {
	var c domain.Contract
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
