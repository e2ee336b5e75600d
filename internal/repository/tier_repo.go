package repository

import (
	"context"

	"gorm.io/gorm"

	"resortbooking/internal/domain"
)

type TierRepository struct {
	db *gorm.DB
}

func NewTierRepository(db *gorm.DB) *TierRepository {
	return &TierRepository{db: db}
}

func (r *TierRepository) Create(ctx context.Context, t *domain.UserTier) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// ListOrdered returns tier definitions highest tier first.
func (r *TierRepository) ListOrdered(ctx context.Context) ([]domain.UserTier, error) {
	var tiers []domain.UserTier
	if err := r.db.WithContext(ctx).Order("tier_order desc").Find(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}
