package repository

import (
	"context"
	"errors"

	"rental_coach_backend/internal/model"
	"rental_coach_backend/internal/util"

	"gorm.io/gorm"
)

type GormListingRepository struct {
	DB *gorm.DB
}

func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{DB: db}
}

func (r *GormListingRepository) List(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	err := r.DB.WithContext(ctx).Order("id").Find(&listings).Error
	return listings, err
}

func (r *GormListingRepository) Get(ctx context.Context, id int) (*model.Listing, error) {
	var listing model.Listing
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// SeedIfEmpty 表为空时写入默认房源
func (r *GormListingRepository) SeedIfEmpty(ctx context.Context, listings []model.Listing) error {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&model.Listing{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&listings).Error
}
