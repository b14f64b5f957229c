package repository

import (
	"context"
	"math"

	"foodorder/entity"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *entity.Review) error {
	return r.DB.WithContext(ctx).Create(rev).Error
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (*entity.Review, error) {
	var rev entity.Review
	if err := r.DB.WithContext(ctx).First(&rev, id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) ListByStore(ctx context.Context, storeID uint) ([]entity.Review, error) {
	var out []entity.Review
	err := r.DB.WithContext(ctx).Where("store_id = ?", storeID).Order("id DESC").Find(&out).Error
	return out, err
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Review, error) {
	var out []entity.Review
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&out).Error
	return out, err
}

func (r *ReviewRepository) CountByOrder(ctx context.Context, orderID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Review{}).Where("order_id = ?", orderID).Count(&n).Error
	return n, err
}

func (r *ReviewRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.Review{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Unscoped().Delete(&entity.Review{}, id).Error
}

// AverageRate returns the store's mean rate rounded to one decimal, 0 without reviews.
func (r *ReviewRepository) AverageRate(ctx context.Context, storeID uint) (float64, error) {
	var row struct{ Avg *float64 }
	if err := r.DB.WithContext(ctx).Model(&entity.Review{}).
		Select("AVG(rate) AS avg").
		Where("store_id = ?", storeID).
		Scan(&row).Error; err != nil {
		return 0, err
	}
	if row.Avg == nil {
		return 0, nil
	}
	return math.Round(*row.Avg*10) / 10, nil
}
