package repository

import (
	"context"

	"foodorder/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.WithContext(ctx).Preload("OrderItems").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.WithContext(ctx).Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) ListByStore(ctx context.Context, storeID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.WithContext(ctx).Preload("OrderItems").
		Where("store_id = ?", storeID).
		Order("id DESC").
		Find(&out).Error
	return out, err
}

// LatestOrderIDFromStore returns the user's newest order id at the store, 0 when none.
func (r *OrderRepository) LatestOrderIDFromStore(ctx context.Context, userID, storeID uint) (uint, error) {
	var row struct{ ID uint }
	err := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Select("id").Where("user_id = ? AND store_id = ?", userID, storeID).
		Order("id DESC").Limit(1).Scan(&row).Error
	return row.ID, err
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	return r.DB.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}
