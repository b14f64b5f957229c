package repository

import (
	"context"

	"foodorder/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// FindByUser returns the user's cart lines with their menus, oldest first.
func (r *CartRepository) FindByUser(ctx context.Context, userID uint) ([]entity.Cart, error) {
	var carts []entity.Cart
	err := r.DB.WithContext(ctx).
		Preload("Menu").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&carts).Error
	return carts, err
}

func (r *CartRepository) FindByUserAndMenu(ctx context.Context, userID, menuID uint) (*entity.Cart, error) {
	var c entity.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ? AND menu_id = ?", userID, menuID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// StoreOfCart returns the store the user's cart is locked to, or 0 for an empty cart.
func (r *CartRepository) StoreOfCart(ctx context.Context, userID uint) (uint, error) {
	var row struct{ StoreID uint }
	err := r.DB.WithContext(ctx).Model(&entity.Cart{}).
		Select("store_id").Where("user_id = ?", userID).
		Limit(1).Scan(&row).Error
	return row.StoreID, err
}

func (r *CartRepository) Create(ctx context.Context, c *entity.Cart) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *CartRepository) AddQuantity(ctx context.Context, cartID uint, qty int) error {
	return r.DB.WithContext(ctx).Model(&entity.Cart{}).Where("id = ?", cartID).
		Update("quantity", gorm.Expr("quantity + ?", qty)).Error
}

// UpdateQuantity changes a line owned by userID and reports whether it existed.
func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, cartID uint, qty int) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Cart{}).
		Where("id = ? AND user_id = ?", cartID, userID).
		Update("quantity", qty)
	return res.RowsAffected > 0, res.Error
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, cartID uint) (bool, error) {
	res := r.DB.WithContext(ctx).Unscoped().
		Where("id = ? AND user_id = ?", cartID, userID).
		Delete(&entity.Cart{})
	return res.RowsAffected > 0, res.Error
}

func (r *CartRepository) ClearCart(tx *gorm.DB, userID uint) error {
	return tx.Unscoped().Where("user_id = ?", userID).Delete(&entity.Cart{}).Error
}
