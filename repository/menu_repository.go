package repository

import (
	"context"

	"foodorder/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// FindByStore lists all menus of a store.
func (r *MenuRepository) FindByStore(ctx context.Context, storeID uint) ([]entity.Menu, error) {
	var menus []entity.Menu
	err := r.DB.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id ASC").
		Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (*entity.Menu, error) {
	var menu entity.Menu
	if err := r.DB.WithContext(ctx).First(&menu, id).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *MenuRepository) Create(ctx context.Context, menu *entity.Menu) error {
	return r.DB.WithContext(ctx).Create(menu).Error
}

func (r *MenuRepository) Update(ctx context.Context, menuID uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.Menu{}).Where("id = ?", menuID).Updates(updates).Error
}

func (r *MenuRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("menu_id = ?", id).Delete(&entity.Cart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Menu{}, id).Error
	})
}
