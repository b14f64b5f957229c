package repository

import (
	"context"

	"foodorder/entity"

	"gorm.io/gorm"
)

type StoreRepository struct {
	DB *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{DB: db}
}

func (r *StoreRepository) FindAll(ctx context.Context) ([]entity.Store, error) {
	var stores []entity.Store
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&stores).Error
	return stores, err
}

func (r *StoreRepository) FindByID(ctx context.Context, id uint) (*entity.Store, error) {
	var store entity.Store
	if err := r.DB.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepository) FindByOwnerID(ctx context.Context, ownerID uint) (*entity.Store, error) {
	var store entity.Store
	if err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepository) CountByOwnerID(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&entity.Store{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *StoreRepository) IsOwnedBy(ctx context.Context, storeID, userID uint) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&entity.Store{}).
		Where("id = ? AND owner_id = ?", storeID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *StoreRepository) Create(ctx context.Context, store *entity.Store) error {
	return r.DB.WithContext(ctx).Create(store).Error
}

func (r *StoreRepository) Update(ctx context.Context, storeID uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.Store{}).Where("id = ?", storeID).Updates(updates).Error
}

// Delete removes the store and its menus permanently so the owner can open a new one.
func (r *StoreRepository) Delete(ctx context.Context, storeID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("store_id = ?", storeID).Delete(&entity.Menu{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("store_id = ?", storeID).Delete(&entity.Cart{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&entity.Store{}, storeID).Error
	})
}

func (r *StoreRepository) IncrementOrderCount(tx *gorm.DB, storeID uint) error {
	return tx.Model(&entity.Store{}).Where("id = ?", storeID).
		Update("order_count", gorm.Expr("order_count + 1")).Error
}

func (r *StoreRepository) ShippingFee(ctx context.Context, storeID uint) (int64, error) {
	var row struct{ ShippingFee int64 }
	err := r.DB.WithContext(ctx).Model(&entity.Store{}).
		Select("shipping_fee").Where("id = ?", storeID).First(&row).Error
	return row.ShippingFee, err
}

func (r *StoreRepository) UpdateRate(ctx context.Context, storeID uint, rate float64) error {
	return r.DB.WithContext(ctx).Model(&entity.Store{}).Where("id = ?", storeID).
		Update("store_rate", rate).Error
}
