package repository

import (
	"context"
	"math"

	"foodorder/entity"

	"gorm.io/gorm"
)

// UserRepository talks to the users table only.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByClientID(ctx context.Context, clientID string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).Where("client_id = ?", clientID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindWithStore loads the user and, for owners, their store.
func (r *UserRepository) FindWithStore(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).Preload("Store").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) Update(ctx context.Context, userID uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error
}

// AddPoint credits amount unless the balance would pass math.MaxInt64. It reports whether a row changed.
func (r *UserRepository) AddPoint(ctx context.Context, userID uint, amount int64) (bool, error) {
	if amount <= 0 {
		return false, nil
	}
	res := r.DB.WithContext(ctx).Model(&entity.User{}).
		Where("id = ? AND point <= ?", userID, int64(math.MaxInt64)-amount).
		Update("point", gorm.Expr("point + ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeductPoint subtracts amount only when the balance covers it. It reports whether a row changed.
func (r *UserRepository) DeductPoint(tx *gorm.DB, userID uint, amount int64) (bool, error) {
	if amount <= 0 {
		return false, nil
	}
	res := tx.Model(&entity.User{}).
		Where("id = ? AND point >= ?", userID, amount).
		Update("point", gorm.Expr("point - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
