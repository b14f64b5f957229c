package repository

import (
	"testing"

	"foodorder/configs"
	"foodorder/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, configs.SetupDatabase(db))
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	require.NoError(t, db.Create(v).Error)
}

func newOwnerWithStore(t *testing.T, db *gorm.DB, email, storeName string, fee int64) (*entity.User, *entity.Store) {
	t.Helper()
	owner := &entity.User{Email: &email, Role: entity.RoleOwner}
	mustCreate(t, db, owner)
	store := &entity.Store{
		OwnerID: owner.ID, StoreName: storeName, Category: entity.CategoryChicken,
		Status: entity.StoreAvailable, ShippingFee: fee,
	}
	mustCreate(t, db, store)
	return owner, store
}
