package repository

import (
	"context"
	"strings"
	"time"

	"foodorder/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreInfo is the card shown for a store in search results.
type StoreInfo struct {
	ID         uint    `json:"id"`
	StoreName  string  `json:"storeName"`
	StoreRate  float64 `json:"storeRate"`
	StoreIntro string  `json:"storeIntro"`
	StoreImage string  `json:"storeImage"`
}

// StoreSummary is a store row for the browse and sort listings.
type StoreSummary struct {
	ID          uint      `json:"id"`
	StoreName   string    `json:"storeName"`
	Category    string    `json:"category"`
	StoreRate   float64   `json:"storeRate"`
	StoreIntro  string    `json:"storeIntro"`
	StoreImage  string    `json:"storeImage"`
	OrderCount  int       `json:"orderCount"`
	ShippingFee int64     `json:"shippingFee"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SortColumns maps accepted orderKey values to columns.
var SortColumns = map[string]string{
	"orderCount":  "order_count",
	"storeRate":   "store_rate",
	"storeName":   "store_name",
	"shippingFee": "shipping_fee",
	"createdAt":   "created_at",
}

const storeSummaryColumns = "id, store_name, category, store_rate, store_intro, store_image, order_count, shipping_fee, status, created_at"

type MainRepository struct {
	DB *gorm.DB
}

func NewMainRepository(db *gorm.DB) *MainRepository {
	return &MainRepository{DB: db}
}

// likeEscaper makes LIKE wildcards in user input literal, with '!' as the escape character.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// GetStoreIdsByMenu returns distinct ids of stores selling a menu whose name contains word.
func (r *MainRepository) GetStoreIdsByMenu(ctx context.Context, word string) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&entity.Menu{}).
		Distinct("store_id").
		Where("menu_name LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(word)+"%").
		Order("store_id ASC").
		Pluck("store_id", &ids).Error
	return ids, err
}

func (r *MainRepository) GetStoreInfoById(ctx context.Context, storeID uint) (*StoreInfo, error) {
	var info StoreInfo
	err := r.DB.WithContext(ctx).Model(&entity.Store{}).
		Select("id, store_name, store_rate, store_intro, store_image").
		Where("id = ?", storeID).
		First(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *MainRepository) GetAllStores(ctx context.Context) ([]StoreSummary, error) {
	var out []StoreSummary
	err := r.DB.WithContext(ctx).Model(&entity.Store{}).
		Select(storeSummaryColumns).
		Order("id ASC").
		Scan(&out).Error
	return out, err
}

// GetSortedStores expects orderKey to be a key of SortColumns and orderValue asc or desc.
func (r *MainRepository) GetSortedStores(ctx context.Context, orderKey, orderValue string) ([]StoreSummary, error) {
	var out []StoreSummary
	err := r.DB.WithContext(ctx).Model(&entity.Store{}).
		Select(storeSummaryColumns).
		Order(clause.OrderByColumn{Column: clause.Column{Name: SortColumns[orderKey]}, Desc: orderValue == "desc"}).
		Order("id ASC").
		Scan(&out).Error
	return out, err
}

// GetStoresNOrders loads every store with the totals of its orders.
func (r *MainRepository) GetStoresNOrders(ctx context.Context) ([]entity.Store, error) {
	var stores []entity.Store
	err := r.DB.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, store_id, total_price").Order("id ASC")
		}).
		Order("id ASC").
		Find(&stores).Error
	return stores, err
}
