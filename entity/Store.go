package entity

import (
	"gorm.io/gorm"
)

type Store struct {
	gorm.Model
	OwnerID      uint    `gorm:"uniqueIndex;not null" json:"ownerId"`
	Owner        User    `gorm:"foreignKey:OwnerID" json:"-"`
	StoreName    string  `gorm:"not null;index" json:"storeName"`
	Category     string  `gorm:"not null" json:"category"`
	StoreImage   string  `json:"storeImage"`
	StoreIntro   string  `json:"storeIntro"`
	StoreRate    float64 `gorm:"not null;default:0" json:"storeRate"`
	OrderCount   int     `gorm:"not null;default:0" json:"orderCount"`
	Status       string  `gorm:"not null;default:AVAILABLE" json:"status"`
	StoreAddress string  `json:"storeAddress"`
	StorePhone   string  `json:"storePhone"`
	ShippingFee  int64   `gorm:"not null;default:0" json:"shippingFee"`

	Menus   []Menu   `json:"-"`
	Orders  []Order  `json:"orders,omitempty"`
	Reviews []Review `json:"-"`
}
