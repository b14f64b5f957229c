package entity

import (
	"gorm.io/gorm"
)

// OrderItem snapshots menu name and price at order time.
type OrderItem struct {
	gorm.Model
	OrderID  uint   `gorm:"index;not null" json:"orderId"`
	MenuID   uint   `json:"menuId"`
	MenuName string `json:"menuName"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}
