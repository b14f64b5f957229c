package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	UserID     uint   `gorm:"index;not null" json:"userId"`
	User       User   `json:"-"`
	StoreID    uint   `gorm:"index;not null" json:"storeId"`
	Store      Store  `json:"-"`
	TotalPrice int64  `gorm:"not null" json:"totalPrice"`
	Address    string `json:"address"`
	Status     string `gorm:"not null;default:ORDER_COMPLETE" json:"status"`

	// preload only for detail/list views
	OrderItems []OrderItem `json:"orderItems,omitempty"`
}
