package entity

import (
	"gorm.io/gorm"
)

// Cart is one menu line in a user's cart. All lines of a user share one StoreID.
type Cart struct {
	gorm.Model
	UserID   uint  `gorm:"index;not null" json:"userId"`
	User     User  `json:"-"`
	StoreID  uint  `gorm:"not null" json:"storeId"`
	Store    Store `json:"-"`
	MenuID   uint  `gorm:"not null" json:"menuId"`
	Menu     Menu  `json:"-"`
	Quantity int   `gorm:"not null;default:1" json:"quantity"`
}
