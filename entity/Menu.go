package entity

import (
	"gorm.io/gorm"
)

type Menu struct {
	gorm.Model
	StoreID   uint   `gorm:"index;not null" json:"storeId"`
	Store     Store  `json:"-"` // preload when needed
	MenuName  string `gorm:"not null;index" json:"menuName"`
	MenuIntro string `json:"menuIntro"`
	MenuImage string `json:"menuImage"`
	Price     int64  `gorm:"not null" json:"price"`
	Status    string `gorm:"not null;default:FOR_SALE" json:"status"`
}
