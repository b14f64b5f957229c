package entity

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null" json:"userId"`
	User        User   `json:"-"`
	StoreID     uint   `gorm:"index;not null" json:"storeId"`
	Store       Store  `json:"-"`
	OrderID     uint   `gorm:"uniqueIndex;not null" json:"orderId"`
	Order       Order  `json:"-"`
	Rate        int    `gorm:"not null" json:"rate"`
	Content     string `json:"content"`
	ReviewImage string `json:"reviewImage"`
}
