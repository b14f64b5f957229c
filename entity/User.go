package entity

import (
	"gorm.io/gorm"
)

const (
	RoleCustomer = "CUSTOMER"
	RoleOwner    = "OWNER"
)

func ValidRole(r string) bool { return r == RoleCustomer || r == RoleOwner }

type User struct {
	gorm.Model
	Email    *string `gorm:"uniqueIndex" json:"email"`
	ClientID *string `gorm:"uniqueIndex" json:"clientId,omitempty"` // social login id
	Password string  `json:"-"`
	Name     string  `json:"name"`
	Nickname string  `json:"nickname"`
	Phone    string  `json:"phone"`
	Address  string  `json:"address"`
	Role     string  `gorm:"not null;default:CUSTOMER" json:"role"`
	Point    int64   `gorm:"not null;default:0" json:"point"`

	// preloaded only when needed
	Store   *Store   `gorm:"foreignKey:OwnerID" json:"-"`
	Orders  []Order  `json:"-"`
	Reviews []Review `json:"-"`
	Carts   []Cart   `json:"-"`
}
