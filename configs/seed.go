package configs

import (
	"fmt"
	"os"
	"strings"

	"foodorder/entity"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type SeedFile struct {
	Users []SeedUser `yaml:"users"`
}

type SeedUser struct {
	Email    string     `yaml:"email"`
	Password string     `yaml:"password"`
	Name     string     `yaml:"name"`
	Nickname string     `yaml:"nickname"`
	Phone    string     `yaml:"phone"`
	Address  string     `yaml:"address"`
	Role     string     `yaml:"role"`
	Point    *int64     `yaml:"point"`
	Store    *SeedStore `yaml:"store"`
}

type SeedStore struct {
	StoreName    string     `yaml:"storeName"`
	Category     string     `yaml:"category"`
	StoreImage   string     `yaml:"storeImage"`
	StoreIntro   string     `yaml:"storeIntro"`
	StoreAddress string     `yaml:"storeAddress"`
	StorePhone   string     `yaml:"storePhone"`
	ShippingFee  int64      `yaml:"shippingFee"`
	Menus        []SeedMenu `yaml:"menus"`
}

type SeedMenu struct {
	MenuName  string `yaml:"menuName"`
	MenuIntro string `yaml:"menuIntro"`
	MenuImage string `yaml:"menuImage"`
	Price     int64  `yaml:"price"`
}

// SeedFromFile loads demo users, stores and menus. Users that already exist (by email) are skipped.
func SeedFromFile(db *gorm.DB, path string, defaultPoint int64) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	var file SeedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}
	return Seed(db, &file, defaultPoint)
}

func Seed(db *gorm.DB, file *SeedFile, defaultPoint int64) (int, error) {
	created := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, su := range file.Users {
			email := strings.ToLower(strings.TrimSpace(su.Email))
			if email == "" {
				return fmt.Errorf("seed user without email")
			}
			var count int64
			if err := tx.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			role := strings.ToUpper(su.Role)
			if role == "" {
				role = entity.RoleCustomer
			}
			if !entity.ValidRole(role) {
				return fmt.Errorf("seed user %s: invalid role %q", email, su.Role)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			point := defaultPoint
			if su.Point != nil {
				point = *su.Point
			}
			user := entity.User{
				Email: &email, Password: string(hash), Name: su.Name, Nickname: su.Nickname,
				Phone: su.Phone, Address: su.Address, Role: role, Point: point,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			created++

			if su.Store == nil || role != entity.RoleOwner {
				continue
			}
			store := entity.Store{
				OwnerID:      user.ID,
				StoreName:    su.Store.StoreName,
				Category:     strings.ToUpper(su.Store.Category),
				StoreImage:   su.Store.StoreImage,
				StoreIntro:   su.Store.StoreIntro,
				StoreAddress: su.Store.StoreAddress,
				StorePhone:   su.Store.StorePhone,
				ShippingFee:  su.Store.ShippingFee,
				Status:       entity.StoreAvailable,
			}
			if !entity.ValidStoreCategory(store.Category) {
				return fmt.Errorf("seed store %s: invalid category %q", store.StoreName, su.Store.Category)
			}
			if err := tx.Create(&store).Error; err != nil {
				return err
			}
			for _, sm := range su.Store.Menus {
				menu := entity.Menu{
					StoreID: store.ID, MenuName: sm.MenuName, MenuIntro: sm.MenuIntro,
					MenuImage: sm.MenuImage, Price: sm.Price, Status: entity.MenuForSale,
				}
				if err := tx.Create(&menu).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
