package services

import (
	"context"
	"errors"
	"strings"

	"foodorder/entity"
	"foodorder/pkg/apperr"
	"foodorder/repository"

	"gorm.io/gorm"
)

type MenuService struct {
	Repo   *repository.MenuRepository
	Stores *StoreService
}

func NewMenuService(repo *repository.MenuRepository, stores *StoreService) *MenuService {
	return &MenuService{Repo: repo, Stores: stores}
}

type MenuInput struct {
	MenuName  string `json:"menuName"`
	MenuIntro string `json:"menuIntro"`
	MenuImage string `json:"menuImage"`
	Price     int64  `json:"price"`
}

type MenuUpdate struct {
	MenuName  *string `json:"menuName"`
	MenuIntro *string `json:"menuIntro"`
	MenuImage *string `json:"menuImage"`
	Price     *int64  `json:"price"`
	Status    *string `json:"status"`
}

func (s *MenuService) CreateMenu(ctx context.Context, ownerID, storeID uint, in MenuInput) (*entity.Menu, error) {
	if err := s.Stores.checkOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.MenuName)
	if name == "" {
		return nil, apperr.BadRequest("menuName is required")
	}
	if in.Price <= 0 {
		return nil, apperr.BadRequest("price must be greater than 0")
	}

	m := &entity.Menu{
		StoreID:   storeID,
		MenuName:  name,
		MenuIntro: strings.TrimSpace(in.MenuIntro),
		MenuImage: strings.TrimSpace(in.MenuImage),
		Price:     in.Price,
		Status:    entity.MenuForSale,
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MenuService) ListMenus(ctx context.Context, storeID uint) ([]entity.Menu, error) {
	if _, err := s.Stores.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	return s.Repo.FindByStore(ctx, storeID)
}

func (s *MenuService) GetMenu(ctx context.Context, menuID uint) (*entity.Menu, error) {
	m, err := s.Repo.FindByID(ctx, menuID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("menu not found")
	}
	return m, err
}

func (s *MenuService) UpdateMenu(ctx context.Context, ownerID, menuID uint, in MenuUpdate) (*entity.Menu, error) {
	m, err := s.ownedMenu(ctx, ownerID, menuID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.MenuName != nil {
		name := strings.TrimSpace(*in.MenuName)
		if name == "" {
			return nil, apperr.BadRequest("menuName is required")
		}
		updates["menu_name"] = name
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, apperr.BadRequest("price must be greater than 0")
		}
		updates["price"] = *in.Price
	}
	if in.Status != nil {
		st := strings.ToUpper(strings.TrimSpace(*in.Status))
		if !entity.ValidMenuStatus(st) {
			return nil, apperr.BadRequest("invalid status")
		}
		updates["status"] = st
	}
	if in.MenuIntro != nil {
		updates["menu_intro"] = strings.TrimSpace(*in.MenuIntro)
	}
	if in.MenuImage != nil {
		updates["menu_image"] = strings.TrimSpace(*in.MenuImage)
	}

	if len(updates) > 0 {
		if err := s.Repo.Update(ctx, m.ID, updates); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByID(ctx, m.ID)
}

func (s *MenuService) DeleteMenu(ctx context.Context, ownerID, menuID uint) error {
	m, err := s.ownedMenu(ctx, ownerID, menuID)
	if err != nil {
		return err
	}
	return s.Repo.Delete(ctx, m.ID)
}

func (s *MenuService) ownedMenu(ctx context.Context, ownerID, menuID uint) (*entity.Menu, error) {
	m, err := s.GetMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if err := s.Stores.checkOwner(ctx, ownerID, m.StoreID); err != nil {
		return nil, err
	}
	return m, nil
}
