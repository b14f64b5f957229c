package services

import (
	"context"
	"errors"

	"foodorder/entity"
	"foodorder/pkg/apperr"
	"foodorder/repository"

	"gorm.io/gorm"
)

type CartService struct {
	CartRepo  *repository.CartRepository
	MenuRepo  *repository.MenuRepository
	StoreRepo *repository.StoreRepository
}

func NewCartService(cr *repository.CartRepository, mr *repository.MenuRepository, sr *repository.StoreRepository) *CartService {
	return &CartService{CartRepo: cr, MenuRepo: mr, StoreRepo: sr}
}

type CartLine struct {
	CartID    uint   `json:"cartId"`
	MenuID    uint   `json:"menuId"`
	MenuName  string `json:"menuName"`
	MenuImage string `json:"menuImage"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"lineTotal"`
}

type CartView struct {
	StoreID     uint       `json:"storeId"`
	Items       []CartLine `json:"items"`
	ShippingFee int64      `json:"shippingFee"`
	TotalPrice  int64      `json:"totalPrice"`
}

func (s *CartService) AddToCart(ctx context.Context, userID, menuID uint, qty int) (*CartView, error) {
	if qty == 0 {
		qty = 1
	}
	if err := checkQuantity(qty); err != nil {
		return nil, err
	}

	m, err := s.MenuRepo.FindByID(ctx, menuID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("menu not found")
	}
	if err != nil {
		return nil, err
	}
	if m.Status != entity.MenuForSale {
		return nil, apperr.BadRequest("menu is sold out")
	}

	// a cart holds menus of one store only
	storeID, err := s.CartRepo.StoreOfCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if storeID != 0 && storeID != m.StoreID {
		return nil, apperr.Conflict("cart already has menus from another store")
	}

	existing, err := s.CartRepo.FindByUserAndMenu(ctx, userID, menuID)
	switch {
	case err == nil:
		if err := checkQuantity(existing.Quantity + qty); err != nil {
			return nil, err
		}
		if err := s.CartRepo.AddQuantity(ctx, existing.ID, qty); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line := &entity.Cart{UserID: userID, StoreID: m.StoreID, MenuID: m.ID, Quantity: qty}
		if err := s.CartRepo.Create(ctx, line); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

// GetCart prices the cart with current menu prices plus the store's shipping fee.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*CartView, error) {
	carts, err := s.CartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &CartView{Items: make([]CartLine, 0, len(carts))}
	if len(carts) == 0 {
		return view, nil
	}

	var subtotal int64
	for _, c := range carts {
		lineTotal, ok := mulPrice(c.Menu.Price, c.Quantity)
		if ok {
			subtotal, ok = addPrice(subtotal, lineTotal)
		}
		if !ok {
			return nil, apperr.BadRequest("order total is out of range")
		}
		view.Items = append(view.Items, CartLine{
			CartID:    c.ID,
			MenuID:    c.MenuID,
			MenuName:  c.Menu.MenuName,
			MenuImage: c.Menu.MenuImage,
			Price:     c.Menu.Price,
			Quantity:  c.Quantity,
			LineTotal: lineTotal,
		})
	}

	view.StoreID = carts[0].StoreID
	fee, err := s.StoreRepo.ShippingFee(ctx, view.StoreID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	view.ShippingFee = fee
	total, ok := addPrice(subtotal, fee)
	if !ok {
		return nil, apperr.BadRequest("order total is out of range")
	}
	view.TotalPrice = total
	return view, nil
}

func (s *CartService) UpdateCartQuantity(ctx context.Context, userID, cartID uint, qty int) (*CartView, error) {
	if err := checkQuantity(qty); err != nil {
		return nil, err
	}
	ok, err := s.CartRepo.UpdateQuantity(ctx, userID, cartID, qty)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("cart item not found")
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveCartItem(ctx context.Context, userID, cartID uint) (*CartView, error) {
	ok, err := s.CartRepo.RemoveItem(ctx, userID, cartID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("cart item not found")
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.CartRepo.ClearCart(s.CartRepo.DB.WithContext(ctx), userID)
}
