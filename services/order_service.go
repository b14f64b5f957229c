package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodorder/entity"
	"foodorder/events"
	"foodorder/pkg/apperr"
	"foodorder/pkg/metrics"
	"foodorder/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type OrderService struct {
	DB        *gorm.DB
	OrderRepo *repository.OrderRepository
	CartRepo  *repository.CartRepository
	MenuRepo  *repository.MenuRepository
	StoreRepo *repository.StoreRepository
	UserRepo  *repository.UserRepository

	Events  events.Publisher
	Ranking RankingCache
	Log     logrus.FieldLogger
}

func NewOrderService(
	db *gorm.DB,
	orders *repository.OrderRepository,
	carts *repository.CartRepository,
	menus *repository.MenuRepository,
	stores *repository.StoreRepository,
	users *repository.UserRepository,
	pub events.Publisher,
	ranking RankingCache,
	log logrus.FieldLogger,
) *OrderService {
	return &OrderService{
		DB:        db,
		OrderRepo: orders,
		CartRepo:  carts,
		MenuRepo:  menus,
		StoreRepo: stores,
		UserRepo:  users,
		Events:    pub,
		Ranking:   ranking,
		Log:       log,
	}
}

type CreateOrderReq struct {
	Address *string `json:"address"`
}

type OrderByMenuReq struct {
	Quantity int     `json:"quantity"`
	Address  *string `json:"address"`
}

type UpdateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrderByCart checks out the whole cart of the user.
func (s *OrderService) CreateOrderByCart(ctx context.Context, userID uint, req CreateOrderReq) (*entity.Order, error) {
	carts, err := s.CartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return nil, apperr.NotFound("cart is empty")
	}

	items := make([]entity.OrderItem, 0, len(carts))
	for _, c := range carts {
		if c.Menu.ID == 0 {
			return nil, apperr.NotFound("menu not found")
		}
		if c.Menu.Status != entity.MenuForSale {
			return nil, apperr.BadRequest("menu is sold out: " + c.Menu.MenuName)
		}
		if err := checkQuantity(c.Quantity); err != nil {
			return nil, err
		}
		items = append(items, entity.OrderItem{
			MenuID:   c.MenuID,
			MenuName: c.Menu.MenuName,
			Price:    c.Menu.Price,
			Quantity: c.Quantity,
		})
	}
	return s.placeOrder(ctx, userID, carts[0].StoreID, items, req.Address, "cart")
}

// CreateOrderByMenu orders a single menu directly, leaving the cart untouched.
func (s *OrderService) CreateOrderByMenu(ctx context.Context, userID, menuID uint, req OrderByMenuReq) (*entity.Order, error) {
	qty := req.Quantity
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

	items := []entity.OrderItem{{MenuID: m.ID, MenuName: m.MenuName, Price: m.Price, Quantity: qty}}
	return s.placeOrder(ctx, userID, m.StoreID, items, req.Address, "menu")
}

func (s *OrderService) placeOrder(ctx context.Context, userID, storeID uint, items []entity.OrderItem, address *string, source string) (*entity.Order, error) {
	store, err := s.StoreRepo.FindByID(ctx, storeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("store not found")
	}
	if err != nil {
		return nil, err
	}
	if store.Status != entity.StoreAvailable {
		return nil, apperr.BadRequest("store is not taking orders")
	}

	total, err := orderTotal(store.ShippingFee, items)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	if user.Point < total {
		return nil, apperr.API("not enough points")
	}

	addr := ""
	if address != nil {
		addr = strings.TrimSpace(*address)
	}
	if addr == "" {
		addr = strings.TrimSpace(user.Address)
	}
	if addr == "" {
		return nil, apperr.BadRequest("delivery address is required")
	}

	order := &entity.Order{
		UserID:     userID,
		StoreID:    storeID,
		TotalPrice: total,
		Address:    addr,
		Status:     entity.OrderComplete,
		OrderItems: items,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the guard also covers a balance spent by a concurrent order
		ok, err := s.UserRepo.DeductPoint(tx, userID, total)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.API("not enough points")
		}
		if err := s.OrderRepo.CreateOrder(tx, order); err != nil {
			return err
		}
		if err := s.StoreRepo.IncrementOrderCount(tx, storeID); err != nil {
			return err
		}
		if source == "cart" {
			return s.CartRepo.ClearCart(tx, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordOrderCreated(source, total)
	invalidateRanking(ctx, s.Ranking, s.Log)
	s.publish(ctx, events.OrderCreated, order, store.OwnerID)
	return order, nil
}

// GetOrders lists the store's orders for an owner and the user's own orders otherwise.
func (s *OrderService) GetOrders(ctx context.Context, userID uint, role string) ([]entity.Order, error) {
	if role == entity.RoleOwner {
		store, err := s.StoreRepo.FindByOwnerID(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("store not found")
		}
		if err != nil {
			return nil, err
		}
		return s.OrderRepo.ListByStore(ctx, store.ID)
	}
	return s.OrderRepo.ListByUser(ctx, userID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, ownerID, orderID uint, status string) (*entity.Order, error) {
	order, err := s.OrderRepo.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order not found")
	}
	if err != nil {
		return nil, err
	}

	status = strings.ToUpper(strings.TrimSpace(status))
	if !entity.ValidOrderStatus(status) {
		return nil, apperr.BadRequest("invalid status")
	}

	owned, err := s.StoreRepo.IsOwnedBy(ctx, order.StoreID, ownerID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperr.Forbidden("order does not belong to your store")
	}

	if err := s.OrderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status
	s.publish(ctx, events.OrderStatusChanged, order, ownerID)
	return order, nil
}

// publish never fails the request; delivery problems are only logged.
func (s *OrderService) publish(ctx context.Context, typ string, o *entity.Order, ownerID uint) {
	if s.Events == nil {
		return
	}
	evt := events.OrderEvent{
		Type:       typ,
		OrderID:    o.ID,
		UserID:     o.UserID,
		StoreID:    o.StoreID,
		OwnerID:    ownerID,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
		At:         time.Now().UTC(),
	}
	if err := s.Events.Publish(ctx, evt); err != nil {
		s.logger().WithError(err).WithFields(logrus.Fields{
			"event":   typ,
			"orderId": o.ID,
		}).Warn("order event publish failed")
	}
}

func (s *OrderService) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}
