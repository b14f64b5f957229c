package controllers

import (
	"foodorder/pkg/resp"
	"foodorder/services"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Service: s}
}

// POST /user/cart/order
func (oc *OrderController) CreateFromCart(c *gin.Context) {
	var req services.CreateOrderReq
	if err := bindOptionalJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	order, err := oc.Service.CreateOrderByCart(c.Request.Context(), utils.CurrentUserID(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.Created(c, order)
}

// POST /menus/:menuId/order
func (oc *OrderController) CreateFromMenu(c *gin.Context) {
	menuID, err := paramID(c, "menuId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req services.OrderByMenuReq
	if err := bindOptionalJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	order, err := oc.Service.CreateOrderByMenu(c.Request.Context(), utils.CurrentUserID(c), menuID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.Created(c, order)
}

// GET /user/order
func (oc *OrderController) List(c *gin.Context) {
	orders, err := oc.Service.GetOrders(c.Request.Context(), utils.CurrentUserID(c), utils.CurrentRole(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, orders)
}

// PATCH /user/order/:orderId
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req services.UpdateStatusReq
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	order, err := oc.Service.UpdateStatus(c.Request.Context(), utils.CurrentUserID(c), orderID, req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, order)
}
