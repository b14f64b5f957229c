package controllers

import (
	"foodorder/pkg/resp"
	"foodorder/services"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Service *services.CartService
}

func NewCartController(s *services.CartService) *CartController {
	return &CartController{Service: s}
}

type addToCartRequest struct {
	MenuID   uint `json:"menuId" binding:"required"`
	Quantity int  `json:"quantity"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GET /user/cart
func (cc *CartController) Get(c *gin.Context) {
	view, err := cc.Service.GetCart(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, view)
}

// POST /user/cart
func (cc *CartController) Add(c *gin.Context) {
	var req addToCartRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	view, err := cc.Service.AddToCart(c.Request.Context(), utils.CurrentUserID(c), req.MenuID, req.Quantity)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, view)
}

// PATCH /user/cart/:cartId
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	cartID, err := paramID(c, "cartId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req cartQuantityRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	view, err := cc.Service.UpdateCartQuantity(c.Request.Context(), utils.CurrentUserID(c), cartID, req.Quantity)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, view)
}

// DELETE /user/cart/:cartId
func (cc *CartController) Remove(c *gin.Context) {
	cartID, err := paramID(c, "cartId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	view, err := cc.Service.RemoveCartItem(c.Request.Context(), utils.CurrentUserID(c), cartID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, view)
}

// DELETE /user/cart
func (cc *CartController) Clear(c *gin.Context) {
	if err := cc.Service.ClearCart(c.Request.Context(), utils.CurrentUserID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, gin.H{"message": "cart cleared"})
}
