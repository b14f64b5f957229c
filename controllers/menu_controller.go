package controllers

import (
	"foodorder/pkg/resp"
	"foodorder/services"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Service *services.MenuService
}

func NewMenuController(s *services.MenuService) *MenuController {
	return &MenuController{Service: s}
}

// GET /stores/:storeId/menus
func (mc *MenuController) List(c *gin.Context) {
	storeID, err := paramID(c, "storeId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	menus, err := mc.Service.ListMenus(c.Request.Context(), storeID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, menus)
}

// POST /stores/:storeId/menus
func (mc *MenuController) Create(c *gin.Context) {
	storeID, err := paramID(c, "storeId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req services.MenuInput
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	m, err := mc.Service.CreateMenu(c.Request.Context(), utils.CurrentUserID(c), storeID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.Created(c, m)
}

// GET /menus/:menuId
func (mc *MenuController) Get(c *gin.Context) {
	id, err := paramID(c, "menuId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	m, err := mc.Service.GetMenu(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, m)
}

// PATCH /menus/:menuId
func (mc *MenuController) Update(c *gin.Context) {
	id, err := paramID(c, "menuId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req services.MenuUpdate
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	m, err := mc.Service.UpdateMenu(c.Request.Context(), utils.CurrentUserID(c), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, m)
}

// DELETE /menus/:menuId
func (mc *MenuController) Delete(c *gin.Context) {
	id, err := paramID(c, "menuId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := mc.Service.DeleteMenu(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, gin.H{"message": "menu deleted"})
}
