package controllers

import (
	"foodorder/pkg/resp"
	"foodorder/services"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

type StoreController struct {
	Service *services.StoreService
}

func NewStoreController(s *services.StoreService) *StoreController {
	return &StoreController{Service: s}
}

// GET /stores
func (sc *StoreController) List(c *gin.Context) {
	stores, err := sc.Service.ListStores(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, stores)
}

// GET /stores/:storeId
func (sc *StoreController) Get(c *gin.Context) {
	id, err := paramID(c, "storeId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	st, err := sc.Service.GetStore(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, st)
}

// GET /user/store
func (sc *StoreController) Mine(c *gin.Context) {
	st, err := sc.Service.GetMyStore(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, st)
}

// POST /stores
func (sc *StoreController) Create(c *gin.Context) {
	var req services.StoreInput
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	st, err := sc.Service.CreateStore(c.Request.Context(), utils.CurrentUserID(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.Created(c, st)
}

// PATCH /stores/:storeId
func (sc *StoreController) Update(c *gin.Context) {
	id, err := paramID(c, "storeId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req services.StoreUpdate
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	st, err := sc.Service.UpdateStore(c.Request.Context(), utils.CurrentUserID(c), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, st)
}

// DELETE /stores/:storeId
func (sc *StoreController) Delete(c *gin.Context) {
	id, err := paramID(c, "storeId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := sc.Service.DeleteStore(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, gin.H{"message": "store deleted"})
}
