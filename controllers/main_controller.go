package controllers

import (
	"foodorder/pkg/resp"
	"foodorder/services"

	"github.com/gin-gonic/gin"
)

type MainController struct {
	Service *services.MainService
}

func NewMainController(s *services.MainService) *MainController {
	return &MainController{Service: s}
}

// GET /main/search?searchWord=
func (mc *MainController) Search(c *gin.Context) {
	results, err := mc.Service.SearchMenu(c.Request.Context(), c.Query("searchWord"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, results)
}

// GET /main/stores
func (mc *MainController) Stores(c *gin.Context) {
	stores, err := mc.Service.GetAllStores(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, stores)
}

// GET /main/sort?orderKey=&orderValue=
func (mc *MainController) Sort(c *gin.Context) {
	stores, err := mc.Service.SortStores(c.Request.Context(), c.Query("orderKey"), c.Query("orderValue"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, stores)
}

// GET /main/ranking
func (mc *MainController) Ranking(c *gin.Context) {
	ranking, err := mc.Service.GetStoreRanking(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, ranking)
}
