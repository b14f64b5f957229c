package controllers

import (
	"foodorder/pkg/resp"
	"foodorder/services"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Service *services.ReviewService
}

func NewReviewController(s *services.ReviewService) *ReviewController {
	return &ReviewController{Service: s}
}

// GET /stores/:storeId/reviews
func (rc *ReviewController) ListByStore(c *gin.Context) {
	storeID, err := paramID(c, "storeId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	reviews, err := rc.Service.ListStoreReviews(c.Request.Context(), storeID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, reviews)
}

// POST /stores/:storeId/reviews
func (rc *ReviewController) Create(c *gin.Context) {
	storeID, err := paramID(c, "storeId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req services.ReviewInput
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	rev, err := rc.Service.CreateReview(c.Request.Context(), utils.CurrentUserID(c), storeID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.Created(c, rev)
}

// GET /user/reviews
func (rc *ReviewController) Mine(c *gin.Context) {
	reviews, err := rc.Service.ListMyReviews(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, reviews)
}

// GET /reviews/:reviewId
func (rc *ReviewController) Get(c *gin.Context) {
	id, err := paramID(c, "reviewId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	rev, err := rc.Service.GetReview(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, rev)
}

// PATCH /reviews/:reviewId
func (rc *ReviewController) Update(c *gin.Context) {
	id, err := paramID(c, "reviewId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req services.ReviewUpdate
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	rev, err := rc.Service.UpdateReview(c.Request.Context(), utils.CurrentUserID(c), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, rev)
}

// DELETE /reviews/:reviewId
func (rc *ReviewController) Delete(c *gin.Context) {
	id, err := paramID(c, "reviewId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := rc.Service.DeleteReview(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, gin.H{"message": "review deleted"})
}
