package controllers

import (
	"foodorder/pkg/resp"
	"foodorder/services"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *services.UserService
}

func NewUserController(s *services.UserService) *UserController {
	return &UserController{Service: s}
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type chargePointRequest struct {
	Amount int64 `json:"amount"`
}

// POST /sign-up
func (uc *UserController) SignUp(c *gin.Context) {
	var req services.SignUpInput
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	user, err := uc.Service.SignUp(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.Created(c, user)
}

// POST /sign-in
func (uc *UserController) SignIn(c *gin.Context) {
	var req services.SignInInput
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	tokens, err := uc.Service.SignIn(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, tokens)
}

// POST /token/refresh
func (uc *UserController) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	tokens, err := uc.Service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, tokens)
}

// POST /sign-out
func (uc *UserController) SignOut(c *gin.Context) {
	if err := uc.Service.SignOut(c.Request.Context(), utils.CurrentUserID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, gin.H{"message": "signed out"})
}

// GET /user
func (uc *UserController) GetProfile(c *gin.Context) {
	p, err := uc.Service.GetProfile(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, p)
}

// PATCH /user
func (uc *UserController) UpdateProfile(c *gin.Context) {
	var req services.ProfileUpdate
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	user, err := uc.Service.UpdateProfile(c.Request.Context(), utils.CurrentUserID(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, user)
}

// POST /user/point
func (uc *UserController) ChargePoint(c *gin.Context) {
	var req chargePointRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	balance, err := uc.Service.ChargePoint(c.Request.Context(), utils.CurrentUserID(c), req.Amount)
	if err != nil {
		_ = c.Error(err)
		return
	}
	resp.OK(c, gin.H{"point": balance})
}
