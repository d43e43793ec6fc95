package controller

import (
	"errors"

	"climate_edu_backend/internal/service"
	"climate_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.UserService
}

func NewAuthController(svc *service.UserService) *AuthController {
	return &AuthController{Service: svc}
}

type tokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

// @Summary 换取访问令牌
// @Description 平台网关完成认证后换取本服务 JWT，首次出现的用户自动建档
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body tokenRequest true "已认证身份"
// @Success 200 {object} util.Response
// @Router /api/auth/token [post]
func (c *AuthController) ExchangeToken(ctx *gin.Context) {
	var req tokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.ExchangeToken(req.Email, req.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 获取当前用户
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.Service.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}
