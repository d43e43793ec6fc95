package controller

import (
	"errors"
	"strconv"

	"climate_edu_backend/internal/service"
	"climate_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	Service *service.RecommendationService
}

func NewRecommendationController(svc *service.RecommendationService) *RecommendationController {
	return &RecommendationController{Service: svc}
}

// @Summary 获取个性化推荐
// @Description 按模式生成推荐列表。目录不可用时返回空列表并标记 temporarilyUnavailable
// @Tags 推荐
// @Produce json
// @Security BearerAuth
// @Param mode query string false "推荐模式 (next_lesson/review/challenge/general)" default(general)
// @Param limit query int false "数量上限，默认10，最大20" default(10)
// @Success 200 {object} util.Response
// @Router /api/recommendations [get]
func (c *RecommendationController) GetRecommendations(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	mode := ctx.DefaultQuery("mode", util.ModeGeneral)
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	set, err := c.Service.GetRecommendations(ctx.Request.Context(), user.UserID, mode, limit)
	if err != nil {
		if errors.Is(err, util.ErrLearningPathNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, set)
}
