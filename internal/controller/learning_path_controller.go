package controller

import (
	"errors"

	"climate_edu_backend/internal/engine"
	"climate_edu_backend/internal/service"
	"climate_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	Service *service.LearningPathService
}

func NewLearningPathController(svc *service.LearningPathService) *LearningPathController {
	return &LearningPathController{Service: svc}
}

// @Summary 获取学习路径
// @Tags 学习路径
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/learning-path [get]
func (c *LearningPathController) GetPath(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	path, err := c.Service.GetPath(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrLearningPathNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, path)
}

type progressRequest struct {
	ContentID           string  `json:"contentId" binding:"required"`
	CompletionRate      float64 `json:"completionRate" binding:"min=0,max=1"`
	TimeSpent           int     `json:"timeSpent" binding:"min=0"`
	PerceivedDifficulty int     `json:"perceivedDifficulty" binding:"omitempty,min=1,max=5"`
}

func (r progressRequest) interaction() engine.InteractionContext {
	return engine.InteractionContext{
		ContentID:           r.ContentID,
		CompletionRate:      r.CompletionRate,
		TimeSpent:           r.TimeSpent,
		PerceivedDifficulty: r.PerceivedDifficulty,
	}
}

// @Summary 上报学习进度
// @Description 记录一次内容交互，完成率达标时计入完成并发积分
// @Tags 学习路径
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body progressRequest true "交互信号"
// @Success 200 {object} util.Response
// @Router /api/learning-path/progress [post]
func (c *LearningPathController) UpdateProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req progressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.UpdateProgress(ctx.Request.Context(), user.UserID, req.interaction())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLearningPathNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrWriteConflict):
			util.Conflict(ctx, "concurrent update, please retry")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// @Summary 触发自适应调整
// @Description 依据交互信号评估并提交画像调整，命中规则时整表重算推荐
// @Tags 学习路径
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body progressRequest true "交互信号"
// @Success 200 {object} util.Response
// @Router /api/learning-path/adapt [post]
func (c *LearningPathController) Adapt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req progressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.PerformAdaptiveAdjustment(ctx.Request.Context(), user.UserID, req.interaction())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLearningPathNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrWriteConflict):
			util.Conflict(ctx, "concurrent update, please retry")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
