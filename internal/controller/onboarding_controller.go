package controller

import (
	"errors"
	"net/http"

	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/service"
	"climate_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type OnboardingController struct {
	Service *service.OnboardingService
}

func NewOnboardingController(svc *service.OnboardingService) *OnboardingController {
	return &OnboardingController{Service: svc}
}

// @Summary 获取学习目标列表
// @Description 按年龄段过滤可选的学习目标
// @Tags 入驻
// @Produce json
// @Security BearerAuth
// @Param ageGroup query string false "年龄段 (child/teen/adult)"
// @Success 200 {object} util.Response
// @Router /api/onboarding/goals [get]
func (c *OnboardingController) GetGoals(ctx *gin.Context) {
	ageGroup := model.NormalizeAgeGroup(ctx.Query("ageGroup"))

	goals, err := c.Service.GetGoals(ageGroup)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"goals": goals})
}

// @Summary 获取测评题目
// @Description 按年龄段取入驻测评题，正确答案不随响应返回
// @Tags 入驻
// @Produce json
// @Security BearerAuth
// @Param ageGroup query string false "年龄段 (child/teen/adult)"
// @Success 200 {object} util.Response
// @Router /api/onboarding/assessment/questions [get]
func (c *OnboardingController) GetQuestions(ctx *gin.Context) {
	ageGroup := model.NormalizeAgeGroup(ctx.Query("ageGroup"))

	questions, err := c.Service.GetQuestions(ageGroup)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"questions": questions})
}

type submitAssessmentRequest struct {
	Responses []model.AssessmentResponse `json:"responses" binding:"required"`
}

// @Summary 提交测评答卷
// @Description 批改答卷并返回分数与知识水平
// @Tags 入驻
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body submitAssessmentRequest true "答卷"
// @Success 200 {object} util.Response
// @Router /api/onboarding/assessment [post]
func (c *OnboardingController) SubmitAssessment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitAssessment(user.UserID, req.Responses)
	if err != nil {
		if errors.Is(err, util.ErrEmptyResponseSet) {
			util.BadRequest(ctx, "assessment requires at least one response")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 创建学习路径
// @Description 入驻收尾，按画像生成首批推荐并建档。每个用户只允许一条路径
// @Tags 入驻
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreatePathRequest true "学习者画像"
// @Success 201 {object} util.Response
// @Router /api/onboarding/path [post]
func (c *OnboardingController) CreatePath(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreatePathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	path, err := c.Service.CreatePath(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidProfile):
			util.BadRequest(ctx, "invalid learner profile")
		case errors.Is(err, util.ErrLearningPathExists):
			util.Conflict(ctx, "learning path already exists")
		case errors.Is(err, util.ErrCatalogUnavailable):
			util.Error(ctx, http.StatusServiceUnavailable, "content catalog temporarily unavailable")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, path)
}
