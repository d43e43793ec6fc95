package controller

import (
	"errors"
	"strconv"

	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/service"
	"climate_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	Service *service.ContentService
}

func NewContentController(svc *service.ContentService) *ContentController {
	return &ContentController{Service: svc}
}

// @Summary 浏览内容目录
// @Tags 内容
// @Produce json
// @Security BearerAuth
// @Param ageGroup query string false "年龄段 (child/teen/adult/all)"
// @Param type query string false "内容类型"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/content [get]
func (c *ContentController) List(ctx *gin.Context) {
	ageGroup := model.NormalizeAgeGroup(ctx.Query("ageGroup"))
	contentType := model.ContentType(ctx.Query("type"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	items, total, err := c.Service.List(ageGroup, contentType, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 获取内容详情
// @Description 返回内容详情并累计浏览数
// @Tags 内容
// @Produce json
// @Security BearerAuth
// @Param id path string true "内容ID"
// @Success 200 {object} util.Response
// @Router /api/content/{id} [get]
func (c *ContentController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	content, err := c.Service.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, content)
}

// @Summary 创建内容条目
// @Tags 内容
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.ContentItem true "内容条目"
// @Success 201 {object} util.Response
// @Router /api/admin/content [post]
func (c *ContentController) Create(ctx *gin.Context) {
	var content model.ContentItem
	if err := ctx.ShouldBindJSON(&content); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.Create(&content); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, content)
}
