package app

import (
	"climate_edu_backend/docs"
	"climate_edu_backend/internal/config"
	"climate_edu_backend/internal/middleware"
	"climate_edu_backend/internal/model"
	"climate_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/token", c.auth.ExchangeToken)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 入驻流程
		authGroup.GET("/onboarding/goals", c.onboarding.GetGoals)
		authGroup.GET("/onboarding/assessment/questions", c.onboarding.GetQuestions)
		authGroup.POST("/onboarding/assessment", c.onboarding.SubmitAssessment)
		authGroup.POST("/onboarding/path", c.onboarding.CreatePath)

		// 推荐
		authGroup.GET("/recommendations", c.recommendation.GetRecommendations)

		// 学习路径
		authGroup.GET("/learning-path", c.learningPath.GetPath)
		authGroup.POST("/learning-path/progress", c.learningPath.UpdateProgress)
		authGroup.POST("/learning-path/adapt", c.learningPath.Adapt)

		// 内容目录
		authGroup.GET("/content", c.content.List)
		authGroup.GET("/content/:id", c.content.Get)
	}

	// 管理员接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/content", c.content.Create)
	}
}
