package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"climate_edu_backend/internal/config"
	"climate_edu_backend/internal/controller"
	"climate_edu_backend/internal/engine"
	"climate_edu_backend/internal/repository"
	"climate_edu_backend/internal/service"
	"climate_edu_backend/pkg/database"
	"climate_edu_backend/pkg/logger"
	"climate_edu_backend/pkg/monitoring"
	"climate_edu_backend/pkg/security"
	"climate_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	content      *repository.ContentRepository
	goal         *repository.GoalRepository
	assessment   *repository.AssessmentRepository
	learningPath *repository.LearningPathRepository
}

type services struct {
	user           *service.UserService
	content        *service.ContentService
	onboarding     *service.OnboardingService
	recommendation *service.RecommendationService
	learningPath   *service.LearningPathService
}

type controllers struct {
	auth           *controller.AuthController
	content        *controller.ContentController
	onboarding     *controller.OnboardingController
	recommendation *controller.RecommendationController
	learningPath   *controller.LearningPathController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// OnConfigReload 配置热更新回调，分发给各注册方
func (a *App) OnConfigReload(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		content:      repository.NewContentRepository(db),
		goal:         repository.NewGoalRepository(db),
		assessment:   repository.NewAssessmentRepository(db),
		learningPath: repository.NewLearningPathRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	// 内容仓库同时充当推荐引擎的内容目录
	generator := engine.NewGenerator(repos.content)

	s.user = service.NewUserService(repos.user, cfg)
	s.content = service.NewContentService(repos.content)
	s.onboarding = service.NewOnboardingService(repos.goal, repos.assessment, repos.learningPath, repos.user, generator, cfg)
	s.recommendation = service.NewRecommendationService(repos.learningPath, repos.assessment, generator, rdb, cfg)
	s.learningPath = service.NewLearningPathService(repos.learningPath, repos.assessment, generator, s.recommendation, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.user),
		content:        controller.NewContentController(s.content),
		onboarding:     controller.NewOnboardingController(s.onboarding),
		recommendation: controller.NewRecommendationController(s.recommendation),
		learningPath:   controller.NewLearningPathController(s.learningPath),
		health:         controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("climate-edu", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
