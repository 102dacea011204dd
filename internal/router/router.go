package router

import (
	"newscheck/internal/config"
	"newscheck/internal/handler"
	"newscheck/internal/middleware"
	"newscheck/internal/repository"
	"newscheck/internal/service"
	"newscheck/internal/utils"
	"newscheck/pkg/model_caller"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter 设置路由
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	logger *logrus.Logger,
	db *gorm.DB,
	caller *model_caller.ModelCaller,
	limiter model_caller.Limiter,
) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "新闻可信度检测 API",
			"version": "1.0.0",
		})
	})

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)
	sourceRepo := repository.NewSourceRepository(db)

	// 初始化Service
	authService := service.NewAuthService(userRepo, jwtManager, cfg)
	analysisService := service.NewAnalysisService(caller, limiter, predictionRepo, sourceRepo, cfg, logger)
	statsService := service.NewStatsService(predictionRepo, sourceRepo)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)
	predictionHandler := handler.NewPredictionHandler(predictionRepo)
	sourceHandler := handler.NewSourceHandler(sourceRepo)
	statsHandler := handler.NewStatsHandler(statsService)
	adminHandler := handler.NewAdminHandler(predictionRepo, sourceRepo)

	// API路由组
	api := r.Group("/api")
	{
		// 公开路由
		api.POST("/analyze", analysisHandler.Analyze)
		api.GET("/predictions", predictionHandler.ListRecent)
		api.GET("/sources", sourceHandler.ListByChecks)
		api.GET("/stats", statsHandler.GetStats)
		api.POST("/login", authHandler.Login)

		// 认证路由
		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(jwtManager))
		{
			// 用户信息
			authorized.GET("/me", authHandler.GetMe)

			// 管理员接口
			adminGroup := authorized.Group("/admin")
			adminGroup.Use(middleware.AdminMiddleware())
			{
				adminGroup.GET("/predictions", adminHandler.ListPredictions)
				adminGroup.GET("/sources", adminHandler.ListSources)
			}
		}
	}

	return r
}
