package main

import (
	"log"
	"os"
	"time"

	"newscheck/internal/config"
	"newscheck/internal/models"
	"newscheck/internal/repository"
	"newscheck/internal/router"
	"newscheck/internal/service"
	"newscheck/internal/utils"
	"newscheck/pkg/model_caller"
	"newscheck/pkg/redis_limiter"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	// 加载配置(从项目根目录读取)
	cfg, err := config.LoadConfig("./config/config.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	// 初始化数据库
	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	db := models.GetDB()

	// 初始化模型网关客户端
	caller := model_caller.NewModelCaller(
		cfg.AI.APIBase,
		cfg.AI.APIKey,
		cfg.AI.Model,
		cfg.AI.GetTimeout(),
	)

	// 网关并发限制: 配置了Redis时多实例共享槽位,否则使用进程内信号量
	var limiter model_caller.Limiter
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddress(),
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})
		limiter = redis_limiter.NewRedisLimiter(redisClient, cfg.Redis.MaxConcurrent, "newscheck:gateway:", 10*time.Minute, logger)
		logger.Info("使用Redis并发限制器")
	} else {
		limiter = model_caller.NewConcurrencyLimiter(cfg.Redis.MaxConcurrent)
		logger.Info("使用进程内并发限制器")
	}

	// 初始化JWT
	jwtManager := utils.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.Algorithm,
		cfg.JWT.GetExpireDuration(),
	)

	// 初始化管理员账户
	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, jwtManager, cfg)
	if err := authService.InitAdmin(); err != nil {
		logger.Warnf("初始化管理员失败: %v", err)
	}

	// 设置路由
	r := router.SetupRouter(cfg, jwtManager, logger, db, caller, limiter)

	// 启动服务器
	addr := cfg.Server.GetAddress()
	logger.Infof("服务器启动在 %s", addr)

	if cfg.Server.ProductionMode {
		logger.Info("生产模式")
	} else {
		logger.Infof("开发模式: 管理员账号: %s", cfg.Admin.Username)
	}

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}
