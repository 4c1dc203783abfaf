package main

import (
	"log"
	"os"

	"derm-go/internal/config"
	"derm-go/internal/models"
	"derm-go/internal/router"
	"derm-go/internal/service"
	"derm-go/internal/utils"
	"derm-go/pkg/infer"
	"derm-go/pkg/redis_limiter"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	// 加载配置
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

	// 加载冻结模型，整个进程只加载一次
	engine, err := infer.NewEngine(cfg.Model.ArtifactPath)
	if err != nil {
		log.Fatalf("加载模型失败: %v", err)
	}
	logger.Infof("模型已加载: %s", cfg.Model.ArtifactPath)

	// 初始化Redis和推理并发限制
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddress(),
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	limiter := redis_limiter.NewRedisLimiter(
		redisClient,
		cfg.Model.MaxConcurrent,
		"infer_slots:",
		cfg.Redis.GetSlotTTL(),
		logger,
	)

	// 初始化工具
	utils.InitValidator()
	jwtManager := utils.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.Algorithm,
		cfg.JWT.GetExpireDuration(),
	)

	predictService := service.NewPredictService(engine, limiter, cfg.Model.Name)

	// 设置路由
	r := router.SetupRouter(cfg, jwtManager, logger, db, predictService)

	// 启动服务器
	addr := cfg.Server.GetAddress()
	logger.Infof("服务器启动在 %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}
