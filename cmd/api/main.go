package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vidtube-go/internal/api/handler"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/router"
	"vidtube-go/internal/config"
	infraKafka "vidtube-go/internal/infra/kafka"
	infraMongo "vidtube-go/internal/infra/mongo"
	infraRedis "vidtube-go/internal/infra/redis"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/service"
	"vidtube-go/pkg/logger"

	_ "vidtube-go/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title VidTube-Go API
// @version 1.0
// @description 视频平台评论与频道面板 API 服务

// @contact.name API Support

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化文档数据库
	if err := infraMongo.Init(&cfg.Mongo); err != nil {
		logger.Fatal("Failed to init mongo", zap.Error(err))
	}
	defer infraMongo.Close()

	indexCtx, indexCancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeoutDuration())
	if err := infraMongo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("Failed to ensure mongo indexes", zap.Error(err))
	}
	indexCancel()

	// 初始化Redis
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	// 初始化Kafka生产者（失败时评论事件不再投递，接口照常工作）
	var events service.EventPublisher
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Warn("Kafka producer init failed, comment events disabled", zap.Error(err))
	} else {
		defer infraKafka.CloseProducer()
		events = infraKafka.NewCommentPublisher(cfg.Kafka.Topics["comment_events"])
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	// 初始化依赖（Repository -> Service -> Handler）
	db := infraMongo.Get()
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	commentService := service.NewCommentService(commentRepo, likeRepo, videoRepo, service.OwnerOrAdmin, events)
	dashboardService := service.NewDashboardService(videoRepo, likeRepo, subscriptionRepo)

	commentHandler := handler.NewCommentHandler(commentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	principalService := service.NewPrincipalService(userRepo)
	authMiddleware := middleware.AuthRequired(principalService.Load)

	var rateLimit gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		rateLimit = middleware.RateLimit(
			infraRedis.NewWindowCounter(infraRedis.Client, "ratelimit"),
			"comment_write",
			cfg.RateLimit.MaxRequests,
			cfg.RateLimit.Window(),
		)
	}

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler)
	r.GET("/", rootHandler)

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册业务路由
	router.Setup(r, commentHandler, dashboardHandler, authMiddleware, rateLimit)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("mongo_database", cfg.Mongo.Database),
		zap.String("redis", cfg.Redis.Addr()),
		zap.Strings("kafka", cfg.Kafka.Brokers),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
	)

	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	logger.Debug("Health check requested", zap.String("ip", c.ClientIP()))

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Service is healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   cfg.App.Name,
		"version":   cfg.App.Version,
		"mode":      cfg.App.Mode,
	})
}

// rootHandler 根路径处理器
func rootHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome to %s API", cfg.App.Name),
		"project": cfg.App.Name,
		"version": cfg.App.Version,
		"docs":    fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.App.Port),
	})
}
