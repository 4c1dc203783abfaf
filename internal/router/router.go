package router

import (
	"derm-go/internal/config"
	"derm-go/internal/handler"
	"derm-go/internal/middleware"
	"derm-go/internal/repository"
	"derm-go/internal/service"
	"derm-go/internal/utils"

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
	predictService *service.PredictService,
) *gin.Engine {
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	pictureRepo := repository.NewPictureRepository(db)
	visitRepo := repository.NewVisitLogRepository(db)

	// 初始化Service
	authService := service.NewAuthService(userRepo, jwtManager)
	uploadService := service.NewUploadService(pictureRepo, cfg.Upload.Dir, cfg.Upload.GetMaxSize())

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	predictHandler := handler.NewPredictHandler(uploadService, predictService)
	dashboardHandler := handler.NewDashboardHandler(authService, uploadService)
	pageHandler := handler.NewPageHandler(predictService)

	// 公开路由
	r.GET("/", pageHandler.Landing)
	r.POST("/", pageHandler.Landing)
	r.GET("/first", pageHandler.Landing)
	r.POST("/first", pageHandler.Landing)
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.GET("/Graph", pageHandler.Graph)
	r.GET("/chart", pageHandler.Chart)

	// 上传的图片按存储路径对外可见
	r.Static("/static/tests", cfg.Upload.Dir)

	// 认证路由，进入后先写访问记录
	authorized := r.Group("")
	authorized.Use(middleware.AuthMiddleware(jwtManager))
	authorized.Use(middleware.VisitLogger(visitRepo, logger))
	{
		authorized.GET("/logout", authHandler.Logout)
		authorized.GET("/index", authHandler.Index)
		authorized.POST("/index", authHandler.Index)
		authorized.POST("/submit", predictHandler.Submit)
		authorized.GET("/dashboard", dashboardHandler.Show)
		authorized.POST("/dashboard", dashboardHandler.Update)
	}

	return r
}
