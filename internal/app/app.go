package app

import (
	"competency_backend/internal/config"
	"competency_backend/internal/controller"
	"competency_backend/internal/repository"
	"competency_backend/internal/service"
	"competency_backend/pkg/database"
	"competency_backend/pkg/logger"
	"competency_backend/pkg/monitoring"
	"competency_backend/pkg/security"
	"competency_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	tag           *repository.TagRepository
	catalog       *repository.CatalogRepository
	criteriaGroup *repository.CriteriaGroupRepository
	criteria      *repository.CriteriaRepository
	studentStatus *repository.StudentStatusRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	tagging    *service.TaggingService
	catalog    *service.CatalogService
	criteria   *service.CriteriaService
	gradeEvent *service.GradeEventService
	subscriber *service.GradeEventSubscriber
}

type controllers struct {
	auth          *controller.AuthController
	tag           *controller.TagController
	catalog       *controller.CatalogController
	criteriaGroup *controller.CriteriaGroupController
	criteria      *controller.CriteriaController
	studentStatus *controller.StudentStatusController
	gradeEvent    *controller.GradeEventController
	health        *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 热更新配置并通知各监听方
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		tag:           repository.NewTagRepository(db),
		catalog:       repository.NewCatalogRepository(db),
		criteriaGroup: repository.NewCriteriaGroupRepository(db),
		criteria:      repository.NewCriteriaRepository(db),
		studentStatus: repository.NewStudentStatusRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.tagging = service.NewTaggingService(repos.tag, s.storage)
	s.catalog = service.NewCatalogService(repos.catalog)
	s.criteria = service.NewCriteriaService(repos.criteriaGroup, repos.criteria, repos.tag)
	s.gradeEvent = service.NewGradeEventService(repos.user, repos.tag, repos.criteria, repos.studentStatus)

	s.subscriber = service.NewGradeEventSubscriber(rdb, s.gradeEvent)
	go s.subscriber.Run()

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth),
		tag:           controller.NewTagController(s.tagging),
		catalog:       controller.NewCatalogController(s.catalog),
		criteriaGroup: controller.NewCriteriaGroupController(s.criteria),
		criteria:      controller.NewCriteriaController(s.criteria),
		studentStatus: controller.NewStudentStatusController(repos.studentStatus),
		gradeEvent:    controller.NewGradeEventController(s.gradeEvent),
		health:        controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
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
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("competency-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
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

	// 停止事件订阅，不再消费新的成绩事件
	if a.services != nil && a.services.subscriber != nil {
		a.services.subscriber.Stop()
	}

	// 关闭服务
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
