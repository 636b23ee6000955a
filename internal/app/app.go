package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tec_learning_backend/internal/config"
	"tec_learning_backend/internal/controller"
	"tec_learning_backend/internal/middleware"
	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/repository"
	"tec_learning_backend/internal/service"
	"tec_learning_backend/internal/util"
	"tec_learning_backend/pkg/configwatcher"
	"tec_learning_backend/pkg/database"
	"tec_learning_backend/pkg/keylock"
	"tec_learning_backend/pkg/logger"
	"tec_learning_backend/pkg/monitoring"
	"tec_learning_backend/pkg/security"
	"tec_learning_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultConfigFile 配置热更新监听的文件
const DefaultConfigFile = "configs/config.yaml"

type App struct {
	Config         *config.Config
	ConfigFile     string
	Router         *gin.Engine
	DB             *gorm.DB
	Redis          *redis.Client
	TracerProvider *sdktrace.TracerProvider

	services        *services
	corsPolicy      *security.CORSPolicy
	limiter         *security.Limiter
	configCallbacks []configwatcher.ConfigReloader
}

// stores 业务层依赖的存储
type stores struct {
	users              repository.UserStore
	workouts           repository.WorkoutStore
	attempts           repository.WorkoutAttemptStore
	progress           repository.WorkoutProgressStore
	tx                 repository.Transactor
	activities         repository.ActivityStore
	learningPaths      repository.LearningPathStore
	courses            repository.CourseStore
	enrollments        repository.EnrollmentStore
	payments           repository.PaymentStore
	programEnrollments repository.ProgramEnrollmentStore
}

type services struct {
	activity     *service.ActivityService
	auth         *service.AuthService
	learning     *service.LearningService
	workout      *service.WorkoutService
	course       *service.CourseService
	enrollment   *service.EnrollmentService
	subscription *service.SubscriptionService
	analytics    *service.AnalyticsService
}

type controllers struct {
	auth         *controller.AuthController
	learning     *controller.LearningController
	workout      *controller.WorkoutController
	course       *controller.CourseController
	enrollment   *controller.EnrollmentController
	subscription *controller.SubscriptionController
	analytics    *controller.AnalyticsController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback configwatcher.ConfigReloader) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initStores() (*stores, error) {
	db, err := database.InitDB(&a.Config.Database, a.Config.Server.Mode == "debug")
	if err != nil {
		return nil, err
	}
	a.DB = db

	// 内存库在打开时已迁移；mysql 在非 release 模式或显式指定时执行迁移
	if a.Config.Database.Driver != util.DatabaseMemory &&
		(a.Config.ForceMigrate || a.Config.Server.Mode != "release") {
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
	}

	repos := repository.NewStores(db)
	return &stores{
		users:              repos.Users(),
		workouts:           repos.Workouts(),
		attempts:           repos.Attempts(),
		progress:           repos.Progress(),
		tx:                 repos.Transactor(),
		activities:         repos.Activities(),
		learningPaths:      repos.LearningPaths(),
		courses:            repos.Courses(),
		enrollments:        repos.Enrollments(),
		payments:           repos.Payments(),
		programEnrollments: repos.ProgramEnrollments(),
	}, nil
}

func (a *App) initServices(st *stores, cfg *config.Config) *services {
	s := &services{}

	s.activity = service.NewActivityService(st.activities)
	s.auth = service.NewAuthService(st.users, st.learningPaths, s.activity, cfg)
	s.learning = service.NewLearningService(st.users, st.learningPaths)

	// 有 redis 时用分布式锁，否则退化为进程内锁
	var locker keylock.Locker = keylock.NewLocalLocker()
	if a.Redis != nil {
		locker = keylock.NewRedisLocker(a.Redis, cfg.Workout.ProgressLockTTL())
	}
	s.workout = service.NewWorkoutService(st.workouts, st.attempts, st.progress, st.tx, locker, s.activity, cfg)
	if a.Redis != nil && cfg.Workout.ListCacheSeconds > 0 {
		s.workout.Cache = repository.NewWorkoutCache(a.Redis, cfg.Workout.ListCacheTTL())
	}

	gateway := service.NewHTTPCheckoutGateway(cfg.Checkout)
	s.course = service.NewCourseService(st.courses, s.activity)
	s.enrollment = service.NewEnrollmentService(
		st.enrollments,
		st.courses,
		st.programEnrollments,
		s.learning,
		gateway,
		s.activity,
		cfg.Checkout.Currency,
	)
	s.subscription = service.NewSubscriptionService(st.users, st.payments, gateway, s.activity)
	s.analytics = service.NewAnalyticsService(st.users, st.courses, st.enrollments, st.learningPaths, s.activity)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		learning:     controller.NewLearningController(s.learning),
		workout:      controller.NewWorkoutController(s.workout),
		course:       controller.NewCourseController(s.course, s.enrollment),
		enrollment:   controller.NewEnrollmentController(s.enrollment),
		subscription: controller.NewSubscriptionController(s.subscription),
		analytics:    controller.NewAnalyticsController(s.analytics),
		health:       controller.NewHealthController(a.DB),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.corsPolicy = security.NewCORSPolicy(cfg.CORS.AllowedOrigins)
	a.limiter = security.NewLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())

	router.Use(security.CORS(a.corsPolicy))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.limiter))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.RequestMetaMiddleware())

	// 配置热更新：跨域白名单、限流速率、日志级别
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		a.corsPolicy.SetOrigins(newCfg.CORS.AllowedOrigins)
		a.limiter.SetRate(newCfg.RateLimit.MaxRequests, newCfg.RateLimit.Window())
		logger.SetMode(newCfg.Server.Mode)
		logger.Log.Info("Config reloaded",
			zap.Strings("allowed_origins", newCfg.CORS.AllowedOrigins),
			zap.Int("rate_limit", newCfg.RateLimit.MaxRequests),
		)
	})
}

// seedWorkouts 以系统管理员身份写入示例训练题
func (a *App) seedWorkouts(ctx context.Context) error {
	created, err := a.services.workout.SeedSampleWorkouts(ctx, service.Caller{UserID: "system", Role: model.Admin})
	if err != nil {
		return err
	}
	logger.Log.Info("Sample workouts seeded", zap.Int("created", created))
	return nil
}

// NewApp 初始化失败时直接退出进程
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	app, err := newApp(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}
	return app
}

func newApp(cfg *config.Config) (*App, error) {
	app := &App{
		Config:     cfg,
		ConfigFile: DefaultConfigFile,
	}

	st, err := app.initStores()
	if err != nil {
		return nil, err
	}
	if cfg.MigrateOnly {
		return app, nil
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		app.Redis = rdb
	}

	app.services = app.initServices(st, cfg)
	controllers := app.initControllers(app.services)

	if cfg.SeedWorkouts {
		if err := app.seedWorkouts(context.Background()); err != nil {
			return nil, err
		}
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.TracerProvider = tp
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	go func() {
		if err := configwatcher.WatchConfig(ctx, a.ConfigFile, a.configCallbacks...); err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	a.Close(shutdownCtx)
	log.Println("Server exiting")
}

// Close 释放限流器、追踪、redis 和数据库连接
func (a *App) Close(ctx context.Context) {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.TracerProvider != nil {
		if err := a.TracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Log.Error("Failed to close database", zap.Error(err))
			}
		}
	}
	_ = logger.Log.Sync()
}
