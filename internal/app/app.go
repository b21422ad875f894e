package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"survey_quiz_backend/internal/config"
	"survey_quiz_backend/internal/controller"
	"survey_quiz_backend/internal/repository"
	"survey_quiz_backend/internal/service"
	"survey_quiz_backend/pkg/database"
	"survey_quiz_backend/pkg/logger"
	"survey_quiz_backend/pkg/monitoring"
	"survey_quiz_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	question *repository.QuestionRepository
	survey   *repository.SurveyRepository
}

type services struct {
	auth     *service.AuthService
	user     *service.UserService
	question *service.QuestionService
	survey   *service.SurveyService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	question *controller.QuestionController
	survey   *controller.SurveyController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		question: repository.NewQuestionRepository(db),
		survey:   repository.NewSurveyRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	return &services{
		auth:     service.NewAuthService(repos.user, cfg),
		user:     service.NewUserService(repos.user, rdb, cfg),
		question: service.NewQuestionService(repos.question),
		survey:   service.NewSurveyService(repos.survey, repos.question, cfg),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.user),
		question: controller.NewQuestionController(s.question),
		survey:   controller.NewSurveyController(s.survey),
		health:   controller.NewHealthController(db),
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			// Leaderboard caching is a nicety; the service runs without it.
			logger.Log.Warn("Failed to initialize redis, continuing without cache", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("survey-quiz", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

// ApplyConfig picks up the reloadable tunables from a freshly parsed
// config. Connection settings and the listen port need a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.Survey = cfg.Survey
	a.Config.RateLimit = cfg.RateLimit
	logger.Log.Info("configuration reloaded",
		zap.Int("defaultQuestionCount", cfg.Survey.DefaultQuestionCount),
		zap.Int("maxQuestionCount", cfg.Survey.MaxQuestionCount),
	)
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

	if a.Redis != nil {
		_ = a.Redis.Close()
	}

	log.Println("Server exiting")
}
