package app

import (
	"time"

	"survey_quiz_backend/docs"
	"survey_quiz_backend/internal/config"
	"survey_quiz_backend/internal/middleware"
	"survey_quiz_backend/internal/model"
	"survey_quiz_backend/pkg/monitoring"
	"survey_quiz_backend/pkg/security"
	"survey_quiz_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/users/leaderboard", c.user.GetLeaderboard)
		public.GET("/questions/random/:count", c.question.GetRandomQuestions)
		public.GET("/questions/categories", c.question.GetCategories)
	}

	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.GET("/users/profile", c.user.GetProfile)

		surveys := authorized.Group("/surveys")
		{
			surveys.POST("/start", c.survey.StartSurvey)
			surveys.POST("/submit", c.survey.SubmitSurvey)
			surveys.GET("/history", c.survey.GetSurveyHistory)
		}

		// Question administration is admin-only.
		questions := authorized.Group("/questions")
		questions.Use(middleware.RoleMiddleware(model.RoleAdmin))
		{
			questions.GET("", c.question.ListQuestions)
			questions.POST("", c.question.CreateQuestion)
		}
	}
}
