package app

import (
	"time"

	"rental_coach_backend/internal/config"
	"rental_coach_backend/internal/middleware"
	"rental_coach_backend/pkg/monitoring"
	"rental_coach_backend/pkg/security"
	"rental_coach_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
)

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/summary", middleware.SessionMiddleware(), c.summary.GetSummary)
	}

	// 页面与对话，均需要会话
	pages := router.Group("/")
	pages.Use(middleware.SessionMiddleware())
	{
		pages.GET("/", c.page.Home)
		pages.GET("/simulation", c.page.Simulation)
		pages.GET("/chat", c.page.ChatPage)
		pages.POST("/chat", c.chat.SendMessage)
		pages.GET("/summary", c.summary.SummaryPage)
	}
}
