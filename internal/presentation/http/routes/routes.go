package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timbangcerdas/timbang-api/internal/config"
	domainRepo "github.com/timbangcerdas/timbang-api/internal/domain/repository"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/handler"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/middleware"
	"github.com/timbangcerdas/timbang-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Transaction *handler.TransactionHandler
	Receipt     *handler.ReceiptHandler
	Export      *handler.ExportHandler
	Settings    *handler.SettingsHandler
	Dashboard   *handler.DashboardHandler
	Printer     *handler.PrinterHandler
	File        *handler.FileHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	limiterCfg := middleware.RateLimiterConfig{
		RequestsPerSecond: requestsPerSecond(deps.Cfg.RateLimit),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
	if deps.Cfg.RateLimit.Requests <= 0 {
		limiterCfg = middleware.DefaultRateLimiterConfig()
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes, limited per client IP
		public := v1.Group("")
		public.Use(middleware.NewUserRateLimiter(limiterCfg).Middleware())
		registerAuthRoutes(public, h)

		// Protected routes, limited per user
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.NewUserRateLimiter(limiterCfg).Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func requestsPerSecond(cfg config.RateLimitConfig) float64 {
	if cfg.Duration <= 0 {
		return float64(cfg.Requests)
	}
	return float64(cfg.Requests) / float64(cfg.Duration)
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.DELETE("/profile", h.Auth.DeleteAccount)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Live calculation
	protected.POST("/calculate", h.Transaction.Calculate)

	// Transactions and receipts
	registerTransactionRoutes(protected, h, deps)

	// Exports
	registerExportRoutes(protected, h)

	// Generated files
	protected.GET("/files/:name", h.File.Download)

	// Settings
	protected.GET("/settings/receipt", h.Settings.GetReceiptSettings)
	protected.PUT("/settings/receipt", h.Settings.UpdateReceiptSettings)
	protected.POST("/settings/receipt/reset", h.Settings.ResetReceiptSettings)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		// A retried save replays the first response instead of recording twice
		transactions.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Transaction.Create)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.DELETE("/:id", h.Transaction.Delete)

		transactions.GET("/:id/receipt", h.Receipt.Preview)
		transactions.GET("/:id/receipt/markup", h.Receipt.Markup)
		transactions.GET("/:id/receipt/text", h.Receipt.Text)
		transactions.POST("/:id/receipt/print", h.Receipt.Print)
		transactions.POST("/:id/receipt/pdf", h.Receipt.ExportPDF)
	}
}

func registerExportRoutes(protected *gin.RouterGroup, h *Handlers) {
	exports := protected.Group("/exports/transactions")
	{
		exports.GET("", h.Export.Report)
		exports.GET("/markup", h.Export.Markup)
		exports.POST("/pdf", h.Export.ExportPDF)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
