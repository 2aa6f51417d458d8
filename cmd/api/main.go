package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timbangcerdas/timbang-api/internal/application/service"
	"github.com/timbangcerdas/timbang-api/internal/config"
	"github.com/timbangcerdas/timbang-api/internal/infrastructure/database"
	"github.com/timbangcerdas/timbang-api/internal/infrastructure/render"
	"github.com/timbangcerdas/timbang-api/internal/infrastructure/repository"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/handler"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/middleware"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/routes"
	"github.com/timbangcerdas/timbang-api/pkg/printer"
	"github.com/timbangcerdas/timbang-api/pkg/storage"
	"github.com/timbangcerdas/timbang-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := cfg.App.Location()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewReceiptSettingsRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize thermal printer
	printerType := cfg.Printer.Type
	thermalPrinter, err := printer.New(printer.Config{
		Type:         cfg.Printer.Type,
		USBPath:      cfg.Printer.USBPath,
		Address:      cfg.Printer.Address,
		DialTimeout:  cfg.Printer.DialTimeout,
		WriteTimeout: cfg.Printer.WriteTimeout,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
		printerType = "none"
	}
	defer thermalPrinter.Close()

	// Generated PDFs
	fileStore := storage.NewFileStore(cfg.Storage.Path, cfg.Storage.BaseURL)
	if !fileStore.Available() {
		log.Printf("Warning: storage path %q is not writable; PDF export is disabled", cfg.Storage.Path)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	settingsService := service.NewSettingsService(settingsRepo)
	txnService := service.NewTransactionService(txnRepo, loc)
	receiptService := service.NewReceiptService(txnRepo, settingsService, thermalPrinter, fileStore, service.ReceiptOptions{
		PrinterType:  printerType,
		PrintTimeout: cfg.Receipt.PrintTimeout,
		PDFTimeout:   cfg.Receipt.PDFTimeout,
		Location:     loc,
		ESCPOS:       render.ESCPOSRenderer{},
		PDF:          render.PDFRenderer{},
		ReportPDF:    render.ReportPDFRenderer{},
	})
	exportService := service.NewExportService(txnRepo, settingsService, receiptService, loc)
	dashboardService := service.NewDashboardService(txnRepo, loc)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Transaction: handler.NewTransactionHandler(txnService),
		Receipt:     handler.NewReceiptHandler(receiptService),
		Export:      handler.NewExportHandler(exportService),
		Settings:    handler.NewSettingsHandler(settingsService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Printer:     handler.NewPrinterHandler(receiptService),
		File:        handler.NewFileHandler(fileStore),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Expired idempotency keys are swept hourly
	middleware.StartIdempotencyJanitor(idempotencyRepo, time.Hour, ctx.Done())

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
