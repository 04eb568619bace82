package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/pranavkamat7/SusegadSnacks/internal/application/billing"
	catalogapp "github.com/pranavkamat7/SusegadSnacks/internal/application/catalog"
	expenseapp "github.com/pranavkamat7/SusegadSnacks/internal/application/expense"
	invapp "github.com/pranavkamat7/SusegadSnacks/internal/application/inventory"
	orderapp "github.com/pranavkamat7/SusegadSnacks/internal/application/order"
	partnerapp "github.com/pranavkamat7/SusegadSnacks/internal/application/partner"
	reportapp "github.com/pranavkamat7/SusegadSnacks/internal/application/report"
	"github.com/pranavkamat7/SusegadSnacks/internal/infrastructure/config"
	"github.com/pranavkamat7/SusegadSnacks/internal/infrastructure/event"
	"github.com/pranavkamat7/SusegadSnacks/internal/infrastructure/logger"
	"github.com/pranavkamat7/SusegadSnacks/internal/infrastructure/persistence"
	"github.com/pranavkamat7/SusegadSnacks/internal/interfaces/http/handler"
	"github.com/pranavkamat7/SusegadSnacks/internal/interfaces/http/middleware"
	"github.com/pranavkamat7/SusegadSnacks/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Susegad Snacks backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	customerTypeRepo := persistence.NewGormCustomerTypeRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	salesReportRepo := persistence.NewGormSalesReportRepository(db.DB)
	financeReportRepo := persistence.NewGormFinanceReportRepository(db.DB)
	inventoryReportRepo := persistence.NewGormInventoryReportRepository(db.DB)

	// Transaction scopes for the multi-aggregate operations
	orderScope := persistence.NewGormOrderTransactionScope(db.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	billingScope := persistence.NewGormBillingTransactionScope(db.DB)

	participantResolver := persistence.NewCustomerParticipantResolver(customerRepo)

	// Initialize application services
	catalogService := catalogapp.NewCatalogService(brandRepo, productRepo, log)
	partnerService := partnerapp.NewPartnerService(customerRepo, customerTypeRepo, log)
	orderService := orderapp.NewOrderService(orderScope, productRepo, customerRepo, log)
	draftService := orderapp.NewDraftOrderService(orderScope, productRepo, customerRepo, log)
	inventoryService := invapp.NewInventoryService(inventoryScope, productRepo, log)
	billingService := billingapp.NewBillingService(billingScope, log)
	expenseService := expenseapp.NewExpenseService(expenseRepo, participantResolver, log)
	reportService := reportapp.NewReportService(salesReportRepo, financeReportRepo, inventoryReportRepo, log)

	// Initialize event bus and subscribe the audit trail handler to everything
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	// Inject event bus into services that publish events
	orderService.SetEventPublisher(eventBus)
	draftService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)
	billingService.SetEventPublisher(eventBus)
	expenseService.SetEventPublisher(eventBus)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and logging carry it
	engine.Use(logger.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewCatalogHandler(catalogService)).
		Register(handler.NewPartnerHandler(partnerService)).
		Register(handler.NewOrderHandler(orderService)).
		Register(handler.NewDraftOrderHandler(draftService)).
		Register(handler.NewInventoryHandler(inventoryService)).
		Register(handler.NewBillingHandler(billingService)).
		Register(handler.NewExpenseHandler(expenseService)).
		Register(handler.NewReportHandler(reportService)).
		Register(handler.NewSystemHandler(db, cfg.App.Name))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Background sweep for expired order drafts
	purgeStop := make(chan struct{})
	if cfg.Draft.PurgeEnabled {
		go runDraftPurge(draftService, cfg.Draft.PurgeInterval, purgeStop, log)
		log.Info("Draft purge enabled", zap.Duration("interval", cfg.Draft.PurgeInterval))
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")
	close(purgeStop)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// runDraftPurge sweeps expired order drafts on a fixed interval until stop is closed.
func runDraftPurge(drafts *orderapp.DraftOrderService, interval time.Duration, stop <-chan struct{}, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			purged, err := drafts.PurgeExpired(ctx)
			cancel()
			if err != nil {
				log.Error("Draft purge failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				log.Info("Purged expired order drafts", zap.Int64("count", purged))
			}
		case <-stop:
			return
		}
	}
}
