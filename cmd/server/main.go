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

	inventoryapp "github.com/shopbooks/backend/internal/application/inventory"
	ledgerapp "github.com/shopbooks/backend/internal/application/ledger"
	"github.com/shopbooks/backend/internal/infrastructure/cache"
	"github.com/shopbooks/backend/internal/infrastructure/config"
	"github.com/shopbooks/backend/internal/infrastructure/logger"
	"github.com/shopbooks/backend/internal/infrastructure/persistence"
	"github.com/shopbooks/backend/internal/interfaces/http/handler"
	"github.com/shopbooks/backend/internal/interfaces/http/middleware"
	"github.com/shopbooks/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ShopBooks Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
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

	// Repositories
	accountRepo := persistence.NewGormLedgerAccountRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)
	entryRepo := persistence.NewGormLedgerEntryRepository(db.DB)
	billRefRepo := persistence.NewGormBillReferenceRepository(db.DB)
	inventoryTxRepo := persistence.NewGormInventoryTransactionRepository(db.DB)
	productCatalog := persistence.NewGormProductCatalog(db.DB)

	// Transaction scopes
	ledgerScope := persistence.NewGormLedgerTransactionScope(db.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)

	// Application services
	postingService := ledgerapp.NewPostingService(ledgerScope, accountRepo, voucherRepo, entryRepo, billRefRepo)
	reportService := ledgerapp.NewReportService(accountRepo, entryRepo)
	settlementService := ledgerapp.NewSettlementService(ledgerScope, billRefRepo)
	inventoryService := inventoryapp.NewInventoryService(inventoryScope, inventoryTxRepo, productCatalog)
	inventoryService.SetLogger(log.Named("inventory"))

	// Stock report cache
	if cfg.Redis.Enabled {
		factory := cache.NewStockReportCacheFactory(cfg.Redis, cache.WithLogger(log))
		reportCache, err := factory.CreateCache()
		if err != nil {
			log.Fatal("Failed to create stock report cache", zap.Error(err))
		}
		inventoryService.SetCache(reportCache)
	}

	// HTTP engine with request-scoped logging
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(logger.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Routes
	router.NewRouter(engine).
		Register(handler.NewLedgerHandler(postingService, reportService, settlementService)).
		Register(handler.NewInventoryHandler(inventoryService)).
		Register(handler.NewSystemHandler(db, version)).
		Setup()

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

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
