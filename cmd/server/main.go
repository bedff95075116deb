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
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/demandcast/backend/internal/application/catalog"
	reportapp "github.com/demandcast/backend/internal/application/report"
	"github.com/demandcast/backend/internal/infrastructure/cache"
	"github.com/demandcast/backend/internal/infrastructure/config"
	"github.com/demandcast/backend/internal/infrastructure/logger"
	"github.com/demandcast/backend/internal/infrastructure/persistence"
	"github.com/demandcast/backend/internal/infrastructure/spreadsheet"
	"github.com/demandcast/backend/internal/infrastructure/storage"
	"github.com/demandcast/backend/internal/infrastructure/worker"
	"github.com/demandcast/backend/internal/interfaces/http/handler"
	"github.com/demandcast/backend/internal/interfaces/http/middleware"
	"github.com/demandcast/backend/internal/interfaces/http/router"
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

	log.Info("Starting forecast backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	gormLogLevel := gormlogger.Silent
	if cfg.App.Env != "production" {
		gormLogLevel = gormlogger.Warn
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Initialize repositories
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	skuRepo := persistence.NewGormSKURepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	forecastRepo := persistence.NewGormForecastRepository(db.DB)
	jobLedger := persistence.NewGormReportJobLedger(db.DB)

	// Report result blob store
	var blobs reportapp.BlobStore
	switch cfg.Storage.Backend {
	case "s3":
		s3Store, err := storage.NewS3BlobStore(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		blobs = s3Store
		log.Info("Using S3 report storage", zap.String("bucket", cfg.Storage.Bucket))
	default:
		blobs = storage.NewMemoryBlobStore()
		log.Warn("Using in-memory report storage, files do not survive restarts")
	}

	// Dispatch guard: Redis when available, in-process otherwise
	var guard reportapp.DispatchGuard
	if cfg.Redis.Enabled {
		redisGuard, err := cache.NewRedisDispatchGuard(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisGuard.Close()
		}()
		guard = redisGuard
		log.Info("Using Redis dispatch guard")
	} else {
		guard = cache.NewMemoryDispatchGuard()
	}

	// Background worker pool for report jobs
	pool := worker.NewPool(worker.Config{
		Workers:     cfg.Worker.Workers,
		QueueSize:   cfg.Worker.QueueSize,
		JobTimeout:  cfg.Worker.JobTimeout,
		StopTimeout: cfg.Worker.StopTimeout,
	}, log)
	if err := pool.Start(context.Background()); err != nil {
		log.Fatal("Failed to start worker pool", zap.Error(err))
	}

	// Application services
	storeService := catalogapp.NewStoreService(storeRepo)
	skuService := catalogapp.NewSKUService(skuRepo)
	saleService := catalogapp.NewSaleService(saleRepo)
	forecastService := catalogapp.NewForecastService(forecastRepo)

	resolver := reportapp.NewResolver(storeRepo, skuRepo, saleRepo, forecastRepo)
	renderer := spreadsheet.NewExcelRenderer()
	reportService := reportapp.NewService(
		jobLedger, blobs, guard, pool, resolver, log,
		reportapp.NewForecastGenerator(resolver, renderer),
		reportapp.NewStatisticsGenerator(resolver, renderer),
	)

	// HTTP handlers
	storeHandler := handler.NewStoreHandler(storeService)
	skuHandler := handler.NewSKUHandler(skuService)
	saleHandler := handler.NewSaleHandler(saleService)
	forecastHandler := handler.NewForecastHandler(forecastService)
	reportHandler := handler.NewReportHandler(reportService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.Identity())
	r.Register(storeHandler, skuHandler, saleHandler, forecastHandler, reportHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown: stop accepting requests, then drain report jobs.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := pool.Stop(ctx); err != nil {
		log.Error("Worker pool stopped with pending jobs", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
