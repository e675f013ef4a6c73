package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-client/internal/catalog"
	"storefront-client/internal/clock"
	"storefront-client/internal/config"
	"storefront-client/internal/engagement"
	"storefront-client/internal/handlers"
	"storefront-client/internal/navigation"
	"storefront-client/internal/session"
	"storefront-client/pkg/logger"
	"storefront-client/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "storefront-client/docs" // Import docs for Swagger
)

// @title           Storefront Client API
// @version         1.0
// @description     Render outcomes, navigation and engagement signals for the storefront browser shell.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8090
// @BasePath  /api/v1

// @schemes   http https

// Session and Request ID Headers
// @description Views are keyed by the X-Session-ID header (or the sf_session cookie issued on first contact). POST endpoints honor X-Request-ID for idempotent retries.
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Storefront Client",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	appLogger.Info("🛒 Upstream Configuration",
		zap.String("catalog", cfg.CatalogBaseURL),
		zap.String("identity", cfg.IdentityBaseURL),
		zap.String("analytics", cfg.AnalyticsURL),
		zap.Duration("timeout", cfg.HTTPTimeout),
		zap.Bool("require_uid", cfg.RequireUID),
	)

	if cfg.UseRedis {
		appLogger.Info("💾 Session Store Configuration (Redis)",
			zap.String("redis_host", cfg.RedisHost),
			zap.String("redis_port", cfg.RedisPort),
			zap.Duration("session_ttl", cfg.SessionTTL),
		)
	} else {
		appLogger.Info("💾 Session Store Configuration",
			zap.Bool("redis", false),
			zap.String("note", "Sessions are kept in memory (USE_REDIS=false)"),
		)
	}

	if cfg.UseKafka {
		appLogger.Info("📡 Kafka Configuration (Optional - engagement events)",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic_engagement", cfg.KafkaTopicEngagement),
			zap.String("acks", cfg.KafkaAcks),
		)
	} else {
		appLogger.Info("📡 Kafka Configuration",
			zap.Bool("enabled", false),
			zap.String("note", "Kafka is disabled (USE_KAFKA=false)"),
		)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// CORS middleware (must be first to handle preflight requests)
	router.Use(middleware.CORSMiddleware())

	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(logger.GinMiddleware(appLogger))

	// Request ID middleware (must be early in the chain)
	router.Use(middleware.RequestIDMiddleware(appLogger))

	// View session cookie/header
	router.Use(middleware.SessionMiddleware(cfg.SessionTTL))

	appLogger.Info("🔧 Initializing replay store for idempotency...")
	replayStore := middleware.NewMemoryReplayStore(time.Minute)
	defer replayStore.Close()
	appLogger.Info("✅ Replay store initialized successfully")

	// Idempotency middleware (cart and wishlist retries carrying X-Request-ID)
	router.Use(middleware.IdempotencyMiddleware(replayStore, appLogger, 5*time.Minute))

	// Error handler middleware
	router.Use(middleware.ErrorHandler(appLogger))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize session store
	appLogger.Info("🔧 Initializing session store...")
	store := session.NewStore(cfg, appLogger)
	appLogger.Info("✅ Session store initialized successfully")

	// Initialize catalog client
	appLogger.Info("🔧 Initializing catalog client...")
	catalogClient, err := catalog.NewClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize catalog client", zap.Error(err))
	}
	appLogger.Info("✅ Catalog client initialized successfully")

	// Engagement reporter: detached tasks on a bounded worker pool
	appLogger.Info("🔧 Initializing engagement reporter...",
		zap.Int("workers", cfg.ReporterWorkers),
		zap.Int("queue_size", cfg.ReporterQueueSize),
		zap.Duration("task_timeout", cfg.ReporterTimeout),
	)
	executor := engagement.NewExecutor(cfg.ReporterWorkers, cfg.ReporterQueueSize, cfg.ReporterTimeout, appLogger)
	sinks := engagement.Sinks{
		Backend: engagement.NewHTTPBackend(cfg),
		Dwell:   engagement.NewHTTPDwellSink(cfg),
	}

	var kafkaSink *engagement.KafkaSink
	if cfg.UseKafka {
		appLogger.Info("🔧 Initializing Kafka engagement sink...")
		kafkaSink, err = engagement.NewKafkaSink(cfg, appLogger)
		if err != nil {
			appLogger.Warn("Failed to initialize Kafka sink, continuing without engagement events", zap.Error(err))
			kafkaSink = nil
		} else {
			sinks.Events = kafkaSink
			appLogger.Info("✅ Kafka engagement sink initialized successfully")
		}
	} else {
		appLogger.Info("⏭️  Skipping Kafka engagement sink (USE_KAFKA=false)")
	}

	realClock := clock.NewRealClock()
	reporter := engagement.NewReporter(executor, sinks, realClock, cfg.AnalyticsUserID, appLogger)
	hoverTracker := engagement.NewHoverTracker(store, reporter, realClock, appLogger)
	appLogger.Info("✅ Engagement reporter initialized successfully")

	// View sessions
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	registry := navigation.NewRegistry(store, cfg.SessionTTL, realClock, appLogger)
	go registry.Run(sweepCtx, time.Minute)

	// View tokens pin each rendered page's state for the actions taken from it
	viewSecret := []byte(cfg.ViewTokenSecret)
	if len(viewSecret) == 0 {
		viewSecret, err = navigation.GenerateViewSecret()
		if err != nil {
			appLogger.Fatal("Failed to generate view token secret", zap.Error(err))
		}
		appLogger.Warn("VIEW_TOKEN_SECRET not set, using a per-process key; view tokens will not survive a restart or work across replicas")
	}

	controller := navigation.NewController(
		catalogClient,
		reporter,
		hoverTracker,
		registry,
		navigation.Options{
			Pages:      navigation.PagesFromConfig(cfg),
			RequireUID: cfg.RequireUID,
			Signer:     navigation.NewViewSigner(viewSecret),
		},
		realClock,
		appLogger,
	)

	// Initialize handlers
	appLogger.Info("🔧 Initializing handlers...")
	viewHandler := handlers.NewViewHandler(controller, appLogger)
	engagementHandler := handlers.NewEngagementHandler(controller, appLogger)
	appLogger.Info("✅ Handlers initialized successfully")

	// API routes
	handlers.RegisterRoutes(router, viewHandler, engagementHandler)

	// Browser shell (index.html, product-search.html, detailed-view.html, error.html)
	router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("🌐 Starting HTTP server",
			zap.String("address", ":"+cfg.Port),
			zap.String("static_dir", cfg.StaticDir),
			zap.String("swagger_url", "http://localhost:"+cfg.Port+"/swagger/index.html"),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	stopSweep()

	// Let queued engagement signals drain
	if err := executor.Close(ctx); err != nil {
		appLogger.Warn("Engagement reporter did not drain in time", zap.Error(err))
	}

	if kafkaSink != nil {
		if err := kafkaSink.Close(); err != nil {
			appLogger.Warn("Failed to close Kafka sink", zap.Error(err))
		}
	}

	appLogger.Info("Server exited")
}
