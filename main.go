package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"restock-backend/awsx"
	"restock-backend/catalog"
	"restock-backend/controllers"
	"restock-backend/database"
	"restock-backend/intents"
	"restock-backend/logger"
	"restock-backend/middleware"
	"restock-backend/models"
	"restock-backend/providers"
	"restock-backend/repository"
	"restock-backend/routes"
	"restock-backend/services"
	"restock-backend/telemetry"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	zlog := logger.New(cfg.Env)
	defer zlog.Sync()

	// --- Catalog ---
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			zlog.Fatal("Catalog load failed", zap.String("path", cfg.CatalogPath), zap.Error(err))
		}
		zlog.Info("Catalog loaded from file", zap.String("path", cfg.CatalogPath))
	}

	// --- Order archive (optional) ---
	var db *gorm.DB
	var archive repository.OrderArchive
	if os.Getenv("POSTGRES_DB") != "" {
		db, err = database.ConnectPostgres(zlog, &models.ArchivedOrder{})
		if err != nil {
			zlog.Fatal("Postgres connection failed", zap.Error(err))
		}
		archive = repository.NewGormOrderArchive(db)
	} else {
		zlog.Info("POSTGRES_DB not set, order history archive disabled")
	}

	// --- Preferences store (redis with in-memory fallback) ---
	var prefsRepo repository.PreferencesRepository
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			zlog.Fatal("Redis connection failed", zap.Error(err))
		}
		prefsRepo = repository.NewRedisPreferencesRepository(redisClient)
		zlog.Info("Preferences backed by redis")
	} else {
		prefsRepo = repository.NewMemoryPreferencesRepository()
		zlog.Info("REDIS_URL not set, preferences held in memory")
	}

	// --- AWS (optional, non-fatal) ---
	var snsPublisher awsx.SNSPublisher
	if cfg.OrderEventsTopicARN != "" {
		awsCfg, err := awsx.LoadConfig(context.Background())
		if err != nil {
			zlog.Warn("AWS config load failed, event publishing disabled", zap.Error(err))
		} else {
			snsPublisher = awsx.NewSNSClient(awsCfg)
		}
	}
	tel := telemetry.NewClient(snsPublisher, cfg.OrderEventsTopicARN, zlog)

	// --- Core stores and provider ---
	store := intents.NewStore(cfg.PromptCooldown, cfg.IntentTTL)
	commerce := providers.NewFromConfig(providers.Config{
		Provider:       cfg.CommerceProvider,
		BaseURL:        cfg.CommerceBaseURL,
		APIKey:         cfg.CommerceAPIKey,
		RequestTimeout: cfg.CommerceRequestTimeout,
	})
	zlog.Info("Commerce provider configured", zap.String("provider", commerce.Name()))

	// --- Services ---
	userService := services.NewUserService(prefsRepo, zlog)
	detectionService := services.NewDetectionService(cat, store, tel, zlog)
	orderService := services.NewOrderService(store, commerce, userService, archive, tel, zlog)

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(logger.RequestLogger(zlog))

	// CloudWatch HTTP metrics middleware (non-fatal when unavailable)
	metricsClient, err := awsx.NewMetricsClient(context.Background())
	if err != nil {
		zlog.Warn("CloudWatch metrics client init failed (non-fatal)", zap.Error(err))
	}
	r.Use(func(c *gin.Context) {
		if !metricsClient.IsEnabled() {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		go func(path, method string, status int, dur time.Duration) {
			mctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			dims := map[string]string{"Service": "restock-backend", "Method": method, "Path": path}
			_ = metricsClient.RecordCount(mctx, awsx.MetricHTTPRequests, dims)
			_ = metricsClient.RecordLatency(mctx, awsx.MetricHTTPLatency, dur, dims)
			if status >= 400 {
				_ = metricsClient.RecordCount(mctx, awsx.MetricHTTPErrors, dims)
			}
		}(c.Request.URL.Path, c.Request.Method, c.Writer.Status(), time.Since(start))
	})

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.Register(r,
		controllers.NewDetectionController(detectionService),
		controllers.NewOrderController(orderService),
		controllers.NewUserController(userService),
		controllers.NewSystemController(cat, tel),
	)

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		zlog.Info("Restock backend started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server shutdown error", zap.Error(err))
	}
	if db != nil {
		if err := database.ClosePostgres(db); err != nil {
			zlog.Error("Database close error", zap.Error(err))
		}
	}

	log.Println("Restock backend stopped gracefully")
}
