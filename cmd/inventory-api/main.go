package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-catalog/internal/cache"
	"inventory-catalog/internal/config"
	"inventory-catalog/internal/events"
	"inventory-catalog/internal/handlers"
	"inventory-catalog/internal/repository"
	"inventory-catalog/internal/service"
	"inventory-catalog/pkg/logger"
	"inventory-catalog/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "inventory-catalog/docs" // Import docs for Swagger
)

// @title           Inventory API
// @version         1.0
// @description     CRUD and name search over the item catalog
// @host            localhost:8081
// @BasePath        /
// @schemes         http
func main() {
	cfg := config.LoadInventory()

	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("Starting Inventory API",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("store_driver", cfg.StoreDriver),
	)

	repo, closeStore, err := buildRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize item store", zap.Error(err))
	}
	defer closeStore()

	eventBus, closeEvents := buildEventPublisher(cfg, appLogger)
	defer closeEvents()

	itemService := service.NewItemService(repo, eventBus, appLogger)
	itemHandler := handlers.NewItemHandler(appLogger, itemService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// CORS first so preflight requests short-circuit
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(middleware.RequestIDMiddleware(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(middleware.ErrorHandler(appLogger))

	router.GET("/health", healthCheck)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	itemHandler.RegisterRoutes(router.Group("/items"))
	itemHandler.RegisterRoutes(router.Group("/api/items"))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Inventory API listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// buildRepository picks the store from STORE_DRIVER and, when USE_CACHE is set,
// wraps it with the read-through cache.
func buildRepository(cfg *config.InventoryConfig, log *zap.Logger) (repository.ItemRepository, func(), error) {
	var (
		repo    repository.ItemRepository
		closers []io.Closer
	)

	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		sqliteRepo, err := repository.NewSQLiteItemRepository(cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using SQLite item store", zap.String("path", cfg.SQLitePath))
		repo = sqliteRepo
		closers = append(closers, sqliteRepo)
	default:
		log.Info("Using in-memory item store")
		repo = repository.NewInMemoryItemRepository()
	}

	if cfg.UseCache {
		itemCache := cache.NewCache(cfg, log)
		if closer, ok := itemCache.(io.Closer); ok {
			closers = append(closers, closer)
		}
		repo = repository.NewCachedItemRepository(repo, itemCache, cache.TTL(cfg.CacheTTL), log)
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				log.Warn("Failed to close resource", zap.Error(err))
			}
		}
	}
	return repo, closeAll, nil
}

// buildEventPublisher falls back to the bounded in-memory publisher when Kafka is off or unreachable
func buildEventPublisher(cfg *config.InventoryConfig, log *zap.Logger) (events.EventPublisher, func()) {
	if !cfg.UseKafka {
		return events.NewEventPublisher(log), func() {}
	}

	log.Info("Kafka Configuration",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic_items", cfg.KafkaTopicItems),
		zap.String("client_id", cfg.KafkaClientID),
		zap.String("acks", cfg.KafkaAcks),
		zap.Int("retries", cfg.KafkaRetries),
	)

	publisher, err := events.NewKafkaEventPublisher(cfg, log)
	if err != nil {
		log.Warn("Failed to initialize Kafka publisher, using in-memory fallback", zap.Error(err))
		return events.NewEventPublisher(log), func() {}
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			log.Warn("Failed to close Kafka producer", zap.Error(err))
		}
	}
}

// healthCheck godoc
// @Summary      Health check endpoint
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "inventory-api",
	})
}
