package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-catalog/internal/catalog"
	"inventory-catalog/internal/config"
	"inventory-catalog/internal/web"
	"inventory-catalog/pkg/logger"
	"inventory-catalog/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadCatalog()

	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("Starting Catalog Web",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("inventory_service_url", cfg.InventoryServiceURL),
		zap.Duration("inventory_timeout", cfg.InventoryTimeout),
	)

	templates, err := web.LoadTemplates(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load templates", zap.Error(err))
	}

	client := catalog.NewClient(cfg.InventoryServiceURL, cfg.InventoryTimeout, appLogger)
	server := web.NewServer(client, templates, appLogger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(middleware.RequestIDMiddleware(appLogger))
	router.Use(logger.GinMiddleware(appLogger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "catalog-web",
		})
	})
	server.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Catalog Web listening", zap.String("port", cfg.Port))
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
