package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"shop_client/config"
	"shop_client/internal/mockapi"
	"shop_client/pkg/logger"
)

func main() {
	log := logger.New(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig(log)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log = logger.New(cfg.LogLevel)
	log.Info("Starting mock admin API...")

	gin.SetMode(gin.ReleaseMode)
	router, _, err := mockapi.NewRouter(mockapi.Options{
		JWTSecret:     cfg.MockJWTSecret,
		AdminUsername: cfg.MockAdminUsername,
		AdminPassword: cfg.MockAdminPassword,
		Locale:        cfg.Locale,
		SeedCatalog:   true,
	}, log)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.MockAPIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Mock admin API listening on %s", cfg.MockAPIPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
	log.Info("Mock admin API shut down gracefully.")
}
