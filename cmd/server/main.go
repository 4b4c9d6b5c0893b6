package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daily-journal/backend-go/internal/api"
	"github.com/daily-journal/backend-go/internal/config"
	"github.com/daily-journal/backend-go/internal/database"
	"github.com/daily-journal/backend-go/internal/database/repository"
	"github.com/daily-journal/backend-go/internal/database/service"
	"github.com/daily-journal/backend-go/internal/handler"
	"github.com/daily-journal/backend-go/internal/logger"
	"github.com/daily-journal/backend-go/internal/middleware"
	"github.com/daily-journal/backend-go/internal/worker"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting Daily Journal API...",
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	if err := database.ConnectDatabase(cfg, appLogger); err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := database.GetDatabase()

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	entryRepo := repository.NewEntryRepository(db)

	// 5. Initialize Entry Cache
	entryCache, err := database.NewEntryCache(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, entry pages will not be cached", "error", err)
		// Continue without Redis - entry reads go straight to Postgres
	}
	defer entryCache.Close()

	// 6. Initialize Services
	tokenService := service.NewTokenService(cfg)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, tokenService, cfg, appLogger)
	entryService := service.NewEntryService(entryRepo, appLogger)
	userService := service.NewUserService(userRepo, appLogger)

	// 7. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, userService, appLogger)
	entryHandler := handler.NewEntryHandler(entryService, userService, entryCache, appLogger)
	adminHandler := handler.NewAdminHandler(userService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	// 8. Start Background Sweeper
	pool := worker.NewPool(appLogger)
	sweeper := worker.NewTokenSweeper(
		refreshTokenRepo,
		time.Duration(cfg.TokenSweepInterval)*time.Second,
		appLogger,
	)
	pool.Submit(sweeper.Run)

	// 9. Setup Router and HTTP Server
	r := api.SetupRouter(authHandler, entryHandler, adminHandler, authMiddleware)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ApiServicePort),
		Handler: r,
	}

	go func() {
		appLogger.Info("🌍 [Go] HTTP Server running...", "port", cfg.ApiServicePort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("❌ HTTP Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// 10. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("🛑 [Go] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("❌ HTTP Server shutdown failed", "error", err)
	}

	pool.Shutdown(10 * time.Second)

	appLogger.Info("👋 [Go] Server stopped")
}
