package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daily-journal/backend-go/internal/config"
	"github.com/daily-journal/backend-go/internal/handler"
	"github.com/daily-journal/backend-go/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	entryHandler *handler.EntryHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.Use(middleware.MetricsMiddleware())

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh-token", authHandler.RefreshToken)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
	}

	// Entry routes (owner-scoped, authenticated)
	entries := r.Group("/entries")
	entries.Use(authMiddleware.RequireAuth())
	{
		entries.GET("", entryHandler.List)
		entries.POST("", entryHandler.Create)
		entries.GET("/search", entryHandler.Search)
		entries.GET("/:id", entryHandler.Get)
		entries.PUT("/:id", entryHandler.Update)
		entries.DELETE("/:id", entryHandler.Delete)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireCapability(config.CapListUsers))
	{
		admin.GET("/users", adminHandler.ListUsers)
	}

	return r
}
