package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daily-journal/backend-go/internal/config"
	"github.com/daily-journal/backend-go/internal/database/service"
)

// Context keys set by RequireAuth
const (
	ContextUserID   = "userID"
	ContextEmail    = "userEmail"
	ContextUsername = "username"
	ContextRole     = "userRole"
)

// AuthMiddleware handles access token validation and role gating
type AuthMiddleware struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(service service.AuthService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		service: service,
		logger:  logger,
	}
}

// RequireAuth validates the bearer access token and sets the caller's
// identity in the request context. Failures carry a machine-readable code.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.logger.Warn("⚠️ [Middleware] Missing Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required", "code": "TOKEN_MISSING"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.logger.Warn("⚠️ [Middleware] Invalid Authorization header format")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format", "code": "TOKEN_MALFORMED"})
			c.Abort()
			return
		}

		claims, err := m.service.ValidateAccessToken(parts[1])
		if err != nil {
			code := "TOKEN_INVALID"
			if errors.Is(err, service.ErrAccessTokenExpired) {
				code = "TOKEN_EXPIRED"
			}
			m.logger.Warn("⚠️ [Middleware] Invalid token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "code": code})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		m.logger.Debug("✅ [Middleware] Token validated", "user_id", claims.UserID)

		c.Next()
	}
}

// RequireCapability gates a route on the caller's role. Runs after
// RequireAuth; roles form a closed set checked through capabilities rather
// than string comparison in handlers.
func (m *AuthMiddleware) RequireCapability(capability config.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "code": "TOKEN_MISSING"})
			c.Abort()
			return
		}

		r, ok := role.(config.Role)
		if !ok || !r.Can(capability) {
			m.logger.Warn("⚠️ [Middleware] Capability denied", "capability", capability)
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}

		c.Next()
	}
}
