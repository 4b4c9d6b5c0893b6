package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daily-journal/backend-go/internal/database/service"
)

// AdminHandler handles admin-only HTTP requests
type AdminHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userService service.UserService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		h.logger.Error("❌ [Handler] Failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}
