package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daily-journal/backend-go/internal/database"
	"github.com/daily-journal/backend-go/internal/database/models"
	"github.com/daily-journal/backend-go/internal/database/repository"
	"github.com/daily-journal/backend-go/internal/database/service"
	"github.com/daily-journal/backend-go/internal/middleware"
)

// EntryHandler handles HTTP requests for journal entries
type EntryHandler struct {
	entryService service.EntryService
	userService  service.UserService
	cache        *database.EntryCache
	logger       *slog.Logger
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entryService service.EntryService, userService service.UserService, cache *database.EntryCache, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
		userService:  userService,
		cache:        cache,
		logger:       logger,
	}
}

// Request/Response DTOs. The external field is "content"; internally the
// column is "body". The seam is intentional and lives only here.
type CreateEntryRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Mood    string   `json:"mood"`
	Tags    []string `json:"tags"`
}

type UpdateEntryRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Mood    *string   `json:"mood"`
	Tags    *[]string `json:"tags"`
}

type EntryResponse struct {
	ID        uint        `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Date      time.Time   `json:"date"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	UserID    uint        `json:"userId"`
	Author    string      `json:"author"`
	Mood      models.Mood `json:"mood"`
	Tags      []string    `json:"tags,omitempty"`
}

type EntryListResponse struct {
	Entries    []EntryResponse     `json:"entries"`
	Pagination *service.Pagination `json:"pagination"`
}

func toEntryResponse(entry *models.Entry) EntryResponse {
	return EntryResponse{
		ID:        entry.ID,
		Title:     entry.Title,
		Content:   entry.Body,
		Date:      entry.CreatedAt,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
		UserID:    entry.UserID,
		Author:    entry.Author,
		Mood:      entry.Mood,
		Tags:      entry.Tags,
	}
}

// Create handles POST /entries
func (h *EntryHandler) Create(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid create entry request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	userID := c.GetUint(middleware.ContextUserID)

	// The author display name comes from the owning user's profile
	author := "Anonymous"
	if user, err := h.userService.GetProfile(userID); err == nil {
		author = user.Username
	}

	entry, err := h.entryService.Create(userID, author, req.Title, req.Content, models.Mood(req.Mood), req.Tags)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.cache.InvalidateUser(c.Request.Context(), userID)
	c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// Get handles GET /entries/:id
func (h *EntryHandler) Get(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	entryID, ok := parseEntryID(c)
	if !ok {
		return
	}

	entry, err := h.entryService.Get(userID, entryID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Update handles PUT /entries/:id
func (h *EntryHandler) Update(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	entryID, ok := parseEntryID(c)
	if !ok {
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid update entry request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input := service.UpdateEntryInput{
		Title: req.Title,
		Body:  req.Content,
		Tags:  req.Tags,
	}
	if req.Mood != nil {
		mood := models.Mood(*req.Mood)
		input.Mood = &mood
	}

	entry, err := h.entryService.Update(userID, entryID, input)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.cache.InvalidateUser(c.Request.Context(), userID)
	c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Delete handles DELETE /entries/:id
func (h *EntryHandler) Delete(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	entryID, ok := parseEntryID(c)
	if !ok {
		return
	}

	if err := h.entryService.Delete(userID, entryID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.cache.InvalidateUser(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

// List handles GET /entries
func (h *EntryHandler) List(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	if payload, hit := h.cache.GetEntryPage(c.Request.Context(), userID, page, pageSize); hit {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	entries, pagination, err := h.entryService.List(userID, page, pageSize)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp := EntryListResponse{
		Entries:    make([]EntryResponse, 0, len(entries)),
		Pagination: pagination,
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, toEntryResponse(&entries[i]))
	}

	if payload, err := json.Marshal(resp); err == nil {
		h.cache.SetEntryPage(c.Request.Context(), userID, pagination.Page, pagination.PageSize, payload)
	}

	c.JSON(http.StatusOK, resp)
}

// Search handles GET /entries/search?q=
func (h *EntryHandler) Search(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	query := c.Query("q")

	entries, err := h.entryService.Search(userID, query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	results := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		results = append(results, toEntryResponse(&entries[i]))
	}

	c.JSON(http.StatusOK, gin.H{"entries": results})
}

func parseEntryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps service errors to HTTP responses
func (h *EntryHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrTitleTooLong),
		errors.Is(err, service.ErrBodyRequired),
		errors.Is(err, service.ErrInvalidMood):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSearchQueryRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
