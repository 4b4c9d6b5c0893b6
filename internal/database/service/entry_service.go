package service

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/daily-journal/backend-go/internal/database/models"
	"github.com/daily-journal/backend-go/internal/database/repository"
)

const (
	maxTitleLength  = 200
	defaultPageSize = 10
	maxPageSize     = 100
)

// Pagination describes one page of a list result
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// UpdateEntryInput carries the fields of an entry update. Nil fields are
// left unchanged. The entry id travels with every call; there is no
// process-wide pending-edit state.
type UpdateEntryInput struct {
	Title *string
	Body  *string
	Mood  *models.Mood
	Tags  *[]string
}

// EntryService defines the interface for journal entry business logic
type EntryService interface {
	Create(ownerID uint, authorName, title, body string, mood models.Mood, tags []string) (*models.Entry, error)
	Get(ownerID, entryID uint) (*models.Entry, error)
	Update(ownerID, entryID uint, input UpdateEntryInput) (*models.Entry, error)
	Delete(ownerID, entryID uint) error
	List(ownerID uint, page, pageSize int) ([]models.Entry, *Pagination, error)
	Search(ownerID uint, query string) ([]models.Entry, error)
}

type entryService struct {
	entryRepo repository.EntryRepository
	logger    *slog.Logger
}

// NewEntryService creates a new entry service instance
func NewEntryService(entryRepo repository.EntryRepository, logger *slog.Logger) EntryService {
	return &entryService{
		entryRepo: entryRepo,
		logger:    logger,
	}
}

func (s *entryService) Create(ownerID uint, authorName, title, body string, mood models.Mood, tags []string) (*models.Entry, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if err := validateEntryFields(title, body); err != nil {
		return nil, err
	}

	if mood == "" {
		mood = models.MoodNeutral
	}
	if !models.ValidMood(mood) {
		return nil, ErrInvalidMood
	}

	entry := &models.Entry{
		Title:  title,
		Body:   body,
		Author: authorName,
		UserID: ownerID,
		Mood:   mood,
		Tags:   tags,
	}

	if err := s.entryRepo.Create(entry); err != nil {
		s.logger.Error("❌ [EntryService] Failed to create entry", "user_id", ownerID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [EntryService] Entry created", "user_id", ownerID, "entry_id", entry.ID)
	return entry, nil
}

func (s *entryService) Get(ownerID, entryID uint) (*models.Entry, error) {
	return s.entryRepo.FindByID(ownerID, entryID)
}

func (s *entryService) Update(ownerID, entryID uint, input UpdateEntryInput) (*models.Entry, error) {
	// The ownership filter runs before any mutation
	entry, err := s.entryRepo.FindByID(ownerID, entryID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		entry.Title = strings.TrimSpace(*input.Title)
	}
	if input.Body != nil {
		entry.Body = strings.TrimSpace(*input.Body)
	}
	if input.Mood != nil {
		entry.Mood = *input.Mood
	}
	if input.Tags != nil {
		entry.Tags = *input.Tags
	}

	if err := validateEntryFields(entry.Title, entry.Body); err != nil {
		return nil, err
	}
	if !models.ValidMood(entry.Mood) {
		return nil, ErrInvalidMood
	}

	if err := s.entryRepo.Update(entry); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return nil, err
		}
		s.logger.Error("❌ [EntryService] Failed to update entry", "user_id", ownerID, "entry_id", entryID, "error", err)
		return nil, err
	}

	updated, err := s.entryRepo.FindByID(ownerID, entryID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("✅ [EntryService] Entry updated", "user_id", ownerID, "entry_id", entryID)
	return updated, nil
}

func (s *entryService) Delete(ownerID, entryID uint) error {
	if err := s.entryRepo.Delete(ownerID, entryID); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return err
		}
		s.logger.Error("❌ [EntryService] Failed to delete entry", "user_id", ownerID, "entry_id", entryID, "error", err)
		return err
	}

	s.logger.Info("✅ [EntryService] Entry deleted", "user_id", ownerID, "entry_id", entryID)
	return nil
}

func (s *entryService) List(ownerID uint, page, pageSize int) ([]models.Entry, *Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	offset := (page - 1) * pageSize
	entries, total, err := s.entryRepo.List(ownerID, offset, pageSize)
	if err != nil {
		s.logger.Error("❌ [EntryService] Failed to list entries", "user_id", ownerID, "error", err)
		return nil, nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return entries, &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

func (s *entryService) Search(ownerID uint, query string) ([]models.Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrSearchQueryRequired
	}

	entries, err := s.entryRepo.Search(ownerID, query)
	if err != nil {
		s.logger.Error("❌ [EntryService] Search failed", "user_id", ownerID, "error", err)
		return nil, err
	}

	return entries, nil
}

func validateEntryFields(title, body string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if len(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	if body == "" {
		return ErrBodyRequired
	}
	return nil
}

// Service errors
var (
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title cannot be more than 200 characters")
	ErrBodyRequired        = errors.New("content is required")
	ErrInvalidMood         = errors.New("invalid mood value")
	ErrSearchQueryRequired = errors.New("search query is required")
)
