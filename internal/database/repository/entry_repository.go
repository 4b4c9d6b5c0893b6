package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/daily-journal/backend-go/internal/database/models"
)

// EntryRepository defines ownership-scoped access to journal entries. Every
// read and write is filtered by the owner id; an entry belonging to another
// user is indistinguishable from a missing one.
type EntryRepository interface {
	Create(entry *models.Entry) error
	FindByID(ownerID, entryID uint) (*models.Entry, error)
	Update(entry *models.Entry) error
	Delete(ownerID, entryID uint) error
	List(ownerID uint, offset, limit int) ([]models.Entry, int64, error)
	Search(ownerID uint, query string) ([]models.Entry, error)
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository instance
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(entry *models.Entry) error {
	return r.db.Create(entry).Error
}

func (r *entryRepository) FindByID(ownerID, entryID uint) (*models.Entry, error) {
	var entry models.Entry
	err := r.db.Where("id = ? AND user_id = ?", entryID, ownerID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) Update(entry *models.Entry) error {
	result := r.db.Model(&models.Entry{}).
		Where("id = ? AND user_id = ?", entry.ID, entry.UserID).
		Updates(map[string]interface{}{
			"title": entry.Title,
			"body":  entry.Body,
			"mood":  entry.Mood,
			"tags":  entry.Tags,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (r *entryRepository) Delete(ownerID, entryID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", entryID, ownerID).
		Delete(&models.Entry{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (r *entryRepository) List(ownerID uint, offset, limit int) ([]models.Entry, int64, error) {
	var total int64
	err := r.db.Model(&models.Entry{}).
		Where("user_id = ?", ownerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var entries []models.Entry
	err = r.db.Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Search matches a case-insensitive substring against title or body.
func (r *entryRepository) Search(ownerID uint, query string) ([]models.Entry, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var entries []models.Entry
	err := r.db.Where("user_id = ?", ownerID).
		Where("LOWER(title) LIKE ? OR LOWER(body) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Repository errors
var (
	ErrEntryNotFound = errors.New("entry not found")
)
