package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/daily-journal/backend-go/internal/database/models"
)

func createTestEntry(t *testing.T, db *gorm.DB, ownerID uint, title, body string, createdAt time.Time) *models.Entry {
	t.Helper()

	entry := &models.Entry{
		Title:     title,
		Body:      body,
		Author:    "tester",
		UserID:    ownerID,
		Mood:      models.MoodNeutral,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

func TestEntryRepository_OwnershipScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db)
	alice := createTestUser(t, db, "alice@example.com", "alice")
	bob := createTestUser(t, db, "bob@example.com", "bob")

	entry := createTestEntry(t, db, alice.ID, "Day 1", "hello", time.Now())

	// Another owner's id makes the entry invisible to every operation
	_, err := repo.FindByID(bob.ID, entry.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	entry.UserID = bob.ID
	entry.Title = "hijacked"
	assert.ErrorIs(t, repo.Update(entry), ErrEntryNotFound)

	assert.ErrorIs(t, repo.Delete(bob.ID, entry.ID), ErrEntryNotFound)

	// The entry is untouched for its real owner
	found, err := repo.FindByID(alice.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Day 1", found.Title)
}

func TestEntryRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db)
	user := createTestUser(t, db, "crud@example.com", "cruduser")

	entry := &models.Entry{
		Title:  "First",
		Body:   "some words",
		Author: "cruduser",
		UserID: user.ID,
		Mood:   models.MoodHappy,
		Tags:   []string{"travel", "food"},
	}
	require.NoError(t, repo.Create(entry))
	require.NotZero(t, entry.ID)

	found, err := repo.FindByID(user.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MoodHappy, found.Mood)
	assert.Equal(t, []string{"travel", "food"}, []string(found.Tags))

	found.Title = "First (edited)"
	found.Mood = models.MoodGrateful
	require.NoError(t, repo.Update(found))

	updated, err := repo.FindByID(user.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "First (edited)", updated.Title)
	assert.Equal(t, models.MoodGrateful, updated.Mood)

	require.NoError(t, repo.Delete(user.ID, entry.ID))
	_, err = repo.FindByID(user.ID, entry.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestEntryRepository_ListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db)
	user := createTestUser(t, db, "page@example.com", "pageuser")

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 25; i++ {
		createTestEntry(t, db, user.ID, fmt.Sprintf("Entry %d", i), "body", base.Add(time.Duration(i)*time.Minute))
	}

	// Page 2 of 10 over 25 entries in descending creation order: entries 15..6
	entries, total, err := repo.List(user.ID, 10, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	require.Len(t, entries, 10)
	assert.Equal(t, "Entry 15", entries[0].Title)
	assert.Equal(t, "Entry 6", entries[9].Title)

	// Last page holds the remainder
	entries, _, err = repo.List(user.ID, 20, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	// Beyond the last page is empty, not an error
	entries, _, err = repo.List(user.ID, 30, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntryRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db)
	alice := createTestUser(t, db, "alice@example.com", "alice")
	bob := createTestUser(t, db, "bob@example.com", "bob")

	base := time.Now().Add(-time.Hour)
	createTestEntry(t, db, alice.ID, "Morning Coffee", "a quiet start", base.Add(1*time.Minute))
	createTestEntry(t, db, alice.ID, "Workout", "ran before COFFEE", base.Add(2*time.Minute))
	createTestEntry(t, db, alice.ID, "Groceries", "nothing special", base.Add(3*time.Minute))
	createTestEntry(t, db, bob.ID, "Coffee Snob Notes", "espresso", base.Add(4*time.Minute))

	results, err := repo.Search(alice.ID, "coffee")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Case-insensitive over title or body, newest first, other owners excluded
	assert.Equal(t, "Workout", results[0].Title)
	assert.Equal(t, "Morning Coffee", results[1].Title)
}
