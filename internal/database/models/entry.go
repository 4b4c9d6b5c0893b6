package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Mood is the closed set of mood tags an entry may carry
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodExcited  Mood = "excited"
	MoodAngry    Mood = "angry"
	MoodGrateful Mood = "grateful"
	MoodTired    Mood = "tired"
	MoodNeutral  Mood = "neutral"
)

// ValidMood reports whether the mood belongs to the closed set
func ValidMood(m Mood) bool {
	switch m {
	case MoodHappy, MoodSad, MoodExcited, MoodAngry, MoodGrateful, MoodTired, MoodNeutral:
		return true
	}
	return false
}

// Entry represents a journal post owned by exactly one user. The owner is
// set at creation and never reassigned.
type Entry struct {
	ID        uint                        `gorm:"primarykey" json:"id"`
	Title     string                      `gorm:"not null;size:200" json:"title"`
	Body      string                      `gorm:"not null" json:"body"`
	Author    string                      `gorm:"not null" json:"author"`
	UserID    uint                        `gorm:"not null;index:idx_entries_owner_created" json:"user_id"`
	Mood      Mood                        `gorm:"not null;default:neutral" json:"mood"`
	Tags      datatypes.JSONSlice[string] `json:"tags,omitempty"`
	CreatedAt time.Time                   `gorm:"index:idx_entries_owner_created" json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
	DeletedAt gorm.DeletedAt              `gorm:"index" json:"-"`
	User      User                        `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides the table name
func (Entry) TableName() string {
	return "entries"
}
