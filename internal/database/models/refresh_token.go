package models

import (
	"time"

	"gorm.io/gorm"
)

// RefreshToken stores one row per issued refresh token. At most one
// non-revoked row may exist for a given (user, user agent) pair.
type RefreshToken struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Token     string         `gorm:"uniqueIndex;not null" json:"token"`
	UserAgent string         `gorm:"not null" json:"user_agent"`
	IPAddress string         `json:"ip_address,omitempty"`
	IsRevoked bool           `gorm:"default:false" json:"is_revoked"`
	RevokedAt *time.Time     `json:"revoked_at,omitempty"`
	ExpiresAt time.Time      `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides the table name
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
