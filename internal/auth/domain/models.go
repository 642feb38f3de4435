package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is a registered account. Each account owns its invoices, clients,
// and settings in full.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Email        string       `gorm:"type:text;not null;uniqueIndex:idx_users_email"`
	Name         string       `gorm:"type:text"`
	Phone        string       `gorm:"type:text"`
	Timezone     string       `gorm:"type:text"`
	PasswordHash string       `gorm:"type:text;not null"`
	CreatedAt    time.Time    `gorm:"not null"`
	UpdatedAt    time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session is one signed-in browser or API client. The token is opaque and
// carried in a cookie or bearer header.
type Session struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"not null;index"`
	Token     string       `gorm:"type:text;not null;uniqueIndex:idx_sessions_token"`
	UserAgent string       `gorm:"type:text"`
	IPAddress string       `gorm:"type:text"`
	ExpiresAt time.Time    `gorm:"not null"`
	CreatedAt time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
