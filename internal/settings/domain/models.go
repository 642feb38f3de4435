package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CompanySettings carries the issuing company details stamped onto
// rendered invoices. One row per account, created lazily with defaults.
type CompanySettings struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	UserID       snowflake.ID `gorm:"not null;uniqueIndex:idx_company_settings_user"`
	CompanyName  string       `gorm:"type:text"`
	CompanyEmail string       `gorm:"type:text"`
	Address      string       `gorm:"type:text"`
	TaxID        string       `gorm:"type:text"`
	LogoURL      string       `gorm:"type:text"`
	PrimaryColor string       `gorm:"type:text"`
	FontFamily   string       `gorm:"type:text"`
	CreatedAt    time.Time    `gorm:"not null"`
	UpdatedAt    time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (CompanySettings) TableName() string { return "company_settings" }

// NotificationSettings are per-account email toggles.
type NotificationSettings struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	UserID         snowflake.ID `gorm:"not null;uniqueIndex:idx_notification_settings_user"`
	EmailOnSent    bool         `gorm:"not null;default:true"`
	EmailOnPaid    bool         `gorm:"not null;default:true"`
	EmailOnOverdue bool         `gorm:"not null;default:true"`
	CreatedAt      time.Time    `gorm:"not null"`
	UpdatedAt      time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (NotificationSettings) TableName() string { return "notification_settings" }
