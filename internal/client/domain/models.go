package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is a saved billing contact owned by one account.
type Client struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"not null;index:idx_clients_user"`
	Name      string       `gorm:"type:text;not null"`
	Email     string       `gorm:"type:text"`
	Phone     string       `gorm:"type:text"`
	Address   string       `gorm:"type:text"`
	Notes     string       `gorm:"type:text"`
	CreatedAt time.Time    `gorm:"not null"`
	UpdatedAt time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
