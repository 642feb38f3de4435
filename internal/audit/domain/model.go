package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Actions recorded by the service. Target ids are the public identifiers
// (invoice numbers, snowflake ids) rather than row ids.
const (
	ActionSignIn         = "auth.sign_in"
	ActionSignOut        = "auth.sign_out"
	ActionSignUp         = "auth.sign_up"
	ActionPasswordChange = "auth.password_change"
	ActionInvoiceCreate  = "invoice.create"
	ActionInvoiceSend    = "invoice.send"
	ActionInvoicePaid    = "invoice.mark_paid"
	ActionInvoiceDelete  = "invoice.delete"
	ActionClientCreate   = "client.create"
	ActionClientUpdate   = "client.update"
	ActionClientDelete   = "client.delete"
	ActionSettingsUpdate = "settings.update"
)

// AuditLog captures an immutable record of an account action.
type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey"`
	UserID     snowflake.ID      `gorm:"not null;index"`
	Action     string            `gorm:"type:text;not null;index"`
	TargetType string            `gorm:"type:text"`
	TargetID   string            `gorm:"type:text"`
	Metadata   datatypes.JSONMap `gorm:"type:text"`
	IPAddress  string            `gorm:"type:text"`
	UserAgent  string            `gorm:"type:text"`
	RequestID  string            `gorm:"type:text"`
	CreatedAt  time.Time         `gorm:"not null"`
}

// TableName sets the database table name.
func (AuditLog) TableName() string { return "audit_logs" }
