package events

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Invoice lifecycle event types feeding the activity timeline.
const (
	EventInvoiceCreated = "invoice_created"
	EventInvoiceSent    = "invoice_sent"
	EventInvoicePaid    = "invoice_paid"
	EventInvoiceDeleted = "invoice_deleted"
)

// InvoiceEvent is one stored lifecycle event.
type InvoiceEvent struct {
	ID        snowflake.ID      `gorm:"primaryKey"`
	UserID    snowflake.ID      `gorm:"not null;index"`
	InvoiceID snowflake.ID      `gorm:"not null;index"`
	EventType string            `gorm:"type:text;not null"`
	Payload   datatypes.JSONMap `gorm:"type:text"`
	CreatedAt time.Time         `gorm:"not null"`
}

// TableName sets the database table name.
func (InvoiceEvent) TableName() string { return "invoice_events" }

// Message renders the human-readable timeline entry for the event type.
func (e InvoiceEvent) Message() string {
	switch e.EventType {
	case EventInvoiceCreated:
		return "Invoice created"
	case EventInvoiceSent:
		return "Invoice sent"
	case EventInvoicePaid:
		return "Payment received"
	case EventInvoiceDeleted:
		return "Invoice deleted"
	default:
		return e.EventType
	}
}
