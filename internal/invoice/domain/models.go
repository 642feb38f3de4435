package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Invoice is the stored invoice row. Monetary columns are integer cents;
// subtotal/tax/total are denormalized for list and stat queries but are
// recomputed from the items on every write.
type Invoice struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	UserID        snowflake.ID `gorm:"not null;index;uniqueIndex:idx_invoices_user_number,priority:1"`
	Number        string       `gorm:"type:text;not null;uniqueIndex:idx_invoices_user_number,priority:2"`
	ClientName    string       `gorm:"type:text;not null"`
	ClientEmail   string       `gorm:"type:text"`
	ClientAddress string       `gorm:"type:text"`
	Status        Status       `gorm:"type:text;not null"`
	IssueDate     time.Time    `gorm:"not null"`
	DueDate       time.Time    `gorm:"not null"`
	TaxRate       float64      `gorm:"not null"`
	SubtotalCents int64        `gorm:"not null"`
	TaxCents      int64        `gorm:"not null"`
	TotalCents    int64        `gorm:"not null"`
	SentAt        *time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is a single billable row on an invoice.
type InvoiceItem struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	InvoiceID      snowflake.ID `gorm:"not null;index"`
	Position       int          `gorm:"not null"`
	Description    string       `gorm:"type:text;not null"`
	Quantity       int64        `gorm:"not null"`
	UnitPriceCents int64        `gorm:"not null"`
	AmountCents    int64        `gorm:"not null"`
	CreatedAt      time.Time    `gorm:"not null"`
	UpdatedAt      time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }
