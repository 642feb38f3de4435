package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListFilter narrows invoice list queries. All queries are scoped to the
// owning account by the repository.
type ListFilter struct {
	Status Status
	Query  string
	Limit  int
	Offset int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice, items []InvoiceItem) error
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	Delete(ctx context.Context, db *gorm.DB, userID, invoiceID snowflake.ID) error
	FindByNumber(ctx context.Context, db *gorm.DB, userID snowflake.ID, number string) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter ListFilter) ([]Invoice, int64, error)
	Recent(ctx context.Context, db *gorm.DB, userID snowflake.ID, limit int) ([]Invoice, error)
	Items(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]InvoiceItem, error)
	InsertItem(ctx context.Context, db *gorm.DB, item *InvoiceItem) error
	UpdateItem(ctx context.Context, db *gorm.DB, item *InvoiceItem) error
	DeleteItem(ctx context.Context, db *gorm.DB, invoiceID, itemID snowflake.ID) error
	// MaxNumberSeq returns the highest numeric suffix used by the
	// account's invoice numbers ("INV-007" -> 7).
	MaxNumberSeq(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int, error)
}
