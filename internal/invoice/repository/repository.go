package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dillondm/Invoice-Managment-systems/internal/invoice/domain"
	"gorm.io/gorm"
)

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

type invoiceRepository struct{}

// Provide builds the gorm-backed invoice repository.
func Provide() domain.Repository {
	return &invoiceRepository{}
}

func (r *invoiceRepository) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice, items []domain.InvoiceItem) error {
	if err := db.WithContext(ctx).Create(invoice).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *invoiceRepository) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, db *gorm.DB, userID, invoiceID snowflake.ID) error {
	if err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Delete(&domain.InvoiceItem{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, invoiceID).
		Delete(&domain.Invoice{}).Error
}

func (r *invoiceRepository) FindByNumber(ctx context.Context, db *gorm.DB, userID snowflake.ID, number string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Where("user_id = ? AND number = ?", userID, strings.TrimSpace(number)).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter domain.ListFilter) ([]domain.Invoice, int64, error) {
	query := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("user_id = ?", userID)

	// The overdue and pending branches apply the same due-date predicate
	// the read path derives status from, so a past-due pending invoice
	// filters as overdue before the sweeper persists the flip.
	switch filter.Status {
	case "":
	case domain.StatusOverdue:
		query = query.Where("status = ? OR (status = ? AND due_date < ?)",
			domain.StatusOverdue, domain.StatusPending, todayUTC())
	case domain.StatusPending:
		query = query.Where("status = ? AND due_date >= ?", domain.StatusPending, todayUTC())
	default:
		query = query.Where("status = ?", filter.Status)
	}
	if needle := strings.ToLower(strings.TrimSpace(filter.Query)); needle != "" {
		like := "%" + needle + "%"
		query = query.Where("LOWER(client_name) LIKE ? OR LOWER(number) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC, id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var invoices []domain.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *invoiceRepository) Recent(ctx context.Context, db *gorm.DB, userID snowflake.ID, limit int) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) Items(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]domain.InvoiceItem, error) {
	var items []domain.InvoiceItem
	err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("position ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *invoiceRepository) InsertItem(ctx context.Context, db *gorm.DB, item *domain.InvoiceItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *invoiceRepository) UpdateItem(ctx context.Context, db *gorm.DB, item *domain.InvoiceItem) error {
	return db.WithContext(ctx).Save(item).Error
}

func (r *invoiceRepository) DeleteItem(ctx context.Context, db *gorm.DB, invoiceID, itemID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("invoice_id = ? AND id = ?", invoiceID, itemID).
		Delete(&domain.InvoiceItem{}).Error
}

func (r *invoiceRepository) MaxNumberSeq(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int, error) {
	var numbers []string
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("user_id = ?", userID).
		Pluck("number", &numbers).Error
	if err != nil {
		return 0, err
	}

	max := 0
	for _, number := range numbers {
		suffix, ok := strings.CutPrefix(number, "INV-")
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max, nil
}
