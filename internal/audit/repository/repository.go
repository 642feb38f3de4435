package repository

import (
	"context"

	"github.com/dillondm/Invoice-Managment-systems/internal/audit/domain"
	"gorm.io/gorm"
)

type auditRepository struct{}

// Provide builds the gorm-backed audit repository.
func Provide() domain.Repository {
	return &auditRepository{}
}

func (r *auditRepository) Insert(ctx context.Context, db *gorm.DB, entry *domain.AuditLog) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.AuditLog, error) {
	query := db.WithContext(ctx).
		Model(&domain.AuditLog{}).
		Where("user_id = ?", filter.UserID)

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	query = query.Order("created_at DESC, id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var entries []*domain.AuditLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
