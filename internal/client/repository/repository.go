package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/dillondm/Invoice-Managment-systems/internal/client/domain"
	"gorm.io/gorm"
)

type clientRepository struct{}

// Provide builds the gorm-backed client repository.
func Provide() domain.Repository {
	return &clientRepository{}
}

func (r *clientRepository) Insert(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) Update(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, db *gorm.DB, userID, clientID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, clientID).
		Delete(&domain.Client{}).Error
}

func (r *clientRepository) FindByID(ctx context.Context, db *gorm.DB, userID, clientID snowflake.ID) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, clientID).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter domain.ListFilter) ([]domain.Client, int64, error) {
	query := db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("user_id = ?", userID)

	if needle := strings.ToLower(strings.TrimSpace(filter.Query)); needle != "" {
		like := "%" + needle + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("name ASC, id ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var clients []domain.Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}
