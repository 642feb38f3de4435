package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository is a thin generic gorm store for simple row types that do
// not warrant a hand-written repository.
type Repository[T any] struct {
	db *gorm.DB
}

// ProvideStore builds a Repository bound to the given connection.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return Repository[T]{db: db}
}

func (r Repository[T]) Insert(ctx context.Context, value *T) error {
	return r.db.WithContext(ctx).Create(value).Error
}

func (r Repository[T]) Save(ctx context.Context, value *T) error {
	return r.db.WithContext(ctx).Save(value).Error
}

// FindOne returns the first row matching conds, or nil when absent.
func (r Repository[T]) FindOne(ctx context.Context, conds ...any) (*T, error) {
	var value T
	err := r.db.WithContext(ctx).First(&value, conds...).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &value, nil
}

func (r Repository[T]) Find(ctx context.Context, conds ...any) ([]T, error) {
	var values []T
	if err := r.db.WithContext(ctx).Find(&values, conds...).Error; err != nil {
		return nil, err
	}
	return values, nil
}

func (r Repository[T]) Delete(ctx context.Context, conds ...any) error {
	var zero T
	return r.db.WithContext(ctx).Delete(&zero, conds...).Error
}
