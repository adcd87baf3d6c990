package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/montluxe/storefront/internal/order/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Omit("User", "Details").Create(order).Error
}

func (r *repo) InsertDetail(ctx context.Context, db *gorm.DB, detail *domain.OrderDetail) error {
	return db.WithContext(ctx).Omit("Product").Create(detail).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).Preload("Details").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Order, error) {
	var items []domain.Order
	err := db.WithContext(ctx).Preload("Details").Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindAllDetails(ctx context.Context, db *gorm.DB) ([]domain.OrderDetail, error) {
	var details []domain.OrderDetail
	err := db.WithContext(ctx).Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}
