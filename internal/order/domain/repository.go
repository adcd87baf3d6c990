package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	InsertDetail(ctx context.Context, db *gorm.DB, detail *OrderDetail) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Order, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Order, error)
	FindAllDetails(ctx context.Context, db *gorm.DB) ([]OrderDetail, error)
}
