package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository takes the handle explicitly so services can pass either the root
// connection or an open transaction.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, category *Category) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Category, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Category, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Category, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
