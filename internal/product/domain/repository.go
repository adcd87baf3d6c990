package domain

import (
	"context"

	"gorm.io/gorm"

	categorydomain "github.com/montluxe/storefront/internal/category/domain"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Product, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error

	InsertLink(ctx context.Context, db *gorm.DB, link *ProductCategory) error
	FindLink(ctx context.Context, db *gorm.DB, id int64) (*ProductCategory, error)
	FindAllLinks(ctx context.Context, db *gorm.DB) ([]ProductCategory, error)
	DeleteLink(ctx context.Context, db *gorm.DB, id int64) error
	DeleteLinksByProduct(ctx context.Context, db *gorm.DB, productID int64) error

	// CategoriesOf is the read-only projection behind Product.Categories:
	// the category rows reachable through product_categories edges.
	CategoriesOf(ctx context.Context, db *gorm.DB, productID int64) ([]categorydomain.Category, error)
}
