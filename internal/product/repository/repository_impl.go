package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	categorydomain "github.com/montluxe/storefront/internal/category/domain"
	"github.com/montluxe/storefront/internal/product/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Omit("Links").Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":          product.Name,
			"description":   product.Description,
			"price":         product.PriceCents,
			"item_quantity": product.ItemQuantity,
			"image_url":     product.ImageURL,
			"image_alt":     product.ImageAlt,
			"updated_at":    product.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}

func (r *repo) InsertLink(ctx context.Context, db *gorm.DB, link *domain.ProductCategory) error {
	return db.WithContext(ctx).Omit("Category").Create(link).Error
}

func (r *repo) FindLink(ctx context.Context, db *gorm.DB, id int64) (*domain.ProductCategory, error) {
	var link domain.ProductCategory
	err := db.WithContext(ctx).First(&link, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *repo) FindAllLinks(ctx context.Context, db *gorm.DB) ([]domain.ProductCategory, error) {
	var links []domain.ProductCategory
	err := db.WithContext(ctx).Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repo) DeleteLink(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.ProductCategory{}, "id = ?", id).Error
}

func (r *repo) DeleteLinksByProduct(ctx context.Context, db *gorm.DB, productID int64) error {
	return db.WithContext(ctx).Where("product_id = ?", productID).Delete(&domain.ProductCategory{}).Error
}

func (r *repo) CategoriesOf(ctx context.Context, db *gorm.DB, productID int64) ([]categorydomain.Category, error) {
	var categories []categorydomain.Category
	err := db.WithContext(ctx).
		Joins("JOIN product_categories ON product_categories.category_id = categories.id").
		Where("product_categories.product_id = ?", productID).
		Order("categories.name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
