package domain

import (
	"time"

	categorydomain "github.com/montluxe/storefront/internal/category/domain"
)

// Product is a catalog item. Price is stored as an integer minor-unit value;
// conversion from and to decimal dollars happens at the service boundary.
type Product struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:text;not null"`
	Description  string    `json:"description" gorm:"type:text;not null"`
	PriceCents   int64     `json:"price" gorm:"column:price;not null"`
	ItemQuantity int64     `json:"item_quantity" gorm:"not null;default:0"`
	ImageURL     string    `json:"image_url" gorm:"type:text"`
	ImageAlt     string    `json:"image_alt" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null"`

	// Links is the owning side of the product<->category relation. Category
	// membership is always derived from these rows, never stored on Product.
	Links []ProductCategory `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }

// ProductCategory is one edge of the many-to-many relation. Both endpoints
// must reference live rows; the foreign keys are the enforcement boundary.
type ProductCategory struct {
	ID         int64 `json:"id" gorm:"primaryKey"`
	ProductID  int64 `json:"product_id" gorm:"not null;index"`
	CategoryID int64 `json:"category_id" gorm:"not null;index"`

	Category *categorydomain.Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (ProductCategory) TableName() string { return "product_categories" }
