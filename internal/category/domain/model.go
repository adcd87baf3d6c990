package domain

import "time"

// Category is shared reference data: many products may point at one category
// through product_categories join rows. Name is globally unique; the index is
// the enforcement boundary for concurrent get-or-create callers.
type Category struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:text;not null;uniqueIndex:ux_categories_name"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

func (Category) TableName() string { return "categories" }
