package domain

import (
	"time"

	productdomain "github.com/montluxe/storefront/internal/product/domain"
	userdomain "github.com/montluxe/storefront/internal/user/domain"
)

// Order and its OrderDetail rows are created together; neither is ever
// visible without the other.
type Order struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`

	User    *userdomain.User `json:"-" gorm:"foreignKey:UserID"`
	Details []OrderDetail    `json:"order_details" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// OrderDetail is one line item. Quantity is at least 1; a zero-quantity line
// is rejected before anything is staged.
type OrderDetail struct {
	ID        int64 `json:"id" gorm:"primaryKey"`
	OrderID   int64 `json:"order_id" gorm:"not null;index"`
	ProductID int64 `json:"product_id" gorm:"not null;index"`
	Quantity  int64 `json:"quantity" gorm:"not null"`

	Product *productdomain.Product `json:"-" gorm:"foreignKey:ProductID"`
}

func (OrderDetail) TableName() string { return "order_details" }
