package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	// Create validates every field before anything is staged, resolves the
	// category names (creating missing ones), then persists the product and
	// its category links as one unit of work.
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id int64) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	// Delete removes the product and cascades its category links in the same
	// unit of work. Categories referenced by the links survive.
	Delete(ctx context.Context, id int64) error

	CreateLink(ctx context.Context, req CreateLinkRequest) (*LinkResponse, error)
	ListLinks(ctx context.Context) ([]LinkResponse, error)
	DeleteLink(ctx context.Context, id int64) error
}

type CreateRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ItemQuantity  int64           `json:"item_quantity"`
	ImageURL      string          `json:"image_url"`
	ImageAlt      string          `json:"image_alt"`
	CategoryNames []string        `json:"categories,omitempty"`
}

type UpdateRequest struct {
	ID           int64            `json:"-"`
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	ItemQuantity *int64           `json:"item_quantity"`
	ImageURL     *string          `json:"image_url"`
	ImageAlt     *string          `json:"image_alt"`
}

type CreateLinkRequest struct {
	ProductID  int64 `json:"product_id"`
	CategoryID int64 `json:"category_id"`
}

type Response struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	PriceCents   int64           `json:"price_cents"`
	ItemQuantity int64           `json:"item_quantity"`
	ImageURL     string          `json:"image_url"`
	ImageAlt     string          `json:"image_alt"`
	Categories   []string        `json:"categories"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type LinkResponse struct {
	ID         int64 `json:"id"`
	ProductID  int64 `json:"product_id"`
	CategoryID int64 `json:"category_id"`
}
