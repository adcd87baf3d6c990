package domain

import (
	"context"
	"time"
)

type Service interface {
	// CreateWithItems creates the order and every line item as one atomic
	// unit: the caller sees either the full order or nothing. The user must
	// exist (NotFoundError), every line item must carry a positive product
	// id and quantity (ValidationError), and a referenced product vanishing
	// before commit rolls the whole unit back (ConflictError).
	CreateWithItems(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id int64) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	ListDetails(ctx context.Context) ([]DetailResponse, error)
}

type LineItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CreateRequest struct {
	UserID int64      `json:"user_id"`
	Items  []LineItem `json:"order_details"`
}

type Response struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	CreatedAt time.Time        `json:"created_at"`
	Details   []DetailResponse `json:"order_details"`
}

type DetailResponse struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}
