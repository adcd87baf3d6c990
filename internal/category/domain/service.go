package domain

import (
	"context"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	// GetOrCreate resolves a category by exact name, creating it when absent.
	// At most one row per name exists even under concurrent callers: a lost
	// insert race is resolved by re-querying, never surfaced as an error.
	GetOrCreate(ctx context.Context, name string) (*Response, error)
	Get(ctx context.Context, id int64) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	// Delete removes the category and its product links in one unit of work.
	// Products referencing it are left untouched.
	Delete(ctx context.Context, id int64) error
}

type CreateRequest struct {
	Name string `json:"name"`
}

type Response struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
