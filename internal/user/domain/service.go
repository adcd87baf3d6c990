package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords so
// callers cannot probe which half failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id int64) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	// Authenticate verifies the credential pair and returns the account on
	// success, ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, username, plaintext string) (*Response, error)
	// ChangePassword swaps the stored hash after verifying the current
	// password.
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	// Delete is credential-gated: the account is removed only when the
	// caller proves ownership.
	Delete(ctx context.Context, username, plaintext string) error
}

type CreateRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	ShippingAddress string `json:"shipping_address"`
	ShippingCity    string `json:"shipping_city"`
	ShippingState   string `json:"shipping_state"`
	ShippingZip     string `json:"shipping_zip"`
}

type ChangePasswordRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

type Response struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ShippingAddress string    `json:"shipping_address"`
	ShippingCity    string    `json:"shipping_city"`
	ShippingState   string    `json:"shipping_state"`
	ShippingZip     string    `json:"shipping_zip"`
	CreatedAt       time.Time `json:"created_at"`
}
