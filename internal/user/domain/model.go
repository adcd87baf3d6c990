package domain

import (
	"time"

	"github.com/montluxe/storefront/internal/apperr"
	"github.com/montluxe/storefront/internal/auth/password"
)

// User is a customer account. The password is write-only: SetPassword hashes
// immediately and only the hash is ever stored; reading the password back is
// a caller bug, answered with a taxonomy error rather than a panic.
type User struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	Username        string    `json:"username" gorm:"type:text;not null;uniqueIndex:ux_users_username"`
	Email           string    `json:"email" gorm:"type:text;not null;uniqueIndex:ux_users_email"`
	FirstName       string    `json:"first_name" gorm:"type:text"`
	LastName        string    `json:"last_name" gorm:"type:text;not null"`
	PasswordHash    string    `json:"-" gorm:"column:password_hash;not null"`
	ShippingAddress string    `json:"shipping_address" gorm:"type:text;not null"`
	ShippingCity    string    `json:"shipping_city" gorm:"type:text;not null"`
	ShippingState   string    `json:"shipping_state" gorm:"type:text;not null"`
	ShippingZip     string    `json:"shipping_zip" gorm:"type:text;not null"`
	CreatedAt       time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"not null"`
}

func (User) TableName() string { return "users" }

// SetPassword hashes plaintext and stores only the hash. The plaintext never
// leaves this frame.
func (u *User) SetPassword(plaintext string) error {
	hashed, err := password.Hash(plaintext)
	if err != nil {
		return err
	}
	u.PasswordHash = hashed
	return nil
}

// Password always fails: the field is write-only at the API level.
func (u *User) Password() (string, error) {
	return "", apperr.Validation("password", apperr.ReasonWriteOnly)
}

// Authenticate reports whether plaintext matches the stored hash.
func (u *User) Authenticate(plaintext string) bool {
	return password.Verify(plaintext, u.PasswordHash)
}
