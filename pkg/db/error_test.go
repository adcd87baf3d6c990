package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/montluxe/storefront/internal/apperr"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyErr(errors.New(`duplicate key value violates unique constraint "ux_categories_name"`)))
	assert.True(t, IsDuplicateKeyErr(errors.New("Error 1062 (23000): Duplicate entry")))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: users.email")))
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.False(t, IsDuplicateKeyErr(errors.New("connection refused")))
}

func TestIsForeignKeyErr(t *testing.T) {
	assert.True(t, IsForeignKeyErr(gorm.ErrForeignKeyViolated))
	assert.True(t, IsForeignKeyErr(errors.New(`insert or update on table "order_details" violates foreign key constraint`)))
	assert.True(t, IsForeignKeyErr(errors.New("Error 1452 (23000): Cannot add or update a child row")))
	assert.True(t, IsForeignKeyErr(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, IsForeignKeyErr(nil))
	assert.False(t, IsForeignKeyErr(errors.New("deadlock detected")))
}

func TestClassify(t *testing.T) {
	var dErr *apperr.DuplicateError
	assert.ErrorAs(t, Classify(errors.New("UNIQUE constraint failed: categories.name"), "category name"), &dErr)
	assert.Equal(t, "category name", dErr.Constraint)

	var cErr *apperr.ConflictError
	assert.ErrorAs(t, Classify(errors.New("FOREIGN KEY constraint failed"), "create order"), &cErr)

	// taxonomy errors pass through untouched
	orig := apperr.NotFound("product")
	assert.Equal(t, error(orig), Classify(orig, "create order"))

	plain := errors.New("disk I/O error")
	assert.Equal(t, plain, Classify(plain, "create order"))
	assert.Nil(t, Classify(nil, "create order"))
}
