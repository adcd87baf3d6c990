package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/montluxe/storefront/internal/apperr"
	"github.com/montluxe/storefront/internal/user/domain"
	"github.com/montluxe/storefront/internal/user/repository"
	"github.com/montluxe/storefront/pkg/db"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest(t.Name())
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, conn
}

func validCreateRequest() domain.CreateRequest {
	return domain.CreateRequest{
		Username:        "alice.watchfan",
		Email:           "alice@example.com",
		FirstName:       "Alice",
		LastName:        "Lutz",
		Password:        "correct-horse",
		ShippingAddress: "12 Uhrmacher Strasse",
		ShippingCity:    "Zurich",
		ShippingState:   "ZH",
		ShippingZip:     "8001",
	}
}

func TestCreateStoresOnlyHash(t *testing.T) {
	svc, conn := newTestService(t)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	var stored domain.User
	require.NoError(t, conn.First(&stored, "id = ?", resp.ID).Error)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.True(t, stored.Authenticate("correct-horse"))
}

func TestPasswordFieldIsWriteOnly(t *testing.T) {
	user := &domain.User{}
	require.NoError(t, user.SetPassword("secret"))

	_, err := user.Password()
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
	assert.Equal(t, apperr.ReasonWriteOnly, vErr.Reason)
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	dup := validCreateRequest()
	dup.Email = "other@example.com"
	_, err = svc.Create(ctx, dup)
	var dErr *apperr.DuplicateError
	require.ErrorAs(t, err, &dErr)

	var count int64
	require.NoError(t, conn.Model(&domain.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	dup := validCreateRequest()
	dup.Username = "someone.else"
	_, err = svc.Create(ctx, dup)
	var dErr *apperr.DuplicateError
	require.ErrorAs(t, err, &dErr)

	var count int64
	require.NoError(t, conn.Model(&domain.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateRejectsBadEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, email := range []string{"not-an-email", "missing@tld", "@nolocal.com", "two@@ats.com"} {
		req := validCreateRequest()
		req.Email = email

		_, err := svc.Create(ctx, req)
		var vErr *apperr.ValidationError
		require.ErrorAs(t, err, &vErr, "email %q", email)
		assert.Equal(t, "email", vErr.Field)
	}
}

func TestCreateRejectsMissingRequiredFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		field  string
		mutate func(*domain.CreateRequest)
	}{
		{"username", func(r *domain.CreateRequest) { r.Username = "" }},
		{"last_name", func(r *domain.CreateRequest) { r.LastName = " " }},
		{"password", func(r *domain.CreateRequest) { r.Password = "" }},
		{"shipping_address", func(r *domain.CreateRequest) { r.ShippingAddress = "" }},
		{"shipping_zip", func(r *domain.CreateRequest) { r.ShippingZip = " " }},
	}
	for _, tc := range cases {
		req := validCreateRequest()
		tc.mutate(&req)

		_, err := svc.Create(ctx, req)
		var vErr *apperr.ValidationError
		require.ErrorAs(t, err, &vErr, "field %s", tc.field)
		assert.Equal(t, tc.field, vErr.Field)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.Authenticate(ctx, "alice.watchfan", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)

	_, err = svc.Authenticate(ctx, "alice.watchfan", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "correct-horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, domain.ChangePasswordRequest{
		Username:    "alice.watchfan",
		Password:    "wrong",
		NewPassword: "new-passphrase",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, domain.ChangePasswordRequest{
		Username:    "alice.watchfan",
		Password:    "correct-horse",
		NewPassword: "new-passphrase",
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice.watchfan", "correct-horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "alice.watchfan", "new-passphrase")
	assert.NoError(t, err)
}

func TestDeleteIsCredentialGated(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	err = svc.Delete(ctx, "alice.watchfan", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.NoError(t, svc.Delete(ctx, "alice.watchfan", "correct-horse"))

	var count int64
	require.NoError(t, conn.Model(&domain.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
