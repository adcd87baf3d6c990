package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/montluxe/storefront/internal/apperr"
	"github.com/montluxe/storefront/internal/order/domain"
	"github.com/montluxe/storefront/internal/order/repository"
	productdomain "github.com/montluxe/storefront/internal/product/domain"
	userdomain "github.com/montluxe/storefront/internal/user/domain"
	userrepository "github.com/montluxe/storefront/internal/user/repository"
	userservice "github.com/montluxe/storefront/internal/user/service"
	"github.com/montluxe/storefront/pkg/db"
)

type fixture struct {
	svc     domain.Service
	conn    *gorm.DB
	userID  int64
	watchID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest(t.Name())
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&userdomain.User{},
		&productdomain.Product{},
		&domain.Order{},
		&domain.OrderDetail{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	userSvc := userservice.New(userservice.Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  userrepository.Provide(),
	})
	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
		Users: userSvc,
	})

	user, err := userSvc.Create(context.Background(), userdomain.CreateRequest{
		Username:        "bob.horology",
		Email:           "bob@example.com",
		LastName:        "Meier",
		Password:        "watches",
		ShippingAddress: "3 Crown Street",
		ShippingCity:    "Bern",
		ShippingState:   "BE",
		ShippingZip:     "3000",
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	watch := productdomain.Product{
		ID:           node.Generate().Int64(),
		Name:         "Velocity Visionary",
		Description:  "Speed meets sophistication.",
		PriceCents:   699900,
		ItemQuantity: 6,
		ImageURL:     "img/velocity_visionary.png",
		ImageAlt:     "Velocity Visionary watch",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, conn.Omit("Links").Create(&watch).Error)

	return &fixture{svc: svc, conn: conn, userID: user.ID, watchID: watch.ID}
}

func (f *fixture) orderCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.conn.Model(&domain.Order{}).Count(&count).Error)
	return count
}

func (f *fixture) detailCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.conn.Model(&domain.OrderDetail{}).Count(&count).Error)
	return count
}

func TestCreateWithItems(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.CreateWithItems(context.Background(), domain.CreateRequest{
		UserID: f.userID,
		Items: []domain.LineItem{
			{ProductID: f.watchID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, f.watchID, resp.Details[0].ProductID)
	assert.EqualValues(t, 2, resp.Details[0].Quantity)
	assert.False(t, resp.CreatedAt.IsZero())

	got, err := f.svc.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Len(t, got.Details, 1)
}

func TestCreateWithUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateWithItems(context.Background(), domain.CreateRequest{
		UserID: 424242,
		Items:  []domain.LineItem{{ProductID: f.watchID, Quantity: 1}},
	})
	var nErr *apperr.NotFoundError
	require.ErrorAs(t, err, &nErr)
	assert.Equal(t, "user", nErr.Entity)
	assert.Zero(t, f.orderCount(t))
}

func TestCreateRejectsZeroQuantityBeforeStaging(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateWithItems(context.Background(), domain.CreateRequest{
		UserID: f.userID,
		Items: []domain.LineItem{
			{ProductID: f.watchID, Quantity: 1},
			{ProductID: f.watchID, Quantity: 0},
		},
	})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "quantity", vErr.Field)
	assert.Zero(t, f.orderCount(t))
	assert.Zero(t, f.detailCount(t))
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateWithItems(context.Background(), domain.CreateRequest{
		UserID: f.userID,
	})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, f.orderCount(t))
}

// A valid-looking line item whose product vanished between validation and
// commit must roll back the whole unit, order row included.
func TestCreateIsAtomicOnIntegrityViolation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateWithItems(context.Background(), domain.CreateRequest{
		UserID: f.userID,
		Items: []domain.LineItem{
			{ProductID: f.watchID, Quantity: 1},
			{ProductID: 999999, Quantity: 3}, // no such product
		},
	})
	var cErr *apperr.ConflictError
	require.ErrorAs(t, err, &cErr)

	assert.Zero(t, f.orderCount(t), "order must not survive a failed line item")
	assert.Zero(t, f.detailCount(t))
}

func TestListAndListDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateWithItems(ctx, domain.CreateRequest{
		UserID: f.userID,
		Items:  []domain.LineItem{{ProductID: f.watchID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = f.svc.CreateWithItems(ctx, domain.CreateRequest{
		UserID: f.userID,
		Items: []domain.LineItem{
			{ProductID: f.watchID, Quantity: 2},
			{ProductID: f.watchID, Quantity: 5},
		},
	})
	require.NoError(t, err)

	orders, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	details, err := f.svc.ListDetails(ctx)
	require.NoError(t, err)
	assert.Len(t, details, 3)
}

func TestGetNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), 31337)
	var nErr *apperr.NotFoundError
	require.ErrorAs(t, err, &nErr)
	assert.Equal(t, "order", nErr.Entity)
}
