package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	categorydomain "github.com/montluxe/storefront/internal/category/domain"
	categoryrepository "github.com/montluxe/storefront/internal/category/repository"
	categoryservice "github.com/montluxe/storefront/internal/category/service"
	orderdomain "github.com/montluxe/storefront/internal/order/domain"
	orderrepository "github.com/montluxe/storefront/internal/order/repository"
	orderservice "github.com/montluxe/storefront/internal/order/service"
	productdomain "github.com/montluxe/storefront/internal/product/domain"
	productrepository "github.com/montluxe/storefront/internal/product/repository"
	productservice "github.com/montluxe/storefront/internal/product/service"
	userdomain "github.com/montluxe/storefront/internal/user/domain"
	userrepository "github.com/montluxe/storefront/internal/user/repository"
	userservice "github.com/montluxe/storefront/internal/user/service"
	"github.com/montluxe/storefront/pkg/db"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.NewTest(t.Name())
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&categorydomain.Category{},
		&productdomain.Product{},
		&productdomain.ProductCategory{},
		&userdomain.User{},
		&orderdomain.Order{},
		&orderdomain.OrderDetail{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	categorySvc := categoryservice.New(categoryservice.Params{
		DB: conn, Log: log, GenID: node, Repo: categoryrepository.Provide(),
	})
	productSvc := productservice.New(productservice.Params{
		DB: conn, Log: log, GenID: node, Repo: productrepository.Provide(), Categories: categorySvc,
	})
	userSvc := userservice.New(userservice.Params{
		DB: conn, Log: log, GenID: node, Repo: userrepository.Provide(),
	})
	orderSvc := orderservice.New(orderservice.Params{
		DB: conn, Log: log, GenID: node, Repo: orderrepository.Provide(), Users: userSvc,
	})

	s := NewServer(Params{
		Log:         log,
		ProductSvc:  productSvc,
		CategorySvc: categorySvc,
		UserSvc:     userSvc,
		OrderSvc:    orderSvc,
	})

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(ErrorHandlingMiddleware())
	s.RegisterRoutes(engine)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestRootBanner(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mont Luxe")
}

func TestUnknownProductIsNotFound(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/products/424242", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Type)
}

func TestNonNumericPathIDIsBadRequest(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/products/chronograph", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Type)
}

func TestDuplicateCategoryIsConflict(t *testing.T) {
	engine := newTestEngine(t)
	body := categorydomain.CreateRequest{Name: "Limited Edition"}

	rec := doJSON(t, engine, http.MethodPost, "/categories", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/categories", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate", decodeError(t, rec).Type)
}

func TestCreateProductRoundTrip(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/products", map[string]any{
		"name":          "Celestial Chronograph",
		"description":   "A tribute to the night sky.",
		"price":         "1299.00",
		"item_quantity": 4,
		"image_url":     "img/celestial_chronograph.png",
		"image_alt":     "Celestial Chronograph watch",
		"categories":    []string{"Genesis"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data productdomain.Response `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Celestial Chronograph", created.Data.Name)
	assert.Contains(t, created.Data.Categories, "Genesis")

	rec = doJSON(t, engine, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Data []productdomain.Response `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed.Data, 1)
}

func TestCreateProductValidationFailure(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/products", map[string]any{
		"name":          "",
		"description":   "Missing its name.",
		"price":         "100.00",
		"item_quantity": 1,
		"image_url":     "img/nameless.png",
		"image_alt":     "nameless watch",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decodeError(t, rec)
	assert.Equal(t, "validation_error", payload.Type)
	assert.Equal(t, "name", payload.Field)
}

func TestLogin(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/users", userdomain.CreateRequest{
		Username:        "ada.winder",
		Email:           "ada@example.com",
		LastName:        "Winder",
		Password:        "mainspring",
		ShippingAddress: "9 Escapement Way",
		ShippingCity:    "Geneva",
		ShippingState:   "GE",
		ShippingZip:     "1201",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodPost, "/login", credentialsRequest{
		Username: "ada.winder", Password: "mainspring",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/login", credentialsRequest{
		Username: "ada.winder", Password: "balance-wheel",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", decodeError(t, rec).Type)
}
