// Package server is the thin caller surface over the persistence core. It
// parses requests into typed arguments, invokes the services, and maps the
// classified errors onto HTTP statuses. No invariant is enforced here.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	categorydomain "github.com/montluxe/storefront/internal/category/domain"
	"github.com/montluxe/storefront/internal/config"
	"github.com/montluxe/storefront/internal/observability/metrics"
	orderdomain "github.com/montluxe/storefront/internal/order/domain"
	productdomain "github.com/montluxe/storefront/internal/product/domain"
	userdomain "github.com/montluxe/storefront/internal/user/domain"
)

type Server struct {
	log         *zap.Logger
	productSvc  productdomain.Service
	categorySvc categorydomain.Service
	userSvc     userdomain.Service
	orderSvc    orderdomain.Service
}

type Params struct {
	fx.In

	Log         *zap.Logger
	ProductSvc  productdomain.Service
	CategorySvc categorydomain.Service
	UserSvc     userdomain.Service
	OrderSvc    orderdomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		log:         p.Log.Named("server"),
		productSvc:  p.ProductSvc,
		categorySvc: p.CategorySvc,
		userSvc:     p.UserSvc,
		orderSvc:    p.OrderSvc,
	}
}

func NewEngine(cfg config.Config, log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestIDMiddleware())
	engine.Use(AccessLogMiddleware(log))
	engine.Use(MetricsMiddleware(m))
	engine.Use(ErrorHandlingMiddleware())

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))
	return engine
}

// RegisterRoutes mounts the catalog API.
func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Mont Luxe Watch Company Ecommerce Platform")
	})

	engine.GET("/products", s.ListProducts)
	engine.POST("/products", s.CreateProduct)
	engine.GET("/products/:id", s.GetProductByID)
	engine.PATCH("/products/:id", s.UpdateProduct)
	engine.DELETE("/products/:id", s.DeleteProduct)

	engine.GET("/categories", s.ListCategories)
	engine.POST("/categories", s.CreateCategory)
	engine.DELETE("/categories/:id", s.DeleteCategory)

	engine.GET("/product_categories", s.ListProductCategories)
	engine.POST("/product_categories", s.CreateProductCategory)
	engine.DELETE("/product_categories/:id", s.DeleteProductCategory)

	engine.GET("/users", s.ListUsers)
	engine.POST("/users", s.CreateUser)
	engine.PATCH("/users", s.UpdateUserPassword)
	engine.DELETE("/users", s.DeleteUser)
	engine.POST("/login", s.Login)

	engine.GET("/orders", s.ListOrders)
	engine.POST("/orders", s.CreateOrder)
	engine.GET("/orders/:id", s.GetOrderByID)
	engine.GET("/order_details", s.ListOrderDetails)
}

// RunHTTP starts the listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, s *Server, log *zap.Logger) {
	s.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

// Module wires the HTTP surface.
var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)
