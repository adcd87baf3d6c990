package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/montluxe/storefront/internal/category"
	"github.com/montluxe/storefront/internal/config"
	"github.com/montluxe/storefront/internal/logger"
	"github.com/montluxe/storefront/internal/migration"
	"github.com/montluxe/storefront/internal/observability/metrics"
	"github.com/montluxe/storefront/internal/order"
	"github.com/montluxe/storefront/internal/product"
	"github.com/montluxe/storefront/internal/server"
	"github.com/montluxe/storefront/internal/user"
	"github.com/montluxe/storefront/pkg/db"
)

func newSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		metrics.Module,
		fx.Provide(newSnowflake),
		db.Module,
		migration.Module,

		// Domain modules
		category.Module,
		product.Module,
		user.Module,
		order.Module,

		// Caller surface
		server.Module,
	)

	app.Run()
}
