package product

import (
	"go.uber.org/fx"

	"github.com/montluxe/storefront/internal/product/repository"
	"github.com/montluxe/storefront/internal/product/service"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
