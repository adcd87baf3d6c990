package order

import (
	"go.uber.org/fx"

	"github.com/montluxe/storefront/internal/order/repository"
	"github.com/montluxe/storefront/internal/order/service"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
