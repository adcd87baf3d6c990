package category

import (
	"go.uber.org/fx"

	"github.com/montluxe/storefront/internal/category/repository"
	"github.com/montluxe/storefront/internal/category/service"
)

var Module = fx.Module("category.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
