package user

import (
	"go.uber.org/fx"

	"github.com/montluxe/storefront/internal/user/repository"
	"github.com/montluxe/storefront/internal/user/service"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
