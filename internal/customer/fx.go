package customer

import (
	"github.com/acueductoapp/acueducto/internal/customer/repository"
	"github.com/acueductoapp/acueducto/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
