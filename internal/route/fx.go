package route

import (
	"github.com/acueductoapp/acueducto/internal/route/repository"
	"github.com/acueductoapp/acueducto/internal/route/service"
	"go.uber.org/fx"
)

var Module = fx.Module("route.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
