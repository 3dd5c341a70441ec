package billing

import (
	"github.com/acueductoapp/acueducto/internal/billing/repository"
	"github.com/acueductoapp/acueducto/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
