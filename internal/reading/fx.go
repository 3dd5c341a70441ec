package reading

import (
	"github.com/acueductoapp/acueducto/internal/reading/repository"
	"github.com/acueductoapp/acueducto/internal/reading/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reading.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
