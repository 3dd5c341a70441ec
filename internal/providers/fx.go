package providers

import (
	"github.com/acueductoapp/acueducto/internal/providers/email"
	"github.com/acueductoapp/acueducto/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
)
