package providers

import (
	"github.com/lancerkit/lancer/internal/providers/email"
	"github.com/lancerkit/lancer/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
)
