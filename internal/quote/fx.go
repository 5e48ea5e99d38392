package quote

import (
	"github.com/lancerkit/lancer/internal/quote/repository"
	"github.com/lancerkit/lancer/internal/quote/service"
	"go.uber.org/fx"
)

var Module = fx.Module("quote.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
