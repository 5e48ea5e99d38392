package proposal

import (
	"github.com/lancerkit/lancer/internal/proposal/repository"
	"github.com/lancerkit/lancer/internal/proposal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("proposal.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
