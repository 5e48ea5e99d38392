package lead

import (
	"github.com/lancerkit/lancer/internal/lead/repository"
	"github.com/lancerkit/lancer/internal/lead/service"
	"go.uber.org/fx"
)

var Module = fx.Module("lead.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
