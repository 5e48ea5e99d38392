package audit

import (
	"github.com/lancerkit/lancer/internal/audit/repository"
	"github.com/lancerkit/lancer/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
