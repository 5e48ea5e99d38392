package project

import (
	"github.com/lancerkit/lancer/internal/project/repository"
	"github.com/lancerkit/lancer/internal/project/service"
	"go.uber.org/fx"
)

var Module = fx.Module("project.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
