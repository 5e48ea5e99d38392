package client

import (
	"github.com/lancerkit/lancer/internal/client/repository"
	"github.com/lancerkit/lancer/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
