package ai

import "go.uber.org/fx"

var Module = fx.Module("ai.service",
	fx.Provide(NewClient),
	fx.Provide(NewService),
)
