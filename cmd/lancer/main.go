package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/lancerkit/lancer/internal/clock"
	"github.com/lancerkit/lancer/internal/config"
	"github.com/lancerkit/lancer/internal/migration"
	"github.com/lancerkit/lancer/internal/observability"
	"github.com/lancerkit/lancer/internal/server"
	"github.com/lancerkit/lancer/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
