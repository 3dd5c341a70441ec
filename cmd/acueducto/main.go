package main

import (
	"github.com/acueductoapp/acueducto/internal/clock"
	"github.com/acueductoapp/acueducto/internal/config"
	"github.com/acueductoapp/acueducto/internal/migration"
	"github.com/acueductoapp/acueducto/internal/observability"
	"github.com/acueductoapp/acueducto/internal/server"
	"github.com/acueductoapp/acueducto/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
