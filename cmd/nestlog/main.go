package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/nestlog/nestlog/internal/clock"
	"github.com/nestlog/nestlog/internal/config"
	"github.com/nestlog/nestlog/internal/migration"
	"github.com/nestlog/nestlog/internal/observability"
	"github.com/nestlog/nestlog/internal/server"
	"github.com/nestlog/nestlog/internal/summary"
	"github.com/nestlog/nestlog/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface and background jobs
		server.Module,
		summary.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
