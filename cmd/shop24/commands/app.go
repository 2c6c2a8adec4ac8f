// Package commands builds the shop24 command line.
package commands

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/shop24/shop24/internal/app"
)

// New returns the shop24 CLI application.
func New() *cli.App {
	return &cli.App{
		Name:  "shop24",
		Usage: "shop backend: catalogue, customers, orders and sales metrics",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			seedCommand(),
			jobsCommand(),
		},
	}
}

// loadRuntime loads configuration and the logger shared by every command.
func loadRuntime() (*app.Config, *slog.Logger, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg), nil
}
