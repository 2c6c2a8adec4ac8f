package commands

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/shop24/shop24/internal/platform/db"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "manage the PostgreSQL schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					cfg, logger, err := loadRuntime()
					if err != nil {
						return err
					}
					if err := db.MigrateUp(cfg.PGDSN); err != nil {
						return err
					}
					logger.Info("migrations applied")
					return nil
				},
			},
			{
				Name:  "down",
				Usage: "roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
				},
				Action: func(c *cli.Context) error {
					steps := c.Int("steps")
					if steps <= 0 {
						return fmt.Errorf("steps must be positive, got %d", steps)
					}
					cfg, logger, err := loadRuntime()
					if err != nil {
						return err
					}
					if err := db.MigrateDown(cfg.PGDSN, steps); err != nil {
						return err
					}
					logger.Info("migrations rolled back", slog.Int("steps", steps))
					return nil
				},
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: func(c *cli.Context) error {
					cfg, _, err := loadRuntime()
					if err != nil {
						return err
					}
					version, dirty, err := db.MigrationVersion(cfg.PGDSN)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(c.App.Writer, "version=%d dirty=%t\n", version, dirty)
					return err
				},
			},
		},
	}
}
