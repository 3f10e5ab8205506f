package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/Allen4fis/crewtime/pkg/db"
)

type migrateCommand struct {
	ShowPending bool
	Seed        bool
	DatabaseURL string
}

var migrateCommandName = "migrate"

func newMigrateCommand() *cli.Command {
	command := &migrateCommand{}
	return &cli.Command{
		Name:   migrateCommandName,
		Usage:  "Perform database migrations",
		Before: command.before,
		Action: command.execute,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "show-pending", Usage: "Shows pending migrations and exits", EnvVars: envVars("SHOW_PENDING"), Value: false, Destination: &command.ShowPending},
			&cli.BoolFlag{Name: "seed", Usage: "Creates default hour types and provinces after migrating", EnvVars: envVars("SEED"), Value: false, Destination: &command.Seed},
			newDbURLFlag(&command.DatabaseURL),
		},
	}
}

func (cmd *migrateCommand) before(ctx *cli.Context) error {
	return LogMetadata(ctx)
}

func (cmd *migrateCommand) execute(context *cli.Context) error {
	log := AppLogger(context.Context).WithName(migrateCommandName)
	log.V(1).Info("Opening database connection", "url", cmd.DatabaseURL)
	rdb, err := db.Open(cmd.DatabaseURL)
	if err != nil {
		return fmt.Errorf("could not open database connection: %w", err)
	}
	defer rdb.Close()

	if cmd.ShowPending {
		log.V(1).Info("Showing pending DB migrations")
		pm, err := db.Pending(rdb)
		if err != nil {
			return fmt.Errorf("error showing pending migrations: %w", err)
		}

		for _, p := range pm {
			fmt.Println(p.Name)
		}
		return nil
	}

	log.V(1).Info("Start DB migrations")
	if err := db.Migrate(rdb); err != nil {
		return fmt.Errorf("could not migrate database: %w", err)
	}

	if cmd.Seed {
		log.V(1).Info("Seeding default hour types and provinces")
		if err := db.Seed(rdb); err != nil {
			return fmt.Errorf("could not seed database: %w", err)
		}
	}

	return nil
}
