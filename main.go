package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

var (
	// These variables are populated by goreleaser when building.
	version = "unknown"
	commit  = "-dirty-"
	date    = time.Now().Format("2006-01-02")

	appName     = "crewtime"
	appLongName = "time tracking and job billing reports"

	envPrefix = "CT"
)

func main() {
	// A .env file is optional; flags read their values from the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := newApp()
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    appName,
		Usage:   appLongName,
		Version: fmt.Sprintf("%s, commit %s, date %s", version, commit, date),

		EnableBashCompletion: true,

		Flags: []cli.Flag{
			&cli.IntFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Log verbosity. Higher is noisier.",
				EnvVars: envVars("VERBOSITY")},
		},
		Before: func(c *cli.Context) error {
			log, err := newLogger(appName, c.Int("verbose"))
			if err != nil {
				return err
			}
			c.Context = logr.NewContext(c.Context, log)
			return nil
		},
		Commands: []*cli.Command{
			newMigrateCommand(),
			newSummaryCommand(),
			newPayrollCommand(),
			newInvoiceCommand(),
			newMarkCommand(),
			newCheckMissingCommand(),
			newServeCommand(),
		},
	}
}
