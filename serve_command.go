package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/urfave/cli/v2"

	"github.com/Allen4fis/crewtime/pkg/api"
	"github.com/Allen4fis/crewtime/pkg/autosave"
	"github.com/Allen4fis/crewtime/pkg/db"
)

type serveCommand struct {
	DatabaseURL      string
	ListenAddr       string
	BackupPath       string
	AutosaveInterval time.Duration
}

var serveCommandName = "serve"

func newServeCommand() *cli.Command {
	command := &serveCommand{}
	return &cli.Command{
		Name:   serveCommandName,
		Usage:  "Serve summaries and aggregations over HTTP",
		Before: command.before,
		Action: command.execute,
		Flags: []cli.Flag{
			newDbURLFlag(&command.DatabaseURL),
			&cli.StringFlag{Name: "listen", Usage: "Address to listen on.",
				EnvVars: envVars("LISTEN"), Destination: &command.ListenAddr, Value: ":8080"},
			&cli.StringFlag{Name: "backup-path", Usage: "Write a JSON backup of the raw collections to this path when their content changes.",
				EnvVars: envVars("BACKUP_PATH"), Destination: &command.BackupPath},
			&cli.DurationFlag{Name: "autosave-interval", Usage: "Interval between backup checks.",
				EnvVars: envVars("AUTOSAVE_INTERVAL"), Destination: &command.AutosaveInterval, Value: autosave.DefaultInterval},
		},
	}
}

func (cmd *serveCommand) before(context *cli.Context) error {
	return LogMetadata(context)
}

func (cmd *serveCommand) execute(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	log := AppLogger(ctx).WithName(serveCommandName)

	log.V(1).Info("Opening database connection", "url", cmd.DatabaseURL)
	rdb, err := db.Openx(cmd.DatabaseURL)
	if err != nil {
		return fmt.Errorf("could not open database connection: %w", err)
	}
	defer rdb.Close()

	if cmd.BackupPath != "" {
		saver := &autosave.Saver{
			Path:     cmd.BackupPath,
			Interval: cmd.AutosaveInterval,
			Load: func(ctx context.Context) (db.Snapshot, error) {
				return db.LoadSnapshot(ctx, rdb)
			},
		}
		go saver.Run(logr.NewContext(ctx, log))
	}

	server := &http.Server{
		Addr:    cmd.ListenAddr,
		Handler: api.NewServer(rdb, log).Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error(err, "error shutting down server")
		}
	}()

	log.Info("Listening", "addr", cmd.ListenAddr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
