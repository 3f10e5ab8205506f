package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Allen4fis/crewtime/pkg/aggregate"
	"github.com/Allen4fis/crewtime/pkg/db"
)

type summaryCommand struct {
	DatabaseURL string
	Filter      aggregate.Filter
	Rentals     bool
}

var summaryCommandName = "summary"

func newSummaryCommand() *cli.Command {
	command := &summaryCommand{}
	return &cli.Command{
		Name:   summaryCommandName,
		Usage:  "Print time entry summaries for the given period",
		Before: command.before,
		Action: command.execute,
		Flags: append([]cli.Flag{
			newDbURLFlag(&command.DatabaseURL),
			&cli.BoolFlag{Name: "rentals", Usage: "Print rental summaries instead of time entry summaries.",
				EnvVars: envVars("RENTALS"), Destination: &command.Rentals},
		}, newFilterFlags(&command.Filter)...),
	}
}

func (cmd *summaryCommand) before(context *cli.Context) error {
	return LogMetadata(context)
}

func (cmd *summaryCommand) execute(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	log := AppLogger(ctx).WithName(summaryCommandName)

	log.V(1).Info("Opening database connection", "url", cmd.DatabaseURL)
	rdb, err := db.Openx(cmd.DatabaseURL)
	if err != nil {
		return fmt.Errorf("could not open database connection: %w", err)
	}
	defer rdb.Close()

	log.V(1).Info("Begin transaction")
	tx, err := rdb.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	snap, err := db.LoadSnapshot(ctx, tx)
	if err != nil {
		return err
	}

	var out interface{}
	if cmd.Rentals {
		out = aggregate.FilterRentals(snap, cmd.Filter)
	} else {
		out = aggregate.FilterTimeEntries(snap, cmd.Filter)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(out); err != nil {
		return err
	}

	return tx.Commit()
}
