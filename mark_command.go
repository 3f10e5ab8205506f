package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v2"

	"github.com/Allen4fis/crewtime/pkg/db"
)

type markCommand struct {
	DatabaseURL string
	JobNumber   string
	Dates       cli.StringSlice
	Paid        bool
	Remove      bool
}

var markCommandName = "mark"

func newMarkCommand() *cli.Command {
	command := &markCommand{}
	return &cli.Command{
		Name:   markCommandName,
		Usage:  "Mark job activity dates as invoiced or paid",
		Before: command.before,
		Action: command.execute,
		Flags: []cli.Flag{
			newDbURLFlag(&command.DatabaseURL),
			&cli.StringFlag{Name: "job-number", Usage: "Number of the job to mark.",
				EnvVars: envVars("JOB_NUMBER"), Destination: &command.JobNumber, Required: true, DefaultText: defaultTextForRequiredFlags},
			&cli.StringSliceFlag{Name: "date", Usage: "Date (YYYY-MM-DD) to mark. May be repeated.",
				EnvVars: envVars("DATE"), Destination: &command.Dates, Required: true, DefaultText: defaultTextForRequiredFlags},
			&cli.BoolFlag{Name: "paid", Usage: "Mark the dates as paid instead of invoiced.",
				EnvVars: envVars("PAID"), Destination: &command.Paid},
			&cli.BoolFlag{Name: "remove", Usage: "Unmark the dates instead of marking them.",
				EnvVars: envVars("REMOVE"), Destination: &command.Remove},
		},
	}
}

func (cmd *markCommand) before(context *cli.Context) error {
	return LogMetadata(context)
}

func (cmd *markCommand) execute(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	log := AppLogger(ctx).WithName(markCommandName)

	log.V(1).Info("Opening database connection", "url", cmd.DatabaseURL)
	rdb, err := db.Openx(cmd.DatabaseURL)
	if err != nil {
		return fmt.Errorf("could not open database connection: %w", err)
	}
	defer rdb.Close()

	dates := cmd.Dates.Value()

	return db.RunInTransaction(ctx, rdb, func(tx *sqlx.Tx) error {
		var jobId string
		if err := tx.GetContext(ctx, &jobId, "SELECT id FROM jobs WHERE number = $1", cmd.JobNumber); err != nil {
			return fmt.Errorf("failed to find job with number %q: %w", cmd.JobNumber, err)
		}

		mutate := pickMutation(cmd.Paid, cmd.Remove)
		if err := mutate(ctx, tx, jobId, dates); err != nil {
			return err
		}

		log.Info("Marked dates", "job", cmd.JobNumber, "dates", dates, "paid", cmd.Paid, "remove", cmd.Remove)
		return nil
	})
}

func pickMutation(paid, remove bool) func(context.Context, sqlx.ExtContext, string, []string) error {
	switch {
	case paid && remove:
		return db.RemovePaidDates
	case paid:
		return db.AddPaidDates
	case remove:
		return db.RemoveInvoicedDates
	}
	return db.AddInvoicedDates
}
