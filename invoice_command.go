package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/urfave/cli/v2"

	"github.com/Allen4fis/crewtime/pkg/aggregate"
	"github.com/Allen4fis/crewtime/pkg/db"
	"github.com/Allen4fis/crewtime/pkg/export"
)

type invoiceCommand struct {
	DatabaseURL string
	Filter      aggregate.Filter
	Top         int
	PDFPath     string
}

var invoiceCommandName = "invoice"

func newInvoiceCommand() *cli.Command {
	command := &invoiceCommand{}
	return &cli.Command{
		Name:   invoiceCommandName,
		Usage:  "Compute per-job invoice statistics for the given period",
		Before: command.before,
		Action: command.execute,
		Flags: append([]cli.Flag{
			newDbURLFlag(&command.DatabaseURL),
			&cli.IntFlag{Name: "top", Usage: "Only print the top N jobs by effective hours.",
				EnvVars: envVars("TOP"), Destination: &command.Top, Value: -1},
			&cli.StringFlag{Name: "pdf", Usage: "Write an invoice statement PDF to this path instead of printing JSON.",
				EnvVars: envVars("PDF"), Destination: &command.PDFPath},
		}, newFilterFlags(&command.Filter)...),
	}
}

func (cmd *invoiceCommand) before(context *cli.Context) error {
	return LogMetadata(context)
}

func (cmd *invoiceCommand) execute(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	log := AppLogger(ctx).WithName(invoiceCommandName)

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
	if err := tx.Commit(); err != nil {
		return err
	}

	stats := aggregate.Jobs(snap, cmd.Filter)
	if cmd.Top >= 0 {
		stats = aggregate.TopJobs(stats, cmd.Top)
	}

	if cmd.PDFPath != "" {
		return cmd.writePDF(stats, log)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	return enc.Encode(stats)
}

func (cmd *invoiceCommand) writePDF(stats []aggregate.JobStats, log logr.Logger) error {
	f, err := os.Create(cmd.PDFPath)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", cmd.PDFPath, err)
	}
	defer f.Close()

	if err := export.WriteInvoiceStatement(f, stats, cmd.Filter.From, cmd.Filter.To); err != nil {
		return fmt.Errorf("failed to render invoice statement: %w", err)
	}
	log.Info("Wrote invoice statement", "path", cmd.PDFPath)
	return nil
}
