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

type payrollCommand struct {
	DatabaseURL string
	Filter      aggregate.Filter
	Flat        bool
	Top         int
	PDFPath     string
}

var payrollCommandName = "payroll"

func newPayrollCommand() *cli.Command {
	command := &payrollCommand{}
	return &cli.Command{
		Name:   payrollCommandName,
		Usage:  "Roll up employee hours, cost, and GST for the given period",
		Before: command.before,
		Action: command.execute,
		Flags: append([]cli.Flag{
			newDbURLFlag(&command.DatabaseURL),
			&cli.BoolFlag{Name: "flat", Usage: "Skip the manager/subordinate nesting.",
				EnvVars: envVars("FLAT"), Destination: &command.Flat},
			&cli.IntFlag{Name: "top", Usage: "Only print the top N employees by effective hours. Implies --flat.",
				EnvVars: envVars("TOP"), Destination: &command.Top, Value: -1},
			&cli.StringFlag{Name: "pdf", Usage: "Write a payroll register PDF to this path instead of printing JSON.",
				EnvVars: envVars("PDF"), Destination: &command.PDFPath},
		}, newFilterFlags(&command.Filter)...),
	}
}

func (cmd *payrollCommand) before(context *cli.Context) error {
	return LogMetadata(context)
}

func (cmd *payrollCommand) execute(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	log := AppLogger(ctx).WithName(payrollCommandName)

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

	if cmd.PDFPath != "" {
		return cmd.writePDF(snap, log)
	}

	var out interface{}
	switch {
	case cmd.Top >= 0:
		out = aggregate.TopEmployees(aggregate.Employees(snap, cmd.Filter), cmd.Top)
	case cmd.Flat:
		out = aggregate.Employees(snap, cmd.Filter)
	default:
		out = aggregate.Hierarchy(snap, cmd.Filter)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	return enc.Encode(out)
}

func (cmd *payrollCommand) writePDF(snap db.Snapshot, log logr.Logger) error {
	rollups := aggregate.Employees(snap, cmd.Filter)

	f, err := os.Create(cmd.PDFPath)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", cmd.PDFPath, err)
	}
	defer f.Close()

	if err := export.WritePayrollRegister(f, rollups, cmd.Filter.From, cmd.Filter.To); err != nil {
		return fmt.Errorf("failed to render payroll register: %w", err)
	}
	log.Info("Wrote payroll register", "path", cmd.PDFPath)
	return nil
}
