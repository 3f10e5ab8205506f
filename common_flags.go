package main

import (
	"github.com/urfave/cli/v2"

	"github.com/Allen4fis/crewtime/pkg/aggregate"
)

const defaultTextForRequiredFlags = "<required>"

func envVars(suffix string) []string {
	return []string{envPrefix + "_" + suffix}
}

func newDbURLFlag(destination *string) *cli.StringFlag {
	return &cli.StringFlag{Name: "db-url", Usage: "Database connection URL in the form of postgres://user@host:port/db-name?option=value",
		EnvVars: envVars("DB_URL"), Destination: destination, Required: true, DefaultText: defaultTextForRequiredFlags}
}

// newFilterFlags returns the flags shared by all aggregation commands,
// bound to the given filter.
func newFilterFlags(filter *aggregate.Filter) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "from", Usage: "Inclusive start date (YYYY-MM-DD) of the period.",
			EnvVars: envVars("FROM"), Destination: &filter.From},
		&cli.StringFlag{Name: "to", Usage: "Inclusive end date (YYYY-MM-DD) of the period.",
			EnvVars: envVars("TO"), Destination: &filter.To},
		&cli.StringFlag{Name: "employee", Usage: "Only include entries of the employee with this name.",
			EnvVars: envVars("EMPLOYEE"), Destination: &filter.EmployeeName},
		&cli.StringFlag{Name: "job-number", Usage: "Only include entries of the job with this number.",
			EnvVars: envVars("JOB_NUMBER"), Destination: &filter.JobNumber},
		&cli.StringFlag{Name: "province", Usage: "Only include time entries of this province.",
			EnvVars: envVars("PROVINCE"), Destination: &filter.Province},
		&cli.BoolFlag{Name: "billable-only", Usage: "Only include entries of billable jobs.",
			EnvVars: envVars("BILLABLE_ONLY"), Destination: &filter.BillableOnly},
		&cli.BoolFlag{Name: "include-invoiced", Usage: "Also include entries on dates already invoiced.",
			EnvVars: envVars("INCLUDE_INVOICED"), Destination: &filter.IncludeInvoiced, Value: true},
	}
}
