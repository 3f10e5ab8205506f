package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AddInvoicedDates marks the given dates of the job as invoiced. Dates
// already marked are ignored; the whole operation is a single statement and
// therefore atomic per job.
func AddInvoicedDates(ctx context.Context, e sqlx.ExtContext, jobId string, dates []string) error {
	return addJobDates(ctx, e, "job_invoiced_dates", jobId, dates)
}

// RemoveInvoicedDates unmarks the given dates of the job. Dates not marked
// are ignored.
func RemoveInvoicedDates(ctx context.Context, e sqlx.ExtContext, jobId string, dates []string) error {
	return removeJobDates(ctx, e, "job_invoiced_dates", jobId, dates)
}

// AddPaidDates marks the given dates of the job as paid.
func AddPaidDates(ctx context.Context, e sqlx.ExtContext, jobId string, dates []string) error {
	return addJobDates(ctx, e, "job_paid_dates", jobId, dates)
}

// RemovePaidDates unmarks the given dates of the job as paid.
func RemovePaidDates(ctx context.Context, e sqlx.ExtContext, jobId string, dates []string) error {
	return removeJobDates(ctx, e, "job_paid_dates", jobId, dates)
}

func addJobDates(ctx context.Context, e sqlx.ExtContext, table, jobId string, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	_, err := e.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (job_id, date)
			SELECT $1, unnest($2::date[])
			ON CONFLICT DO NOTHING`, table),
		jobId, dates)
	if err != nil {
		return fmt.Errorf("failed to add dates to %s for job %s: %w", table, jobId, err)
	}
	return nil
}

func removeJobDates(ctx context.Context, e sqlx.ExtContext, table, jobId string, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	_, err := e.ExecContext(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE job_id = $1 AND date = ANY($2::date[])`, table),
		jobId, dates)
	if err != nil {
		return fmt.Errorf("failed to remove dates from %s for job %s: %w", table, jobId, err)
	}
	return nil
}
