package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgtype"
	"github.com/jmoiron/sqlx"
)

// Snapshot is a read-only copy of every collection the summary and
// aggregation layers consume. Summaries are always recomputed from a
// snapshot; no derived state is persisted.
type Snapshot struct {
	Employees     []Employee
	Jobs          []Job
	HourTypes     []HourType
	Provinces     []Province
	TimeEntries   []TimeEntry
	RentalItems   []RentalItem
	RentalEntries []RentalEntry
}

// LoadSnapshot reads all collections, including the per-job invoiced and
// paid date sets.
func LoadSnapshot(ctx context.Context, q sqlx.QueryerContext) (Snapshot, error) {
	var snap Snapshot

	err := sqlx.SelectContext(ctx, q, &snap.Employees,
		"SELECT * FROM employees ORDER BY created_at, id")
	if err != nil {
		return snap, fmt.Errorf("failed to load employees: %w", err)
	}

	err = sqlx.SelectContext(ctx, q, &snap.Jobs,
		"SELECT * FROM jobs ORDER BY created_at, id")
	if err != nil {
		return snap, fmt.Errorf("failed to load jobs: %w", err)
	}

	err = sqlx.SelectContext(ctx, q, &snap.HourTypes,
		"SELECT * FROM hour_types ORDER BY name")
	if err != nil {
		return snap, fmt.Errorf("failed to load hour types: %w", err)
	}

	err = sqlx.SelectContext(ctx, q, &snap.Provinces,
		"SELECT * FROM provinces ORDER BY code")
	if err != nil {
		return snap, fmt.Errorf("failed to load provinces: %w", err)
	}

	err = sqlx.SelectContext(ctx, q, &snap.TimeEntries,
		`SELECT id, employee_id, job_id, hour_type_id, province_id,
				to_char(date, 'YYYY-MM-DD') AS date, hours, loa_count, created_at
			FROM time_entries ORDER BY date, created_at, id`)
	if err != nil {
		return snap, fmt.Errorf("failed to load time entries: %w", err)
	}

	err = sqlx.SelectContext(ctx, q, &snap.RentalItems,
		"SELECT * FROM rental_items ORDER BY name")
	if err != nil {
		return snap, fmt.Errorf("failed to load rental items: %w", err)
	}

	err = sqlx.SelectContext(ctx, q, &snap.RentalEntries,
		`SELECT id, item_id, job_id, employee_id,
				to_char(start_date, 'YYYY-MM-DD') AS start_date,
				to_char(end_date, 'YYYY-MM-DD') AS end_date,
				quantity, unit, rate, dsp_rate, description, created_at
			FROM rental_entries ORDER BY start_date, created_at, id`)
	if err != nil {
		return snap, fmt.Errorf("failed to load rental entries: %w", err)
	}

	if err := loadJobDateSets(ctx, q, snap.Jobs, "job_invoiced_dates", func(j *Job, s DateSet) { j.InvoicedDates = s }); err != nil {
		return snap, err
	}
	if err := loadJobDateSets(ctx, q, snap.Jobs, "job_paid_dates", func(j *Job, s DateSet) { j.PaidDates = s }); err != nil {
		return snap, err
	}

	return snap, nil
}

type jobDateRow struct {
	JobId string `db:"job_id"`
	Dates pgtype.TextArray
}

func loadJobDateSets(ctx context.Context, q sqlx.QueryerContext, jobs []Job, table string, assign func(*Job, DateSet)) error {
	var rows []jobDateRow
	err := sqlx.SelectContext(ctx, q, &rows, fmt.Sprintf(
		`SELECT job_id, array_agg(to_char(date, 'YYYY-MM-DD')) AS dates
			FROM %s GROUP BY job_id`, table))
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", table, err)
	}

	byJob := make(map[string]DateSet, len(rows))
	for _, r := range rows {
		var dates []string
		if err := r.Dates.AssignTo(&dates); err != nil {
			return fmt.Errorf("failed to decode %s for job %s: %w", table, r.JobId, err)
		}
		byJob[r.JobId] = NewDateSet(dates...)
	}

	for i := range jobs {
		s, ok := byJob[jobs[i].Id]
		if !ok {
			s = NewDateSet()
		}
		assign(&jobs[i], s)
	}
	return nil
}
