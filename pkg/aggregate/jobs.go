package aggregate

import (
	"sort"

	"github.com/Allen4fis/crewtime/pkg/db"
	"github.com/Allen4fis/crewtime/pkg/summary"
)

// JobDate is the activity of one job on one calendar date and its billing
// state.
type JobDate struct {
	Date string

	Invoiced bool
	Paid     bool

	Hours          float64
	EffectiveHours float64
	LoaCount       int

	LaborCost      float64
	LaborBillable  float64
	RentalBillable float64
}

// JobStats is the per-job invoice statistic: every date bearing time or
// rental activity, its billing state, and percent-complete figures.
type JobStats struct {
	JobId     string
	JobNumber string
	JobName   string
	Billable  bool

	Dates []JobDate

	TotalHours          float64
	TotalEffectiveHours float64
	TotalLoaCount       int
	TotalLaborCost      float64
	TotalLaborBillable  float64
	TotalRentalBillable float64

	// InvoicePercentage is the share of activity dates marked invoiced, in
	// percent. PaidPercentage likewise for paid. Zero when the job has no
	// activity dates.
	InvoicePercentage float64
	PaidPercentage    float64
}

// Jobs computes invoice statistics for every job with matching activity.
// Jobs are keyed by internal id; the job number is carried for display only.
// Rentals are attributed to their start date.
func Jobs(snap db.Snapshot, filter Filter) []JobStats {
	// The invoiced-date toggle must not hide dates from the invoice
	// statistics themselves; it only applies to summary listings.
	listFilter := filter
	listFilter.IncludeInvoiced = true

	times := FilterTimeEntries(snap, listFilter)
	rentals := FilterRentals(snap, listFilter)
	jobs := jobsById(snap)

	var order []string
	stats := map[string]*JobStats{}
	dates := map[string]map[string]*JobDate{}

	get := func(jobId string, s *summary.TimeEntry, r *summary.Rental) *JobStats {
		st, ok := stats[jobId]
		if !ok {
			st = &JobStats{JobId: jobId, Billable: true}
			if job := jobs[jobId]; job != nil {
				st.JobNumber = job.Number
				st.JobName = job.Name
				st.Billable = job.IsBillable()
			} else if s != nil {
				st.JobName = s.JobName
			} else if r != nil {
				st.JobName = r.JobName
			}
			stats[jobId] = st
			dates[jobId] = map[string]*JobDate{}
			order = append(order, jobId)
		}
		return st
	}

	date := func(jobId, day string) *JobDate {
		d, ok := dates[jobId][day]
		if !ok {
			d = &JobDate{Date: day}
			if job := jobs[jobId]; job != nil {
				d.Invoiced = job.InvoicedDates.Contains(day)
				d.Paid = job.PaidDates.Contains(day)
			}
			dates[jobId][day] = d
		}
		return d
	}

	for i := range times {
		s := times[i]
		st := get(s.JobId, &s, nil)
		d := date(s.JobId, s.Date)

		d.Hours += s.WorkedHours()
		d.EffectiveHours += s.WorkedEffectiveHours()
		d.LoaCount += s.LoaCount
		d.LaborCost += s.TotalCost
		d.LaborBillable += s.TotalBillable

		st.TotalHours += s.WorkedHours()
		st.TotalEffectiveHours += s.WorkedEffectiveHours()
		st.TotalLoaCount += s.LoaCount
		st.TotalLaborCost += s.TotalCost
		st.TotalLaborBillable += s.TotalBillable
	}

	for i := range rentals {
		r := rentals[i]
		st := get(r.JobId, nil, &r)
		d := date(r.JobId, r.StartDate)

		d.RentalBillable += r.TotalBillable
		st.TotalRentalBillable += r.TotalBillable
	}

	result := make([]JobStats, 0, len(order))
	for _, jobId := range order {
		st := stats[jobId]

		days := make([]JobDate, 0, len(dates[jobId]))
		for _, d := range dates[jobId] {
			days = append(days, *d)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
		st.Dates = days

		invoiced, paid := 0, 0
		for _, d := range days {
			if d.Invoiced {
				invoiced++
			}
			if d.Paid {
				paid++
			}
		}
		if len(days) > 0 {
			st.InvoicePercentage = float64(invoiced) / float64(len(days)) * 100
			st.PaidPercentage = float64(paid) / float64(len(days)) * 100
		}

		result = append(result, *st)
	}
	return result
}
