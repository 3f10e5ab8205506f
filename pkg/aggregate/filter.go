package aggregate

import (
	"time"

	"github.com/Allen4fis/crewtime/pkg/db"
	"github.com/Allen4fis/crewtime/pkg/summary"
)

// Filter narrows which summaries an aggregation sees. Zero values leave the
// corresponding dimension unfiltered.
type Filter struct {
	// From and To are inclusive ISO date bounds (YYYY-MM-DD). The zero
	// padding makes lexicographic comparison valid; entries whose date does
	// not parse are excluded from any bounded range.
	From string
	To   string

	EmployeeName string
	JobNumber    string
	Province     string

	// BillableOnly drops summaries belonging to non-billable jobs.
	BillableOnly bool

	// IncludeInvoiced keeps summaries whose date is already in the job's
	// invoiced set. When false they are dropped.
	IncludeInvoiced bool
}

const dateLayout = "2006-01-02"

func validDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

func (f Filter) matchDate(date string) bool {
	if f.From == "" && f.To == "" {
		return true
	}
	if !validDate(date) {
		return false
	}
	if f.From != "" && date < f.From {
		return false
	}
	if f.To != "" && date > f.To {
		return false
	}
	return true
}

func (f Filter) matchTimeEntry(s summary.TimeEntry, jobs map[string]*db.Job) bool {
	if !f.matchDate(s.Date) {
		return false
	}
	if f.EmployeeName != "" && s.EmployeeName != f.EmployeeName {
		return false
	}
	if f.JobNumber != "" && s.JobNumber != f.JobNumber {
		return false
	}
	if f.Province != "" && s.Province != f.Province {
		return false
	}
	if f.BillableOnly && !s.JobBillable {
		return false
	}
	if !f.IncludeInvoiced {
		if job := jobs[s.JobId]; job != nil && job.InvoicedDates.Contains(s.Date) {
			return false
		}
	}
	return true
}

func (f Filter) matchRental(s summary.Rental, jobs map[string]*db.Job) bool {
	if !f.matchDate(s.StartDate) {
		return false
	}
	if f.EmployeeName != "" && s.EmployeeName != f.EmployeeName {
		return false
	}
	if f.JobNumber != "" && s.JobNumber != f.JobNumber {
		return false
	}
	if f.BillableOnly && !s.JobBillable {
		return false
	}
	if !f.IncludeInvoiced {
		if job := jobs[s.JobId]; job != nil && job.InvoicedDates.Contains(s.StartDate) {
			return false
		}
	}
	return true
}

func jobsById(snap db.Snapshot) map[string]*db.Job {
	jobs := make(map[string]*db.Job, len(snap.Jobs))
	for i := range snap.Jobs {
		jobs[snap.Jobs[i].Id] = &snap.Jobs[i]
	}
	return jobs
}

// FilterTimeEntries returns the time summaries of the snapshot matching the
// filter, in encounter order.
func FilterTimeEntries(snap db.Snapshot, filter Filter) []summary.TimeEntry {
	jobs := jobsById(snap)
	matched := make([]summary.TimeEntry, 0, len(snap.TimeEntries))
	for _, s := range summary.ForTimeEntries(snap) {
		if filter.matchTimeEntry(s, jobs) {
			matched = append(matched, s)
		}
	}
	return matched
}

// FilterRentals returns the rental summaries of the snapshot matching the
// filter, in encounter order. Rentals are attributed to their start date.
func FilterRentals(snap db.Snapshot, filter Filter) []summary.Rental {
	jobs := jobsById(snap)
	matched := make([]summary.Rental, 0, len(snap.RentalEntries))
	for _, s := range summary.ForRentalEntries(snap) {
		if filter.matchRental(s, jobs) {
			matched = append(matched, s)
		}
	}
	return matched
}
