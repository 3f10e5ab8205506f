package summary

import (
	"math"
	"time"

	"github.com/Allen4fis/crewtime/pkg/db"
)

// Rental is the derived financial summary of one raw rental entry.
type Rental struct {
	EntryId string

	ItemName string

	JobId     string
	JobNumber string
	JobName   string

	// EmployeeName is Unassigned for rentals without an owner.
	EmployeeName string

	StartDate string
	EndDate   string

	Unit     string
	Quantity float64
	Rate     float64

	// Duration is the billable span in the entry's billing unit.
	Duration float64

	// TotalBillable is what the client is charged, at the rate captured when
	// the entry was created. Forced to zero for non-billable jobs.
	TotalBillable float64

	// DspEarnings is what is owed to the subcontractor providing the item,
	// tracked apart from TotalBillable so the margin stays derivable.
	DspEarnings float64

	Description string

	JobBillable bool
}

// ForRentalEntries summarizes every rental entry in the snapshot.
func ForRentalEntries(snap db.Snapshot) []Rental {
	idx := newIndex(snap)
	summaries := make([]Rental, 0, len(snap.RentalEntries))
	for _, entry := range snap.RentalEntries {
		summaries = append(summaries, rental(entry, idx))
	}
	return summaries
}

func rental(entry db.RentalEntry, idx index) Rental {
	s := Rental{
		EntryId:      entry.Id,
		ItemName:     UnknownItem,
		JobId:        entry.JobId,
		JobName:      UnknownJob,
		EmployeeName: Unassigned,
		StartDate:    entry.StartDate,
		EndDate:      entry.EndDate,
		Unit:         entry.Unit,
		Quantity:     entry.Quantity,
		Rate:         entry.Rate,
		Description:  entry.Description.String,
		JobBillable:  true,
	}

	if item := idx.items[entry.ItemId]; item != nil {
		s.ItemName = item.Name
	}

	if entry.EmployeeId.Valid {
		if emp := idx.employees[entry.EmployeeId.String]; emp != nil {
			s.EmployeeName = emp.Name
		} else {
			s.EmployeeName = UnknownEmployee
		}
	}

	job := idx.jobs[entry.JobId]
	if job != nil {
		s.JobNumber = job.Number
		s.JobName = job.Name
		s.JobBillable = job.IsBillable()
	}

	s.Duration = Duration(entry.StartDate, entry.EndDate, entry.Unit)
	s.TotalBillable = entry.Rate * s.Duration * entry.Quantity
	if entry.DspRate.Valid {
		s.DspEarnings = entry.DspRate.Float64 * s.Duration * entry.Quantity
	}

	if !s.JobBillable {
		s.TotalBillable = 0
	}

	return s
}

const dateLayout = "2006-01-02"

// Duration computes the billable duration between two ISO dates in the given
// billing unit. Day-unit rentals include both endpoints, so a single-day
// rental spans one billable day. Malformed dates and spans where the end
// precedes the start yield zero.
func Duration(startDate, endDate, unit string) float64 {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}

	hours := end.Sub(start).Hours()
	days := hours / 24

	switch unit {
	case "hour":
		return math.Ceil(hours)
	case "day":
		return math.Ceil(days) + 1
	case "week":
		return math.Ceil(days / 7)
	case "month":
		return math.Ceil(days / 30)
	}
	return 0
}
