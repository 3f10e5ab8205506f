package summary

import (
	"github.com/Allen4fis/crewtime/pkg/db"
	"github.com/Allen4fis/crewtime/pkg/rate"
)

// TimeEntry is the derived financial summary of one raw time entry, with
// names denormalized for display.
type TimeEntry struct {
	EntryId string

	EmployeeId   string
	EmployeeName string

	JobId     string
	JobNumber string
	JobName   string

	HourType string
	Province string

	Date string

	Hours float64
	// EffectiveHours is hours multiplied by the hour-type pay multiplier.
	EffectiveHours float64

	HourlyCost     float64
	HourlyBillable float64

	LoaCount int
	LoaCost  float64

	// TotalCost is effective hours at the cost wage plus the LOA cost.
	TotalCost float64
	// TotalBillable is effective hours at the billable wage plus the LOA
	// cost, forced to zero for entries on non-billable jobs.
	TotalBillable float64

	// LOA entries contribute dollars but never hours to aggregates.
	LOA bool

	JobBillable bool
}

// WorkedHours returns the hours counting towards hours-worked aggregates.
// LOA entries report zero.
func (s TimeEntry) WorkedHours() float64 {
	if s.LOA {
		return 0
	}
	return s.Hours
}

// WorkedEffectiveHours returns the effective hours counting towards
// hours-worked aggregates. LOA entries report zero.
func (s TimeEntry) WorkedEffectiveHours() float64 {
	if s.LOA {
		return 0
	}
	return s.EffectiveHours
}

// ForTimeEntries summarizes every time entry in the snapshot. Unresolvable
// references degrade to placeholder names and zero rates.
func ForTimeEntries(snap db.Snapshot) []TimeEntry {
	idx := newIndex(snap)
	summaries := make([]TimeEntry, 0, len(snap.TimeEntries))
	for _, entry := range snap.TimeEntries {
		summaries = append(summaries, timeEntry(entry, idx))
	}
	return summaries
}

func timeEntry(entry db.TimeEntry, idx index) TimeEntry {
	s := TimeEntry{
		EntryId:      entry.Id,
		EmployeeId:   entry.EmployeeId,
		EmployeeName: UnknownEmployee,
		JobId:        entry.JobId,
		JobNumber:    "",
		JobName:      UnknownJob,
		HourType:     rate.UnknownTypeName,
		Province:     UnknownProvince,
		Date:         entry.Date,
		Hours:        entry.Hours,
		LoaCount:     entry.LoaCount,
		JobBillable:  true,
	}

	emp := idx.employees[entry.EmployeeId]
	if emp != nil {
		s.EmployeeName = emp.Name
	}

	multiplier := 1.0
	hourTypeName := ""
	if ht := idx.hourTypes[entry.HourTypeId]; ht != nil {
		multiplier = ht.Multiplier
		hourTypeName = ht.Name
		s.HourType = rate.Display(ht.Name)
		s.LOA = rate.IsLOA(ht.Name)
	}

	if prov := idx.provinces[entry.ProvinceId]; prov != nil {
		s.Province = prov.Name
	}

	job := idx.jobs[entry.JobId]
	if job != nil {
		s.JobNumber = job.Number
		s.JobName = job.Name
		s.JobBillable = job.IsBillable()
	}

	s.EffectiveHours = entry.Hours * multiplier
	s.HourlyCost = rate.Resolve(emp, rate.Cost, hourTypeName)
	s.HourlyBillable = rate.Resolve(emp, rate.Billable, hourTypeName)
	s.LoaCost = float64(entry.LoaCount) * rate.LOAUnitCost

	s.TotalCost = s.EffectiveHours*s.HourlyCost + s.LoaCost
	s.TotalBillable = s.EffectiveHours*s.HourlyBillable + s.LoaCost

	// Non-billable jobs zero the billable side here, before any
	// aggregation, so every consumer sees the same numbers. Cost tracking
	// proceeds regardless.
	if !s.JobBillable {
		s.TotalBillable = 0
	}

	return s
}
