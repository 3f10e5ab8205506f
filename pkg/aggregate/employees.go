package aggregate

import (
	"github.com/Allen4fis/crewtime/pkg/db"
	"github.com/Allen4fis/crewtime/pkg/summary"
)

// GSTRate is the goods-and-services tax rate applied to contractor cost.
const GSTRate = 0.05

// RateAudit is one time entry's contribution to a province breakdown,
// carrying the hourly rate actually charged.
type RateAudit struct {
	Date           string
	Hours          float64
	EffectiveHours float64
	// HourlyRate is reconstructed as (totalCost - loaCost) / effectiveHours
	// rather than stored; zero when there are no effective hours.
	HourlyRate float64
}

// ProvinceBreakdown groups an employee's entries of one hour type by
// province.
type ProvinceBreakdown struct {
	Province string

	Hours          float64
	EffectiveHours float64
	TotalCost      float64
	TotalBillable  float64

	Entries []RateAudit
}

// HourTypeBreakdown groups an employee's entries by hour type.
type HourTypeBreakdown struct {
	HourType string

	Hours          float64
	EffectiveHours float64

	Provinces []ProvinceBreakdown
}

// DspEarning is the DSP amount owed to an employee for one rental item.
type DspEarning struct {
	ItemName string
	Earnings float64
}

// EmployeeRollup aggregates one employee's filtered activity.
type EmployeeRollup struct {
	Name     string
	Title    string
	Category string

	// Hours and EffectiveHours exclude LOA entries; the dollar totals below
	// include them.
	Hours          float64
	EffectiveHours float64

	TotalCost     float64
	TotalBillable float64

	LoaCount int
	LoaCost  float64

	// GstAmount is GSTRate of TotalCost for GST-liable employees, zero
	// otherwise.
	GstAmount float64

	DspEarnings      []DspEarning
	DspEarningsTotal float64

	HourTypes []HourTypeBreakdown
}

// Employees rolls up the filtered time and rental summaries by employee
// name. Employees appear in encounter order; employees with only rental
// activity appear after those with time entries.
func Employees(snap db.Snapshot, filter Filter) []EmployeeRollup {
	times := FilterTimeEntries(snap, filter)
	rentals := FilterRentals(snap, filter)
	employees := employeesByName(snap)

	var order []string
	rollups := map[string]*EmployeeRollup{}

	get := func(name string) *EmployeeRollup {
		r, ok := rollups[name]
		if !ok {
			r = &EmployeeRollup{Name: name}
			if emp := employees[name]; emp != nil {
				r.Title = emp.Title.String
				r.Category = emp.Category.String
			}
			rollups[name] = r
			order = append(order, name)
		}
		return r
	}

	for _, s := range times {
		r := get(s.EmployeeName)
		r.Hours += s.WorkedHours()
		r.EffectiveHours += s.WorkedEffectiveHours()
		r.TotalCost += s.TotalCost
		r.TotalBillable += s.TotalBillable
		r.LoaCount += s.LoaCount
		r.LoaCost += s.LoaCost
		addBreakdown(r, s)
	}

	for _, s := range rentals {
		if s.DspEarnings == 0 {
			continue
		}
		r := get(s.EmployeeName)
		addDspEarning(r, s.ItemName, s.DspEarnings)
	}

	result := make([]EmployeeRollup, 0, len(order))
	for _, name := range order {
		r := rollups[name]
		if gstApplies(employees[name]) {
			r.GstAmount = r.TotalCost * GSTRate
		}
		result = append(result, *r)
	}
	return result
}

// gstApplies reports whether the employee owes GST on their cost total:
// explicit dsp category, or a subordinate without an explicit employee
// category (implicit contractor).
func gstApplies(emp *db.Employee) bool {
	if emp == nil {
		return false
	}
	if emp.Category.String == "dsp" {
		return true
	}
	return emp.ManagerId.Valid && emp.Category.String != "employee"
}

func addBreakdown(r *EmployeeRollup, s summary.TimeEntry) {
	var ht *HourTypeBreakdown
	for i := range r.HourTypes {
		if r.HourTypes[i].HourType == s.HourType {
			ht = &r.HourTypes[i]
			break
		}
	}
	if ht == nil {
		r.HourTypes = append(r.HourTypes, HourTypeBreakdown{HourType: s.HourType})
		ht = &r.HourTypes[len(r.HourTypes)-1]
	}
	ht.Hours += s.WorkedHours()
	ht.EffectiveHours += s.WorkedEffectiveHours()

	var prov *ProvinceBreakdown
	for i := range ht.Provinces {
		if ht.Provinces[i].Province == s.Province {
			prov = &ht.Provinces[i]
			break
		}
	}
	if prov == nil {
		ht.Provinces = append(ht.Provinces, ProvinceBreakdown{Province: s.Province})
		prov = &ht.Provinces[len(ht.Provinces)-1]
	}
	prov.Hours += s.WorkedHours()
	prov.EffectiveHours += s.WorkedEffectiveHours()
	prov.TotalCost += s.TotalCost
	prov.TotalBillable += s.TotalBillable

	rate := 0.0
	if s.EffectiveHours != 0 {
		rate = (s.TotalCost - s.LoaCost) / s.EffectiveHours
	}
	prov.Entries = append(prov.Entries, RateAudit{
		Date:           s.Date,
		Hours:          s.Hours,
		EffectiveHours: s.EffectiveHours,
		HourlyRate:     rate,
	})
}

func addDspEarning(r *EmployeeRollup, itemName string, earnings float64) {
	r.DspEarningsTotal += earnings
	for i := range r.DspEarnings {
		if r.DspEarnings[i].ItemName == itemName {
			r.DspEarnings[i].Earnings += earnings
			return
		}
	}
	r.DspEarnings = append(r.DspEarnings, DspEarning{ItemName: itemName, Earnings: earnings})
}

// employeesByName indexes employee records by display name. On duplicate
// names the first record wins.
func employeesByName(snap db.Snapshot) map[string]*db.Employee {
	byName := make(map[string]*db.Employee, len(snap.Employees))
	for i := range snap.Employees {
		if _, ok := byName[snap.Employees[i].Name]; !ok {
			byName[snap.Employees[i].Name] = &snap.Employees[i]
		}
	}
	return byName
}
