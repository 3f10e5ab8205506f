package summary_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Allen4fis/crewtime/pkg/db"
	"github.com/Allen4fis/crewtime/pkg/summary"
)

func testSnapshot() db.Snapshot {
	return db.Snapshot{
		Employees: []db.Employee{
			{Id: "emp-1", Name: "Jordan Wells", BillableWage: 50, CostWage: 38},
		},
		Jobs: []db.Job{
			{Id: "job-1", Number: "24-101", Name: "Plant Shutdown"},
			{Id: "job-2", Number: "24-102", Name: "Internal Maintenance", Billable: sql.NullBool{Valid: true, Bool: false}},
		},
		HourTypes: []db.HourType{
			{Id: "ht-reg", Name: "Regular Time", Multiplier: 1},
			{Id: "ht-ot", Name: "Overtime", Multiplier: 1.5},
			{Id: "ht-loa", Name: "LOA", Multiplier: 1},
			{Id: "ht-nsreg", Name: "NS Regular Time", Multiplier: 1},
		},
		Provinces: []db.Province{
			{Id: "prov-ab", Name: "Alberta", Code: "AB"},
			{Id: "prov-ns", Name: "Nova Scotia", Code: "NS"},
		},
	}
}

func TestForTimeEntries_RegularEntry(t *testing.T) {
	snap := testSnapshot()
	snap.TimeEntries = []db.TimeEntry{
		{Id: "te-1", EmployeeId: "emp-1", JobId: "job-1", HourTypeId: "ht-ot", ProvinceId: "prov-ab", Date: "2024-01-15", Hours: 4},
	}

	got := summary.ForTimeEntries(snap)
	require.Len(t, got, 1)
	s := got[0]

	require.Equal(t, "Jordan Wells", s.EmployeeName)
	require.Equal(t, "24-101", s.JobNumber)
	require.Equal(t, "Overtime", s.HourType)
	require.Equal(t, "Alberta", s.Province)
	require.Equal(t, 4.0, s.Hours)
	require.Equal(t, 6.0, s.EffectiveHours)
	require.Equal(t, 38.0, s.HourlyCost)
	require.Equal(t, 50.0, s.HourlyBillable)
	require.Equal(t, 228.0, s.TotalCost)
	require.Equal(t, 300.0, s.TotalBillable)
	require.False(t, s.LOA)
	require.Equal(t, 4.0, s.WorkedHours())
	require.Equal(t, 6.0, s.WorkedEffectiveHours())
}

// A day with 8 regular hours at $50 plus 2 LOA units bills 8 hours and
// $800: the per-diems add dollars, never hours.
func TestForTimeEntries_LoaDollarsWithoutHours(t *testing.T) {
	snap := testSnapshot()
	snap.TimeEntries = []db.TimeEntry{
		{Id: "te-1", EmployeeId: "emp-1", JobId: "job-1", HourTypeId: "ht-reg", ProvinceId: "prov-ab", Date: "2024-01-15", Hours: 8},
		{Id: "te-2", EmployeeId: "emp-1", JobId: "job-1", HourTypeId: "ht-loa", ProvinceId: "prov-ab", Date: "2024-01-15", Hours: 2, LoaCount: 2},
	}

	got := summary.ForTimeEntries(snap)
	require.Len(t, got, 2)

	var workedHours, totalBillable float64
	for _, s := range got {
		workedHours += s.WorkedHours()
		totalBillable += s.TotalBillable
	}
	require.Equal(t, 8.0, workedHours)
	require.Equal(t, 800.0, totalBillable)

	loa := got[1]
	require.True(t, loa.LOA)
	require.Equal(t, 0.0, loa.WorkedHours())
	require.Equal(t, 0.0, loa.WorkedEffectiveHours())
	require.Equal(t, 2.0, loa.Hours, "raw hours stay on the record")
	require.Equal(t, 400.0, loa.LoaCost)
}

func TestForTimeEntries_NovaScotiaSurcharge(t *testing.T) {
	snap := testSnapshot()
	snap.TimeEntries = []db.TimeEntry{
		{Id: "te-1", EmployeeId: "emp-1", JobId: "job-1", HourTypeId: "ht-nsreg", ProvinceId: "prov-ns", Date: "2024-01-15", Hours: 10},
	}

	got := summary.ForTimeEntries(snap)
	require.Len(t, got, 1)
	require.Equal(t, 53.0, got[0].HourlyBillable)
	require.Equal(t, 41.0, got[0].HourlyCost)
	require.Equal(t, 530.0, got[0].TotalBillable)
}

func TestForTimeEntries_NonBillableJobZeroesBillable(t *testing.T) {
	snap := testSnapshot()
	snap.TimeEntries = []db.TimeEntry{
		{Id: "te-1", EmployeeId: "emp-1", JobId: "job-2", HourTypeId: "ht-reg", ProvinceId: "prov-ab", Date: "2024-01-15", Hours: 8, LoaCount: 1},
	}

	got := summary.ForTimeEntries(snap)
	require.Len(t, got, 1)
	require.Equal(t, 0.0, got[0].TotalBillable)
	require.Equal(t, 8*38.0+200, got[0].TotalCost, "cost tracking continues for non-billable jobs")
	require.False(t, got[0].JobBillable)
}

func TestForTimeEntries_DanglingReferences(t *testing.T) {
	snap := testSnapshot()
	snap.TimeEntries = []db.TimeEntry{
		{Id: "te-1", EmployeeId: "gone", JobId: "gone", HourTypeId: "gone", ProvinceId: "gone", Date: "2024-01-15", Hours: 8},
	}

	got := summary.ForTimeEntries(snap)
	require.Len(t, got, 1)
	s := got[0]
	require.Equal(t, summary.UnknownEmployee, s.EmployeeName)
	require.Equal(t, summary.UnknownJob, s.JobName)
	require.Equal(t, summary.UnknownProvince, s.Province)
	require.Equal(t, "Unknown Type", s.HourType)
	require.Equal(t, 0.0, s.TotalCost, "a dangling employee resolves to zero rates")
	require.Equal(t, 8.0, s.EffectiveHours, "an unknown hour type keeps multiplier 1")
}
