// Package summary derives per-entry financial summaries from raw collection
// snapshots. Summaries are never persisted; they are recomputed from the
// current raw state on every read.
package summary

import "github.com/Allen4fis/crewtime/pkg/db"

// Display placeholders for unresolvable references. A malformed record
// degrades to a placeholder instead of aborting the batch.
const (
	UnknownEmployee = "Unknown Employee"
	UnknownJob      = "Unknown Job"
	UnknownProvince = "Unknown Province"
	UnknownItem     = "Unknown Item"

	// Unassigned marks rental entries without an owning employee.
	Unassigned = "Unassigned"
)

// index provides id lookups over a snapshot's collections.
type index struct {
	employees map[string]*db.Employee
	jobs      map[string]*db.Job
	hourTypes map[string]*db.HourType
	provinces map[string]*db.Province
	items     map[string]*db.RentalItem
}

func newIndex(snap db.Snapshot) index {
	idx := index{
		employees: make(map[string]*db.Employee, len(snap.Employees)),
		jobs:      make(map[string]*db.Job, len(snap.Jobs)),
		hourTypes: make(map[string]*db.HourType, len(snap.HourTypes)),
		provinces: make(map[string]*db.Province, len(snap.Provinces)),
		items:     make(map[string]*db.RentalItem, len(snap.RentalItems)),
	}
	for i := range snap.Employees {
		idx.employees[snap.Employees[i].Id] = &snap.Employees[i]
	}
	for i := range snap.Jobs {
		idx.jobs[snap.Jobs[i].Id] = &snap.Jobs[i]
	}
	for i := range snap.HourTypes {
		idx.hourTypes[snap.HourTypes[i].Id] = &snap.HourTypes[i]
	}
	for i := range snap.Provinces {
		idx.provinces[snap.Provinces[i].Id] = &snap.Provinces[i]
	}
	for i := range snap.RentalItems {
		idx.items[snap.RentalItems[i].Id] = &snap.RentalItems[i]
	}
	return idx
}
