package aggregate

import "github.com/Allen4fis/crewtime/pkg/db"

// ManagerRollup nests subordinate rollups under their manager.
type ManagerRollup struct {
	EmployeeRollup

	Subordinates []EmployeeRollup

	// SubordinateGstTotal is the sum of the subordinates' GST, kept apart
	// from the manager's own GstAmount. Display layers decide which of the
	// two to show; they are never summed here.
	SubordinateGstTotal float64
}

// Hierarchy arranges the employee rollups into the two-level
// manager/subordinate structure. Employees without a manager reference (and
// employees whose record cannot be resolved) are top level. Each rollup
// appears exactly once, so nothing is double counted.
func Hierarchy(snap db.Snapshot, filter Filter) []ManagerRollup {
	rollups := Employees(snap, filter)
	employees := employeesByName(snap)
	employeesById := make(map[string]*db.Employee, len(snap.Employees))
	for i := range snap.Employees {
		employeesById[snap.Employees[i].Id] = &snap.Employees[i]
	}

	var order []string
	managers := map[string]*ManagerRollup{}

	top := func(name string, r EmployeeRollup) *ManagerRollup {
		m, ok := managers[name]
		if !ok {
			m = &ManagerRollup{EmployeeRollup: r}
			managers[name] = m
			order = append(order, name)
		}
		return m
	}

	// First pass creates the top-level rollups so a manager with no own
	// activity still appears when subordinates have some.
	var subordinates []EmployeeRollup
	for _, r := range rollups {
		emp := employees[r.Name]
		if emp == nil || !emp.ManagerId.Valid {
			top(r.Name, r)
			continue
		}
		subordinates = append(subordinates, r)
	}

	for _, r := range subordinates {
		emp := employees[r.Name]
		manager := employeesById[emp.ManagerId.String]
		if manager == nil {
			// Dangling manager reference; keep the rollup visible at the
			// top level.
			top(r.Name, r)
			continue
		}
		m := top(manager.Name, EmployeeRollup{Name: manager.Name, Title: manager.Title.String, Category: manager.Category.String})
		m.Subordinates = append(m.Subordinates, r)
		m.SubordinateGstTotal += r.GstAmount
	}

	result := make([]ManagerRollup, 0, len(order))
	for _, name := range order {
		result = append(result, *managers[name])
	}
	return result
}
