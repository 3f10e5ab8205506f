package aggregate

import "sort"

// TopEmployees returns the first n employee rollups ranked by effective
// hours descending. Ties keep their encounter order.
func TopEmployees(rollups []EmployeeRollup, n int) []EmployeeRollup {
	ranked := append([]EmployeeRollup(nil), rollups...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EffectiveHours > ranked[j].EffectiveHours
	})
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// TopJobs returns the first n job statistics ranked by effective hours
// descending. Ties keep their encounter order.
func TopJobs(stats []JobStats, n int) []JobStats {
	ranked := append([]JobStats(nil), stats...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalEffectiveHours > ranked[j].TotalEffectiveHours
	})
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
