package aggregate_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Allen4fis/crewtime/pkg/aggregate"
)

func TestHierarchy_NestsSubordinates(t *testing.T) {
	snap := testSnapshot()

	got := aggregate.Hierarchy(snap, aggregate.Filter{IncludeInvoiced: true})
	require.Len(t, got, 1)

	morgan := got[0]
	require.Equal(t, "Morgan Hale", morgan.Name)
	require.Equal(t, 270.0, morgan.TotalCost, "the manager keeps only their own numbers")

	require.Len(t, morgan.Subordinates, 1)
	require.Equal(t, "Riley Chen", morgan.Subordinates[0].Name)
	require.Equal(t, 720.0, morgan.Subordinates[0].TotalCost)

	// The subordinate GST stays apart from the manager's own.
	require.Equal(t, 36.0, morgan.SubordinateGstTotal)
	require.Equal(t, 0.0, morgan.GstAmount)
}

func TestHierarchy_ManagerWithoutOwnActivity(t *testing.T) {
	snap := testSnapshot()

	// Only the subordinate worked; the manager must still appear.
	got := aggregate.Hierarchy(snap, aggregate.Filter{EmployeeName: "Riley Chen", IncludeInvoiced: true})
	require.Len(t, got, 1)
	require.Equal(t, "Morgan Hale", got[0].Name)
	require.Equal(t, 0.0, got[0].Hours)
	require.Len(t, got[0].Subordinates, 1)
	require.Equal(t, "Riley Chen", got[0].Subordinates[0].Name)
}

func TestHierarchy_DanglingManagerStaysTopLevel(t *testing.T) {
	snap := testSnapshot()
	snap.Employees[1].ManagerId = sql.NullString{Valid: true, String: "gone"}

	got := aggregate.Hierarchy(snap, aggregate.Filter{IncludeInvoiced: true})
	require.Len(t, got, 2)
	require.Equal(t, "Riley Chen", got[0].Name)
	require.Empty(t, got[0].Subordinates)
	require.Equal(t, "Morgan Hale", got[1].Name)
}

func TestHierarchy_NothingDoubleCounted(t *testing.T) {
	snap := testSnapshot()

	rollups := aggregate.Employees(snap, aggregate.Filter{IncludeInvoiced: true})
	var flatCost float64
	for _, r := range rollups {
		flatCost += r.TotalCost
	}

	var nestedCost float64
	for _, m := range aggregate.Hierarchy(snap, aggregate.Filter{IncludeInvoiced: true}) {
		nestedCost += m.TotalCost
		for _, s := range m.Subordinates {
			nestedCost += s.TotalCost
		}
	}
	require.Equal(t, flatCost, nestedCost)
}
