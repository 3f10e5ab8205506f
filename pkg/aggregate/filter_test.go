package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Allen4fis/crewtime/pkg/aggregate"
	"github.com/Allen4fis/crewtime/pkg/db"
)

func timeEntryIds(snap db.Snapshot, filter aggregate.Filter) []string {
	ids := []string{}
	for _, s := range aggregate.FilterTimeEntries(snap, filter) {
		ids = append(ids, s.EntryId)
	}
	return ids
}

func TestFilterTimeEntries_DateRange(t *testing.T) {
	snap := testSnapshot()
	filter := aggregate.Filter{From: "2024-01-16", To: "2024-01-17", IncludeInvoiced: true}

	require.Equal(t, []string{"te-3", "te-4"}, timeEntryIds(snap, filter))
}

func TestFilterTimeEntries_OpenEndedRange(t *testing.T) {
	snap := testSnapshot()

	require.Equal(t, []string{"te-3", "te-4"},
		timeEntryIds(snap, aggregate.Filter{From: "2024-01-16", IncludeInvoiced: true}))
	require.Equal(t, []string{"te-1", "te-2", "te-3"},
		timeEntryIds(snap, aggregate.Filter{To: "2024-01-16", IncludeInvoiced: true}))
}

func TestFilterTimeEntries_MalformedDateExcludedFromBoundedRange(t *testing.T) {
	snap := testSnapshot()
	snap.TimeEntries = append(snap.TimeEntries, db.TimeEntry{
		Id: "te-bad", EmployeeId: "emp-sub", JobId: "job-1", HourTypeId: "ht-reg", ProvinceId: "prov-ab",
		Date: "01/20/2024", Hours: 8,
	})

	// Unbounded filters keep the malformed entry, bounded ones drop it.
	require.Contains(t, timeEntryIds(snap, aggregate.Filter{IncludeInvoiced: true}), "te-bad")
	require.NotContains(t, timeEntryIds(snap, aggregate.Filter{From: "2024-01-01", IncludeInvoiced: true}), "te-bad")
}

func TestFilterTimeEntries_ExcludesInvoicedDates(t *testing.T) {
	snap := testSnapshot()

	// te-3 falls on 2024-01-16, which is in job-1's invoiced set.
	require.Equal(t, []string{"te-1", "te-2", "te-4"}, timeEntryIds(snap, aggregate.Filter{}))
	require.Equal(t, []string{"te-1", "te-2", "te-3", "te-4"}, timeEntryIds(snap, aggregate.Filter{IncludeInvoiced: true}))
}

func TestFilterTimeEntries_Dimensions(t *testing.T) {
	snap := testSnapshot()

	require.Equal(t, []string{"te-3"},
		timeEntryIds(snap, aggregate.Filter{EmployeeName: "Morgan Hale", IncludeInvoiced: true}))
	require.Equal(t, []string{"te-4"},
		timeEntryIds(snap, aggregate.Filter{JobNumber: "24-102", IncludeInvoiced: true}))
	require.Equal(t, []string{"te-1", "te-2", "te-3", "te-4"},
		timeEntryIds(snap, aggregate.Filter{Province: "Alberta", IncludeInvoiced: true}))
	require.Empty(t, timeEntryIds(snap, aggregate.Filter{Province: "Nova Scotia", IncludeInvoiced: true}))
}

func TestFilterTimeEntries_BillableOnly(t *testing.T) {
	snap := testSnapshot()

	require.Equal(t, []string{"te-1", "te-2", "te-3"},
		timeEntryIds(snap, aggregate.Filter{BillableOnly: true, IncludeInvoiced: true}))
}

func TestFilterRentals(t *testing.T) {
	snap := testSnapshot()

	got := aggregate.FilterRentals(snap, aggregate.Filter{IncludeInvoiced: true})
	require.Len(t, got, 1)
	require.Equal(t, "re-1", got[0].EntryId)

	// Rentals are attributed to their start date.
	require.Empty(t, aggregate.FilterRentals(snap, aggregate.Filter{From: "2024-01-16", IncludeInvoiced: true}))

	// The start date 2024-01-15 is not invoiced, so the default filter
	// keeps the rental.
	require.Len(t, aggregate.FilterRentals(snap, aggregate.Filter{}), 1)
}

func TestFilterRentals_EmptyResultIsNotNil(t *testing.T) {
	got := aggregate.FilterRentals(db.Snapshot{}, aggregate.Filter{})
	require.NotNil(t, got)
	require.Empty(t, got)
}
