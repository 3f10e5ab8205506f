package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Allen4fis/crewtime/pkg/aggregate"
	"github.com/Allen4fis/crewtime/pkg/db"
)

func TestJobs_Stats(t *testing.T) {
	snap := testSnapshot()

	got := aggregate.Jobs(snap, aggregate.Filter{})
	require.Len(t, got, 2)

	shutdown := got[0]
	require.Equal(t, "job-1", shutdown.JobId)
	require.Equal(t, "24-101", shutdown.JobNumber)
	require.Equal(t, 12.0, shutdown.TotalHours)
	require.Equal(t, 14.0, shutdown.TotalEffectiveHours)
	require.Equal(t, 1, shutdown.TotalLoaCount)
	require.Equal(t, 790.0, shutdown.TotalLaborCost)
	require.Equal(t, 960.0, shutdown.TotalLaborBillable)
	require.Equal(t, 200.0, shutdown.TotalRentalBillable)

	require.Len(t, shutdown.Dates, 2)
	require.Equal(t, "2024-01-15", shutdown.Dates[0].Date)
	require.False(t, shutdown.Dates[0].Invoiced)
	require.Equal(t, 200.0, shutdown.Dates[0].RentalBillable)
	require.Equal(t, "2024-01-16", shutdown.Dates[1].Date)
	require.True(t, shutdown.Dates[1].Invoiced)
	require.False(t, shutdown.Dates[1].Paid)

	// One of two activity dates is invoiced, none paid.
	require.Equal(t, 50.0, shutdown.InvoicePercentage)
	require.Equal(t, 0.0, shutdown.PaidPercentage)

	maintenance := got[1]
	require.Equal(t, "24-102", maintenance.JobNumber)
	require.False(t, maintenance.Billable)
	require.Equal(t, 0.0, maintenance.TotalLaborBillable)
	require.Equal(t, 200.0, maintenance.TotalLaborCost)
	require.Equal(t, 0.0, maintenance.InvoicePercentage)
}

func TestJobs_InvoicedDatesAlwaysListed(t *testing.T) {
	snap := testSnapshot()

	// The default filter hides invoiced summaries from listings, but the
	// invoice statistics must keep seeing every activity date.
	got := aggregate.Jobs(snap, aggregate.Filter{IncludeInvoiced: false})
	require.Len(t, got, 2)
	require.Len(t, got[0].Dates, 2)
	require.Equal(t, 50.0, got[0].InvoicePercentage)
}

func TestJobs_FullyPaidJob(t *testing.T) {
	snap := testSnapshot()
	snap.Jobs[0].InvoicedDates = db.NewDateSet("2024-01-15", "2024-01-16")
	snap.Jobs[0].PaidDates = db.NewDateSet("2024-01-15", "2024-01-16")

	got := aggregate.Jobs(snap, aggregate.Filter{JobNumber: "24-101"})
	require.Len(t, got, 1)
	require.Equal(t, 100.0, got[0].InvoicePercentage)
	require.Equal(t, 100.0, got[0].PaidPercentage)
}

func TestJobs_DanglingJobReference(t *testing.T) {
	snap := testSnapshot()
	snap.Jobs = nil
	snap.RentalEntries = nil

	got := aggregate.Jobs(snap, aggregate.Filter{})
	require.Len(t, got, 2)
	require.Equal(t, "Unknown Job", got[0].JobName)
	require.Empty(t, got[0].JobNumber)
	require.True(t, got[0].Billable, "unresolvable jobs default to billable")
}
