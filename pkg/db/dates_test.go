package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Allen4fis/crewtime/pkg/db"
	"github.com/Allen4fis/crewtime/pkg/db/dbtest"
)

type DatesTestSuite struct {
	dbtest.Suite
}

func (s *DatesTestSuite) TestBillingDates_AddIsIdempotent() {
	t := s.T()
	ctx := context.Background()
	tx := s.Begin()
	defer tx.Rollback()

	jobId := createJob(t, tx, "24-400")

	dates := []string{"2024-02-01", "2024-02-15"}
	require.NoError(t, db.AddInvoicedDates(ctx, tx, jobId, dates))
	require.NoError(t, db.AddInvoicedDates(ctx, tx, jobId, dates))

	snap, err := db.LoadSnapshot(ctx, tx)
	require.NoError(t, err)
	require.Equal(t, dates, jobByNumber(t, snap, "24-400").InvoicedDates.Dates())
}

func (s *DatesTestSuite) TestBillingDates_RemoveRoundTrip() {
	t := s.T()
	ctx := context.Background()
	tx := s.Begin()
	defer tx.Rollback()

	jobId := createJob(t, tx, "24-401")

	require.NoError(t, db.AddPaidDates(ctx, tx, jobId, []string{"2024-03-01", "2024-03-08"}))
	require.NoError(t, db.RemovePaidDates(ctx, tx, jobId, []string{"2024-03-01", "2024-03-31"}))

	snap, err := db.LoadSnapshot(ctx, tx)
	require.NoError(t, err)
	job := jobByNumber(t, snap, "24-401")
	require.Equal(t, []string{"2024-03-08"}, job.PaidDates.Dates())
	require.Empty(t, job.InvoicedDates.Dates(), "invoiced dates are tracked separately from paid dates")
}

func (s *DatesTestSuite) TestBillingDates_RemoveAllLeavesEmptySet() {
	t := s.T()
	ctx := context.Background()
	tx := s.Begin()
	defer tx.Rollback()

	jobId := createJob(t, tx, "24-402")

	require.NoError(t, db.AddInvoicedDates(ctx, tx, jobId, []string{"2024-04-01"}))
	require.NoError(t, db.RemoveInvoicedDates(ctx, tx, jobId, []string{"2024-04-01"}))

	snap, err := db.LoadSnapshot(ctx, tx)
	require.NoError(t, err)
	require.Empty(t, jobByNumber(t, snap, "24-402").InvoicedDates.Dates())
}

func jobByNumber(t *testing.T, snap db.Snapshot, number string) db.Job {
	t.Helper()
	for _, job := range snap.Jobs {
		if job.Number == number {
			return job
		}
	}
	t.Fatalf("job %q not found in snapshot", number)
	return db.Job{}
}

func TestDates(t *testing.T) {
	suite.Run(t, new(DatesTestSuite))
}
