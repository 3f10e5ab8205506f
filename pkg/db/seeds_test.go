package db_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Allen4fis/crewtime/pkg/db"
	"github.com/Allen4fis/crewtime/pkg/db/dbtest"
)

type SeedsTestSuite struct {
	dbtest.Suite
}

func (s *SeedsTestSuite) TestSeeds_Idempotent() {
	t := s.T()
	d := s.DB()

	_, err := d.Exec(`DELETE FROM time_entries`)
	require.NoError(t, err)
	_, err = d.Exec(`DELETE FROM hour_types`)
	require.NoError(t, err)
	_, err = d.Exec(`DELETE FROM provinces`)
	require.NoError(t, err)

	// Seeding twice must not create duplicates.
	require.NoError(t, db.Seed(d.DB))
	require.NoError(t, db.Seed(d.DB))

	s.requireQueryEqual(len(db.DefaultHourTypes), `SELECT count(*) FROM hour_types`)
	s.requireQueryEqual(len(db.DefaultProvinces), `SELECT count(*) FROM provinces`)
	s.requireQueryEqual(1, `SELECT count(*) FROM hour_types WHERE name = 'LOA' AND multiplier = 1`)
	s.requireQueryEqual(1, `SELECT count(*) FROM provinces WHERE code = 'NS'`)
}

func (s *SeedsTestSuite) TestSeeds_KeepsExistingRows() {
	t := s.T()
	d := s.DB()

	_, err := d.Exec(`DELETE FROM time_entries`)
	require.NoError(t, err)
	_, err = d.Exec(`DELETE FROM hour_types`)
	require.NoError(t, err)

	_, err = d.Exec(`INSERT INTO hour_types (name, multiplier) VALUES ('Overtime', 1.75)`)
	require.NoError(t, err)

	require.NoError(t, db.Seed(d.DB))

	// A customized multiplier survives re-seeding.
	s.requireQueryEqual(1, `SELECT count(*) FROM hour_types WHERE name = 'Overtime' AND multiplier = 1.75`)
	s.requireQueryEqual(len(db.DefaultHourTypes), `SELECT count(*) FROM hour_types`)
}

func (s *SeedsTestSuite) requireQueryEqual(expected int, q string, args ...interface{}) {
	s.T().Helper()
	var got int
	require.NoError(s.T(), s.DB().Get(&got, q, args...))
	require.Equal(s.T(), expected, got, fmt.Sprintf("query: %s", q))
}

func TestSeeds(t *testing.T) {
	suite.Run(t, new(SeedsTestSuite))
}
