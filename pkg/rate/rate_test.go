package rate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Allen4fis/crewtime/pkg/db"
	"github.com/Allen4fis/crewtime/pkg/rate"
)

func TestMultiplier(t *testing.T) {
	require.Equal(t, 1.0, rate.Multiplier("Regular Time"))
	require.Equal(t, 1.5, rate.Multiplier("Overtime"))
	require.Equal(t, 2.0, rate.Multiplier("Double Time"))
	require.Equal(t, 1.0, rate.Multiplier("Travel Time"))
	require.Equal(t, 1.0, rate.Multiplier("LOA"))
	require.Equal(t, 1.5, rate.Multiplier("NS Overtime"))
	require.Equal(t, 1.0, rate.Multiplier("Banked Time"), "unknown types fall back to 1")
}

func TestDisplay(t *testing.T) {
	require.Equal(t, "Overtime", rate.Display("Overtime"))
	require.Equal(t, rate.UnknownTypeName, rate.Display("Banked Time"))
}

func TestIsLOA(t *testing.T) {
	require.True(t, rate.IsLOA("LOA"))
	require.False(t, rate.IsLOA("Regular Time"))
	require.False(t, rate.IsLOA("loa"))
}

func TestResolve(t *testing.T) {
	emp := &db.Employee{BillableWage: 50, CostWage: 38}

	require.Equal(t, 50.0, rate.Resolve(emp, rate.Billable, "Regular Time"))
	require.Equal(t, 38.0, rate.Resolve(emp, rate.Cost, "Regular Time"))

	// Nova Scotia variants add the surcharge before the multiplier applies.
	require.Equal(t, 53.0, rate.Resolve(emp, rate.Billable, "NS Regular Time"))
	require.Equal(t, 41.0, rate.Resolve(emp, rate.Cost, "NS Double Time"))

	// An unknown type keeps the base wage.
	require.Equal(t, 50.0, rate.Resolve(emp, rate.Billable, "Banked Time"))
}

func TestResolve_NilEmployee(t *testing.T) {
	require.Equal(t, 0.0, rate.Resolve(nil, rate.Billable, "Regular Time"))
	require.Equal(t, 0.0, rate.Resolve(nil, rate.Cost, "NS Regular Time"))
}
