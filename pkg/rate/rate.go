// Package rate resolves hourly wage rates and hour-type pay multipliers.
package rate

import "github.com/Allen4fis/crewtime/pkg/db"

// Kind selects which of an employee's two wage rates applies.
type Kind int

const (
	// Billable is the rate charged to the client.
	Billable Kind = iota
	// Cost is the rate paid to or for the employee.
	Cost
)

const (
	// LOAUnitCost is the flat live-out-allowance per-diem in dollars.
	LOAUnitCost = 200.0
	// NSHourlySurcharge is the flat per-hour surcharge for Nova Scotia
	// hour-type variants, added before the multiplier is applied.
	NSHourlySurcharge = 3.0
)

// loaName is the literal hour-type name carrying LOA semantics.
const loaName = "LOA"

// UnknownTypeName is the display name for unrecognized hour types.
const UnknownTypeName = "Unknown Type"

type hourType struct {
	multiplier float64
	ns         bool
}

// Exactly one multiplier per hour-type name. The NS variants bake the Nova
// Scotia surcharge into dedicated hour types rather than a per-province rate
// table.
var hourTypes = map[string]hourType{
	"Regular Time":    {multiplier: 1},
	"Overtime":        {multiplier: 1.5},
	"Double Time":     {multiplier: 2},
	"Travel Time":     {multiplier: 1},
	loaName:           {multiplier: 1},
	"NS Regular Time": {multiplier: 1, ns: true},
	"NS Overtime":     {multiplier: 1.5, ns: true},
	"NS Double Time":  {multiplier: 2, ns: true},
}

// Multiplier returns the pay multiplier for the hour-type name. Unknown
// names resolve to 1 rather than failing.
func Multiplier(name string) float64 {
	if ht, ok := hourTypes[name]; ok {
		return ht.multiplier
	}
	return 1
}

// Display returns the display name for the hour-type name, mapping unknown
// names to UnknownTypeName.
func Display(name string) string {
	if _, ok := hourTypes[name]; ok {
		return name
	}
	return UnknownTypeName
}

// IsLOA reports whether the hour-type name carries live-out-allowance
// semantics. LOA hours are excluded from every hours-worked aggregate while
// their dollar amounts still count.
func IsLOA(name string) bool {
	return name == loaName
}

// Resolve returns the applicable hourly rate for the employee. The Nova
// Scotia hour-type variants add a flat surcharge to the base wage. A nil
// employee resolves to 0; callers flag the entry instead of aborting the
// whole aggregation.
func Resolve(emp *db.Employee, kind Kind, hourTypeName string) float64 {
	if emp == nil {
		return 0
	}
	base := emp.BillableWage
	if kind == Cost {
		base = emp.CostWage
	}
	if ht, ok := hourTypes[hourTypeName]; ok && ht.ns {
		base += NSHourlySurcharge
	}
	return base
}
