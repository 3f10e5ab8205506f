package db

import (
	"database/sql"
	"sort"
	"time"
)

type Employee struct {
	Id string

	Name  string
	Title sql.NullString

	// ManagerId references another employee. The hierarchy is two levels
	// deep at most; a manager never has a manager of their own.
	ManagerId sql.NullString `db:"manager_id"`

	// Category is either "employee", "dsp", or unset. A subordinate without
	// an explicit "employee" category is treated as a GST-liable contractor.
	Category sql.NullString

	BillableWage float64 `db:"billable_wage"`
	CostWage     float64 `db:"cost_wage"`

	CreatedAt time.Time `db:"created_at"`
}

type Job struct {
	Id string

	// Number is the human-facing job number. It is unique but mutable and
	// therefore only used for display and search, never for joins.
	Number string
	Name   string

	Active   bool
	Billable sql.NullBool

	CreatedAt time.Time `db:"created_at"`

	// InvoicedDates and PaidDates are the per-job sets of ISO dates marking
	// billing and payment completion. They live in the job_invoiced_dates
	// and job_paid_dates tables and are populated by LoadSnapshot.
	InvoicedDates DateSet `db:"-"`
	PaidDates     DateSet `db:"-"`
}

// IsBillable returns the job's billable flag, defaulting to billable when the
// flag was never set.
func (j Job) IsBillable() bool {
	return !j.Billable.Valid || j.Billable.Bool
}

type HourType struct {
	Id string

	Name       string
	Multiplier float64
}

type Province struct {
	Id string

	Name string
	// Code is the two-letter province code, e.g. "NS".
	Code string
}

type TimeEntry struct {
	Id string

	EmployeeId string `db:"employee_id"`
	JobId      string `db:"job_id"`
	HourTypeId string `db:"hour_type_id"`
	ProvinceId string `db:"province_id"`

	// Date is the calendar date in YYYY-MM-DD form.
	Date  string
	Hours float64

	// LoaCount is the number of live-out-allowance units claimed that day.
	LoaCount int `db:"loa_count"`

	CreatedAt time.Time `db:"created_at"`
}

type RentalItem struct {
	Id string

	Name     string
	Category sql.NullString

	// Unit is one of "hour", "day", "week", "month".
	Unit string
	Rate float64

	// DspRate is the flat rate owed to a subcontractor providing the item.
	DspRate sql.NullFloat64 `db:"dsp_rate"`

	Active bool
}

type RentalEntry struct {
	Id string

	ItemId     string         `db:"item_id"`
	JobId      string         `db:"job_id"`
	EmployeeId sql.NullString `db:"employee_id"`

	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`

	Quantity float64
	// Unit is the billing unit captured at entry time.
	Unit string
	// Rate is the rate captured at entry time, decoupled from the item's
	// current rate.
	Rate    float64
	DspRate sql.NullFloat64 `db:"dsp_rate"`

	Description sql.NullString

	CreatedAt time.Time `db:"created_at"`
}

// DateSet is a set of ISO dates (YYYY-MM-DD).
type DateSet map[string]struct{}

// NewDateSet builds a DateSet from the given dates.
func NewDateSet(dates ...string) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Contains reports set membership. A nil set contains nothing.
func (s DateSet) Contains(date string) bool {
	_, ok := s[date]
	return ok
}

// Dates returns the members sorted ascending.
func (s DateSet) Dates() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
